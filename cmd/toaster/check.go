package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toaster/internal/errors"
	"github.com/vango-dev/toaster/internal/scenario"
	"github.com/vango-dev/toaster/pkg/toaster"
)

// Report formats.
const (
	formatText    = "text"
	formatCompact = "compact"
	formatJSON    = "json"
)

func checkCmd(g *globals) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check [scenario.yaml...]",
		Short: "Validate the configuration and scenarios",
		Long: `Load and validate the toaster configuration, including the icon manifest,
then parse and run each given scenario against it.

Problems are reported as text, one compact line each (file:line:col: code:
message), or a JSON array.

Examples:
  toaster check
  toaster check --config ./site/toaster.yaml scenarios/*.yaml
  toaster check --format compact scenarios/*.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), g, args, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Report format: text, compact or json")

	return cmd
}

func runCheck(out io.Writer, g *globals, files []string, format string) error {
	switch format {
	case formatText, formatCompact, formatJSON:
	default:
		return errors.New("T042").
			WithDetail(fmt.Sprintf("Unknown report format %q.", format)).
			WithSuggestion("Use text, compact or json")
	}

	problems := make([]*errors.ToastError, 0)
	logger := g.logger()

	var tc toaster.Config
	cfg, err := g.loadConfig()
	if err == nil {
		tc, err = cfg.Toaster(logger)
	}
	configOK := err == nil
	if !configOK {
		problems = append(problems, errors.FromError(err, "T002"))
	}

	for _, path := range files {
		s, err := scenario.LoadFile(path)
		if err != nil {
			problems = append(problems, errors.FromError(err, "T021"))
			continue
		}
		if !configOK {
			continue
		}
		if _, err := scenario.Run(s, scenario.Options{Config: tc, Logger: logger}); err != nil {
			problems = append(problems, errors.FromError(err, "T024"))
		}
	}

	if err := report(out, format, problems); err != nil {
		return errors.New("T040").Wrap(err)
	}
	if len(problems) > 0 {
		return errors.New("T044").
			WithDetail(fmt.Sprintf("%d problem(s) found.", len(problems)))
	}

	if format == formatText {
		if cfg.Path() == "" {
			success("No config file, defaults are valid")
		} else {
			success("%s is valid", cfg.Path())
		}
		for _, path := range files {
			info("%s ran cleanly", path)
		}
	}
	return nil
}

func report(out io.Writer, format string, problems []*errors.ToastError) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(problems)
	case formatCompact:
		for _, p := range problems {
			if _, err := fmt.Fprintln(out, p.FormatCompact()); err != nil {
				return err
			}
		}
	default:
		for _, p := range problems {
			errors.Fprint(out, p)
		}
	}
	return nil
}
