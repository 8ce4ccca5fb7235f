package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toaster/internal/errors"
	"github.com/vango-dev/toaster/internal/scenario"
)

func renderCmd(g *globals) *cobra.Command {
	var (
		output string
		pretty bool
		only   string
	)

	cmd := &cobra.Command{
		Use:   "render <scenario.yaml>",
		Short: "Render a scenario to HTML",
		Long: `Run a scripted scenario on a simulated clock and write its snapshots.

Each snapshot step produces one HTML file named after the snapshot. Without
--output the snapshots are written to stdout, separated by comments.

Examples:
  toaster render undo.yaml
  toaster render undo.yaml --output ./snapshots --pretty
  toaster render undo.yaml --only expanded`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.OutOrStdout(), g, args[0], output, only, pretty)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Directory to write snapshots to")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the HTML")
	cmd.Flags().StringVar(&only, "only", "", "Write only the named snapshot")

	return cmd
}

func runRender(out io.Writer, g *globals, path, output, only string, pretty bool) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger := g.logger()
	tc, err := cfg.Toaster(logger)
	if err != nil {
		return err
	}

	s, err := scenario.LoadFile(path)
	if err != nil {
		return err
	}
	res, err := scenario.Run(s, scenario.Options{
		Config: tc,
		Logger: logger,
		Pretty: pretty,
	})
	if err != nil {
		return err
	}

	snapshots := res.Snapshots
	if only != "" {
		snapshots = nil
		for _, snap := range res.Snapshots {
			if snap.Name == only {
				snapshots = append(snapshots, snap)
			}
		}
		if len(snapshots) == 0 {
			return errors.New("T042").
				WithDetail(fmt.Sprintf("No snapshot named %q in %s", only, path))
		}
	}

	if output == "" {
		for _, snap := range snapshots {
			if _, err := fmt.Fprintf(out, "<!-- %s @ %v -->\n%s\n", snap.Name, snap.At, snap.HTML); err != nil {
				return errors.New("T040").Wrap(err)
			}
		}
		return nil
	}

	if err := os.MkdirAll(output, 0755); err != nil {
		return errors.New("T040").Wrap(err)
	}
	for _, snap := range snapshots {
		file := filepath.Join(output, fileName(snap.Name)+".html")
		if err := os.WriteFile(file, []byte(snap.HTML), 0644); err != nil {
			return errors.New("T040").Wrap(err)
		}
		info("%s (%d toasts, %v)", file, len(snap.Items), snap.At)
	}
	success("Rendered %d snapshots in %v", len(snapshots), res.Elapsed)
	return nil
}

// fileName makes a snapshot name safe to use as a file name.
func fileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
