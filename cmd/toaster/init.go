package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toaster/internal/errors"
	"github.com/vango-dev/toaster/internal/templates"
	"github.com/vango-dev/toaster/pkg/toast"
)

func initCmd() *cobra.Command {
	var (
		template   string
		position   string
		theme      string
		richColors bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a config and example scenarios",
		Long: `Scaffold a toaster configuration and example scenarios.

Templates:
  ` + strings.Join(templates.List(), ", ") + `

Examples:
  toaster init
  toaster init ./notifications --template promise
  toaster init --position top-center --theme system`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if position != "" && !toast.Position(position).Valid() {
				return errors.New("T042").
					WithDetail("Unknown position " + position)
			}

			tmpl, err := templates.Get(template)
			if err != nil {
				return err
			}

			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(abs, 0755); err != nil {
				return errors.New("T040").Wrap(err)
			}

			if err := tmpl.Create(abs, templates.Config{
				ProjectName: filepath.Base(abs),
				Position:    position,
				Theme:       theme,
				RichColors:  richColors,
			}); err != nil {
				return err
			}

			success("Created %s template in %s", tmpl.Name, abs)
			info("toaster render %s", filepath.Join(dir, "scenarios", "*.yaml"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "basic", "Template to use")
	cmd.Flags().StringVar(&position, "position", "", "Default toast position")
	cmd.Flags().StringVar(&theme, "theme", "", "Theme: light, dark or system")
	cmd.Flags().BoolVar(&richColors, "rich-colors", false, "Enable rich colors")

	return cmd
}
