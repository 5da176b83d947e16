package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inovahubco/brickend/config"
	"github.com/inovahubco/brickend/engine/templates"
	"github.com/inovahubco/brickend/integrations"
)

// StacksCmd lists the stacks and components available to the current
// project, including user template overrides when a project file is
// present.
func StacksCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "stacks",
		Short: "List available stacks and their components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := templates.NewRegistry(nil, integrations.Core())
			if path, err := projectPath(configPath); err == nil {
				if cfg, err := config.Load(path); err == nil {
					registry = templates.NewRegistry(
						os.DirFS(cfg.ResolveTemplatesDir()), integrations.Core())
				}
			}

			for _, category := range []string{"back"} {
				for _, stack := range registry.Stacks(category) {
					components := registry.Components(category, stack)
					fmt.Printf("%s  %s\n", bold.Sprint(stack),
						strings.Join(components, ", "))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the project file")
	return cmd
}
