package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/inovahubco/brickend/config"
)

const starterConfig = `project:
  name: %s
  version: 0.1.0
  stack: %s

entities:
  - name: User
    fields:
      - name: id
        type: uuid
        primary_key: true
      - name: email
        type: string
        unique: true
      - name: created_at
        type: datetime

output_dir: generated
templates_dir: templates_user
`

// InitCmd scaffolds a new project: a starter brickend.yaml and an empty
// user template override directory.
func InitCmd() *cobra.Command {
	var stack string

	cmd := &cobra.Command{
		Use:   "init <project-name>",
		Short: "Scaffold a new brickend project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			path := filepath.Join(".", config.FileNames[0])
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}

			content := fmt.Sprintf(starterConfig, name, stack)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return err
			}
			if err := os.MkdirAll(config.DefaultTemplatesDir, 0o755); err != nil {
				return err
			}

			fmt.Printf("%s created %s\n", green.Sprint("✓"), path)
			fmt.Printf("%s created %s/\n", green.Sprint("✓"), config.DefaultTemplatesDir)
			fmt.Printf("\nNext steps:\n  1. Edit %s to declare your entities\n  2. Run %s\n",
				path, bold.Sprint("brickend generate"))
			return nil
		},
	}

	cmd.Flags().StringVar(&stack, "stack", "fastapi", "target stack (fastapi, django)")
	return cmd
}
