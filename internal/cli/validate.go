package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inovahubco/brickend"
	"github.com/inovahubco/brickend/engine/gen"
)

// ValidateCmd checks the project file and its entities without writing
// anything.
func ValidateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the project file and entity model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := projectPath(configPath)
			if err != nil {
				return err
			}

			rc, err := brickend.Validate(path)
			if err != nil {
				var verr *gen.ValidationError
				if errors.As(err, &verr) {
					fmt.Printf("%s %s\n", red.Sprint("✗"), verr.Error())
					return errors.New("validation failed")
				}
				return err
			}

			fmt.Printf("%s %s is valid\n", green.Sprint("✓"), path)
			fmt.Printf("  entities: %d, fields: %d\n", rc.EntityCount, rc.TotalFields)
			for _, e := range rc.Entities {
				fmt.Printf("  - %s (%d fields, table %q)\n", e.OriginalName, e.FieldCount, e.TableName)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the project file")
	return cmd
}
