package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inovahubco/brickend/config"
	"github.com/inovahubco/brickend/engine/gen"
	"github.com/inovahubco/brickend/engine/load"
	"github.com/inovahubco/brickend/naming"
)

// AddEntityCmd appends an entity to the project file. Fields are given
// as name:type specs with optional flags, e.g. id:uuid:pk email:string:unique.
func AddEntityCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "add-entity <name> <field:type[:flags]>...",
		Short: "Add an entity to the project file",
		Long: `Add an entity to the project file. Each field is name:type with
optional comma-free flags appended, one per colon:

  pk        primary key
  unique    unique constraint
  nullable  nullable column

Example:
  brickend add-entity Product id:uuid:pk name:string price:float stock:integer:nullable`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := projectPath(configPath)
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			name := args[0]
			if !naming.ValidateIdentifier(name) {
				return fmt.Errorf("invalid entity name %q", name)
			}
			for _, e := range cfg.Entities {
				if existing, _ := e["name"].(string); existing == name {
					return fmt.Errorf("entity %q already declared", name)
				}
			}

			fields, err := parseFieldSpecs(args[1:])
			if err != nil {
				return err
			}
			entity := map[string]any{"name": name, "fields": fields}

			// Validate the grown model before touching the file.
			cfg.Entities = append(cfg.Entities, entity)
			if _, err := gen.Build(cfg.Records()); err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}

			fmt.Printf("%s added entity %s (%d fields) to %s\n",
				green.Sprint("✓"), bold.Sprint(name), len(args)-1, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the project file")
	return cmd
}

func parseFieldSpecs(specs []string) ([]map[string]any, error) {
	fields := make([]map[string]any, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) < 2 {
			return nil, fmt.Errorf("field %q: want name:type[:flags]", spec)
		}
		if !load.FieldType(parts[1]).Valid() {
			return nil, fmt.Errorf("field %q: unknown type %q (one of %s)",
				parts[0], parts[1], joinTypes())
		}
		field := map[string]any{"name": parts[0], "type": parts[1]}
		for _, flag := range parts[2:] {
			switch flag {
			case "pk":
				field["primary_key"] = true
			case "unique":
				field["unique"] = true
			case "nullable":
				field["nullable"] = true
			default:
				return nil, fmt.Errorf("field %q: unknown flag %q", parts[0], flag)
			}
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func joinTypes() string {
	names := make([]string, len(load.Types))
	for i, t := range load.Types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
