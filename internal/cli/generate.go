package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/inovahubco/brickend"
	"github.com/inovahubco/brickend/engine/gen"
)

// GenerateCmd runs the full generation pipeline.
func GenerateCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
		workers    int
		noMerge    bool
		stack      string
		outDir     string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the backend from the project file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := projectPath(configPath)
			if err != nil {
				return err
			}

			opts := []brickend.Option{brickend.WithLogger(newLogger(verbose))}
			genOpts := []gen.GeneratorOption{gen.WithWorkers(workers)}
			if noMerge {
				genOpts = append(genOpts, gen.WithoutRegionMerge())
			}
			opts = append(opts, brickend.WithGeneratorOptions(genOpts...))

			p, err := brickend.Open(path, opts...)
			if err != nil {
				return err
			}
			if stack != "" {
				p.Config.Project.Stack = stack
			}
			if outDir != "" {
				p.Config.OutputDir = outDir
			}

			result, err := p.Generate(cmd.Context())
			if err != nil {
				return err
			}

			components := make([]string, 0, len(result.Written))
			for comp := range result.Written {
				components = append(components, comp)
			}
			sort.Strings(components)
			for _, comp := range components {
				for _, file := range result.Written[comp] {
					fmt.Printf("%s %s\n", green.Sprint("✓"), file)
				}
			}
			printWarnings(result.Warnings)
			fmt.Printf("\n%s %d files generated\n", bold.Sprint("Done."), result.Files())
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the project file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent file writers")
	cmd.Flags().BoolVar(&noMerge, "no-merge", false, "overwrite files without preserving protected regions")
	cmd.Flags().StringVar(&stack, "stack", "", "override the project's stack")
	cmd.Flags().StringVar(&outDir, "out", "", "override the output directory")
	return cmd
}
