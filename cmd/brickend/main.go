package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inovahubco/brickend"
	"github.com/inovahubco/brickend/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "brickend",
		Short:   "brickend - backend code generator",
		Version: brickend.Version,
		Long: `brickend generates complete backend projects from a declarative
entity model. It ships FastAPI and Django stacks and picks up user
template overrides from the project's templates directory.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ValidateCmd())
	rootCmd.AddCommand(cli.GenerateCmd())
	rootCmd.AddCommand(cli.AddEntityCmd())
	rootCmd.AddCommand(cli.StacksCmd())
	rootCmd.AddCommand(cli.WatchCmd())
	rootCmd.AddCommand(cli.MigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
