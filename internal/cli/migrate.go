package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/inovahubco/brickend/config"
)

// MigrateCmd shells out to alembic in the generated project so model
// changes turn into database migrations. It requires alembic on PATH
// and an initialized alembic environment in the output directory.
func MigrateCmd() *cobra.Command {
	var (
		configPath string
		message    string
		apply      bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create (and optionally apply) an alembic migration for the generated models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := projectPath(configPath)
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			outDir := cfg.ResolveOutputDir()

			if _, err := exec.LookPath("alembic"); err != nil {
				return fmt.Errorf("alembic not found on PATH: %w", err)
			}

			revision := exec.CommandContext(cmd.Context(),
				"alembic", "revision", "--autogenerate", "-m", message)
			revision.Dir = outDir
			revision.Stdout = os.Stdout
			revision.Stderr = os.Stderr
			if err := revision.Run(); err != nil {
				return fmt.Errorf("alembic revision failed: %w", err)
			}
			fmt.Printf("%s migration created\n", green.Sprint("✓"))

			if !apply {
				return nil
			}
			upgrade := exec.CommandContext(cmd.Context(), "alembic", "upgrade", "head")
			upgrade.Dir = outDir
			upgrade.Stdout = os.Stdout
			upgrade.Stderr = os.Stderr
			if err := upgrade.Run(); err != nil {
				return fmt.Errorf("alembic upgrade failed: %w", err)
			}
			fmt.Printf("%s database upgraded to head\n", green.Sprint("✓"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the project file")
	cmd.Flags().StringVarP(&message, "message", "m", "brickend autogenerate", "migration message")
	cmd.Flags().BoolVar(&apply, "apply", false, "run alembic upgrade head after creating the revision")
	return cmd
}
