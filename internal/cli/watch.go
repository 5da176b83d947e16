package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/inovahubco/brickend"
	"github.com/inovahubco/brickend/config"
)

// debounce coalesces editor write bursts into one regeneration.
const debounce = 300 * time.Millisecond

// WatchCmd regenerates whenever the project file or a user template
// changes. It runs until interrupted.
func WatchCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate on project file or template changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := projectPath(configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()

			if err := watcher.Add(filepath.Dir(path)); err != nil {
				return err
			}
			if cfg, err := config.Load(path); err == nil {
				addTemplateDirs(watcher, cfg.ResolveTemplatesDir())
			}

			logger := newLogger(verbose)
			regenerate := func() {
				result, err := brickend.Generate(ctx, path, brickend.WithLogger(logger))
				if err != nil {
					fmt.Printf("%s %v\n", red.Sprint("✗"), err)
					return
				}
				printWarnings(result.Warnings)
				fmt.Printf("%s regenerated %d files\n", green.Sprint("✓"), result.Files())
			}

			fmt.Printf("watching %s (ctrl-c to stop)\n", path)
			regenerate()

			var timer *time.Timer
			pending := make(chan struct{}, 1)
			for {
				select {
				case <-ctx.Done():
					return nil
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if !relevant(event, path) {
						continue
					}
					if timer != nil {
						timer.Stop()
					}
					timer = time.AfterFunc(debounce, func() {
						select {
						case pending <- struct{}{}:
						default:
						}
					})
				case <-pending:
					regenerate()
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Printf("%s watch error: %v\n", yellow.Sprint("!"), err)
				}
			}
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the project file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

// relevant filters watcher noise: only writes and creates touching the
// project file or template files trigger a rebuild.
func relevant(event fsnotify.Event, projectFile string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	if event.Name == projectFile {
		return true
	}
	return strings.HasSuffix(event.Name, ".tmpl") ||
		filepath.Base(event.Name) == "meta.yaml"
}

// addTemplateDirs registers the override root and its stack directories.
// fsnotify does not recurse, so each level is added explicitly. A
// missing override root is fine.
func addTemplateDirs(watcher *fsnotify.Watcher, root string) {
	if watcher.Add(root) != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err == nil && d.IsDir() {
			_ = watcher.Add(path)
		}
		return nil
	})
}
