// Package cli implements the brickend subcommands.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"github.com/inovahubco/brickend/config"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	bold   = color.New(color.Bold)
)

// newLogger builds the logger shared by the commands. Verbose switches
// on debug output; warnings always show.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// projectPath resolves the project file: an explicit --config wins,
// otherwise the current directory is searched.
func projectPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return config.Find(cwd)
}

func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Printf("%s %s\n", yellow.Sprint("!"), w)
	}
}
