// Package cli is the marquee command line entry point.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/vpckso/marquee/internal/config"
	"github.com/vpckso/marquee/internal/logging"
	"github.com/vpckso/marquee/internal/tui/app"
)

// Run starts the CLI and returns the process exit code.
func Run(args []string, version string) int {
	cfg, err := loadConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marquee: %v\n", err)
		return 1
	}

	closeLogger, err := logging.Init(cfg.Logging, logging.InitOptions{App: "marquee", Version: version})
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
		slog.Error("init logging failed; using stderr fallback", "err", err)
	} else if closeLogger != nil {
		defer func() { _ = closeLogger() }()
	}

	cmd := newCommand(cfg, version)
	if err := cmd.Run(context.Background(), args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "marquee: %v\n", err)
		return 1
	}
	return 0
}

func newCommand(cfg *config.Config, version string) *cli.Command {
	return &cli.Command{
		Name:    "marquee",
		Usage:   "drag-to-select demo for the terminal",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to config file"},
		},
		Commands: []*cli.Command{
			{
				Name:  "demo",
				Usage: "run the drag-to-select demo",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "min-area", Usage: "minimum drag box area"},
					&cli.BoolFlag{Name: "no-select", Usage: "start with selection disabled"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.IsSet("min-area") {
						cfg.Selection.MinArea = int(cmd.Int("min-area"))
					}
					if cmd.Bool("no-select") {
						cfg.Selection.Disabled = true
					}
					if cfg.Selection.MinArea < 0 {
						return fmt.Errorf("min-area must not be negative")
					}
					return app.Run(cfg)
				},
			},
		},
		DefaultCommand: "demo",
	}
}

// loadConfig resolves the config path from --config or the default location
// before the command runs, so logging can come up first.
func loadConfig(args []string) (*config.Config, error) {
	path := configPathFromArgs(args)
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return &config.Config{}, nil
		}
	}
	return config.Load(path)
}

func configPathFromArgs(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--config" || arg == "-config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case len(arg) > len("--config=") && arg[:len("--config=")] == "--config=":
			return arg[len("--config="):]
		}
	}
	return ""
}
