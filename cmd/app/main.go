package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/foliocal/internal"
	"github.com/starford/foliocal/internal/calendar"
	pkgconfig "github.com/starford/foliocal/pkg/config"
)

const defaultConfigFile = "config/config.yaml"

// loadConfig reads the config file, falling back to the bundled default.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadWithDefaults(cmd.String("config"), defaultConfigFile, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runTUI(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunTUI(ctx, internal.WithConfig(cfg))
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunMCP(ctx, internal.WithConfig(cfg))
}

func runMonth(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var q internal.MonthQuery
	if s := cmd.String("month"); s != "" {
		m, err := calendar.ParseMonth(s)
		if err != nil {
			return fmt.Errorf("invalid --month %q: %w", s, err)
		}
		q.Month = m
	}
	if cmd.IsSet("folder") {
		folder := cmd.String("folder")
		q.Folder = &folder
	}
	q.Tags = cmd.StringSlice("tag")

	return internal.RunMonth(ctx, q, internal.WithConfig(cfg))
}

func main() {
	cmd := &cli.Command{
		Name:   "foliocal",
		Usage:  "Month calendar over a folder of Markdown notes",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: defaultConfigFile,
				Value:       defaultConfigFile,
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API with live updates",
				Action: serve,
			},
			{
				Name:   "tui",
				Usage:  "Open the interactive month view",
				Action: runTUI,
			},
			{
				Name:   "mcp",
				Usage:  "Serve calendar tools over MCP stdio",
				Action: runMCP,
			},
			{
				Name:   "month",
				Usage:  "Print a month and its agenda",
				Action: runMonth,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "month",
						Usage: "Month to print as YYYY-MM (default: current)",
					},
					&cli.StringFlag{
						Name:  "folder",
						Usage: "Folder scope; empty for the whole vault (default: configured source folder)",
					},
					&cli.StringSliceFlag{
						Name:  "tag",
						Usage: "Only show events with this tag (repeatable)",
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
