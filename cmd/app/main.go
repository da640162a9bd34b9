package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/raidho/internal"
	"github.com/starford/raidho/internal/indexer"
	pkgconfig "github.com/starford/raidho/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
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

func index(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	req := indexer.Request{
		Root:     cmd.String("root"),
		Category: cmd.String("category"),
		Drive:    cmd.String("drive"),
		Clean:    cmd.Bool("clean"),
	}
	return internal.RunScan(ctx, internal.WithConfig(cfg), internal.WithScanRequest(req))
}

func mcp(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunMCP(ctx, internal.WithConfig(cfg))
}

func main() {
	cmd := &cli.Command{
		Name:   "raidho",
		Usage:  "Removable-drive file catalog with SQLite storage and fast paginated substring search",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP API server (default)",
				Action: serve,
			},
			{
				Name:   "index",
				Usage:  "Scan a directory and store it in the catalog, then exit",
				Action: index,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "root",
						Usage:    "Directory to scan",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "category",
						Usage:    "Grouping label for this run",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "drive",
						Usage:    "Name of the storage location",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "clean",
						Usage: "Remove previously stored files for the category/drive pair first",
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve catalog tools over MCP stdio transport",
				Action: mcp,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
