package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/dukerupert/opsdash/internal/config"
	"github.com/dukerupert/opsdash/internal/database"
	"github.com/dukerupert/opsdash/internal/logging"
)

var version = "(unknown)"

func main() {
	app := cli.App{
		Name:    "opsdashctl",
		Usage:   "Calendar export and import for opsdash",
		Version: version,
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:   "config",
				Usage:  "Path to YAML config file",
				EnvVar: "OPSDASH_CONFIG",
			},
		},
		Commands: []cli.Command{
			Export,
			Import,
			Projects,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

// env is what every command needs: the loaded config, a logger and an open
// database.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	db     *sql.DB
}

func openEnv(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.GlobalString("config"))
	if err != nil {
		return nil, err
	}
	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}
	return &env{cfg: cfg, logger: logger, db: db}, nil
}

func (e *env) Close() error {
	return e.db.Close()
}
