package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"puzzlestats/internal/di"
	"puzzlestats/internal/structures"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "puzzlestats",
		Usage: "daily puzzle results tracker",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "config.yaml", Usage: "path to the configuration file", EnvVars: []string{"PUZZLESTATS_CONFIG"}},
			&cli.BoolFlag{Name: "debug", Usage: "debug logging to console"},
		},
		Commands: []*cli.Command{
			serveCommand(),
			backfillCommand(),
			migrateCommand(),
			exportCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func flags(c *cli.Context) *structures.CliFlags {
	return &structures.CliFlags{
		ConfigPath: c.String("config"),
		DebugMode:  c.Bool("debug"),
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server and event bus",
		Action: func(c *cli.Context) error {
			app, err := di.InitApp(flags(c))
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx)
		},
	}
}

func backfillCommand() *cli.Command {
	return &cli.Command{
		Name:      "backfill",
		Usage:     "replay a channel export (one JSON event per line) into the store",
		ArgsUsage: "<export.jsonl>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "channel", Usage: "channel id the export belongs to", Required: true},
			&cli.StringFlag{Name: "from", Usage: "resume after this message id"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one export file", 2)
			}
			offline, err := di.InitOffline(flags(c))
			if err != nil {
				return err
			}
			defer offline.Close()

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			report, err := offline.Backfill(ctx, c.Args().First(), c.String("channel"), c.String("from"))
			fmt.Printf("run %s: %d/%d messages processed, %d recorded, last message %q, %s\n",
				report.RunID, report.Processed, report.Total, report.Matched, report.LastMessageID, report.Elapsed)
			return err
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:      "migrate",
		Usage:     "rewrite a store file in the current format",
		ArgsUsage: "<src> <dst>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("expected source and destination paths", 2)
			}
			offline, err := di.InitOffline(flags(c))
			if err != nil {
				return err
			}
			defer offline.Close()
			return offline.Migrate(c.Args().Get(0), c.Args().Get(1))
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write leaderboards and player summaries to an xlsx workbook",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "puzzlestats.xlsx", Usage: "output file"},
		},
		Action: func(c *cli.Context) error {
			offline, err := di.InitOffline(flags(c))
			if err != nil {
				return err
			}
			defer offline.Close()
			return offline.Export(c.String("out"))
		},
	}
}
