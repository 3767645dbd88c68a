package main

import (
	"context"
	stdlog "log"
	"os"

	"github.com/rubiojr/tracklog/cmd"
	"github.com/rubiojr/tracklog/pkg/config"
	"github.com/rubiojr/tracklog/pkg/log"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "tracklog",
		Usage: "Manage and apply file and tag mute rules for [file][tag] logs",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
				Value: false,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: getDefaultConfigPathOrExit(),
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if !c.Bool("debug") {
				log.MuteTag("debug")
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmd.InitCommand(),
			cmd.MuteCommand(),
			cmd.UnmuteCommand(),
			cmd.EnableCommand(),
			cmd.DisableCommand(),
			cmd.DumpCommand(),
			cmd.FilterCommand(),
			cmd.VersionCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		stdlog.Fatal(err)
	}
}

func getDefaultConfigPathOrExit() string {
	path, err := config.GetDefaultConfigPath()
	if err != nil {
		stdlog.Fatalf("Failed to get default config path: %v", err)
	}
	return path
}
