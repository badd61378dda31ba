// Package main is the entry point for the looptimer CLI application.
package main

import (
	"context"
	"fmt"
	"os"

	ltcli "github.com/NikitaCOEUR/looptimer/internal/cli"
	"github.com/NikitaCOEUR/looptimer/internal/trace"
	"github.com/NikitaCOEUR/looptimer/pkg/version"
	"github.com/urfave/cli/v3"
)

func main() {
	stopTrace := trace.Init()

	err := newApp().Run(context.Background(), os.Args)
	stopTrace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:                  "looptimer",
		Usage:                 "Profile nested timers, steps and values of a hot loop",
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "",
				Usage:   "Log level (debug, info, warn, error); defaults to the config file, then warn",
				Sources: cli.EnvVars("LOOPTIMER_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (searched upward from the current directory if not specified)",
				Sources: cli.EnvVars("LOOPTIMER_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "demo",
				Usage: "Run an instrumented scene-graph loop and print its reports",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "iterations",
						Aliases: []string{"n"},
						Value:   100,
						Usage:   "Number of loop iterations",
					},
					&cli.IntFlag{
						Name:    "interval",
						Aliases: []string{"i"},
						Usage:   "Report interval for the demo timers (overrides config and environment)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return ltcli.Demo(ltcli.DemoParams{
						Iterations: int(cmd.Int("iterations")),
						Interval:   int(cmd.Int("interval")),
						ConfigPath: cmd.String("config"),
						LogLevel:   cmd.String("log-level"),
						Output:     cmd.Root().Writer,
					})
				},
			},
			{
				Name:      "status",
				Usage:     "Show which timers record and where their interval comes from",
				ArgsUsage: "[timer...]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return ltcli.Status(ltcli.StatusParams{
						ConfigPath: cmd.String("config"),
						Timers:     cmd.Args().Slice(),
						LogLevel:   cmd.String("log-level"),
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a looptimer configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					configPath := cmd.String("config")
					if cmd.Args().Len() > 0 {
						configPath = cmd.Args().Get(0)
					}
					return ltcli.Validate(configPath)
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for looptimer configuration files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return ltcli.Schema(outputPath)
				},
			},
		},
	}
}
