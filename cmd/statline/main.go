// Package main is the entry point for the statline CLI application.
package main

import (
	"context"
	"fmt"
	"os"

	slcli "github.com/NikitaCOEUR/statline/internal/cli"
	"github.com/NikitaCOEUR/statline/pkg/version"
	"github.com/urfave/cli/v3"
)

func main() {
	configFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file path (default: discover in current directory)",
		},
		&cli.StringFlag{
			Name:  "features",
			Usage: "Comma-separated feature list overriding the config",
		},
		&cli.StringFlag{
			Name:  "theme",
			Usage: "Theme overriding the config (minimal, detailed, compact)",
		},
		&cli.BoolFlag{
			Name:  "no-colors",
			Usage: "Disable ANSI colors in the generated script",
		},
	}

	readFlags := func(cmd *cli.Command) slcli.ConfigFlags {
		return slcli.ConfigFlags{
			ConfigPath: cmd.String("config"),
			Features:   cmd.String("features"),
			Theme:      cmd.String("theme"),
			NoColors:   cmd.Bool("no-colors"),
		}
	}

	app := &cli.Command{
		Name:                  "statline",
		Usage:                 "Generate a statusline script for your coding assistant",
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("STATLINE_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate the statusline script to stdout or a file",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				}, configFlags...),
				Action: func(_ context.Context, cmd *cli.Command) error {
					return slcli.Generate(slcli.GenerateParams{
						ConfigFlags: readFlags(cmd),
						Output:      cmd.String("output"),
						LogLevel:    cmd.String("log-level"),
					})
				},
			},
			{
				Name:  "install",
				Usage: "Generate the script, install it and wire host settings",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "script-path",
						Usage: "Install location for the script",
					},
					&cli.StringFlag{
						Name:  "settings-path",
						Usage: "Host settings file to update",
					},
					&cli.BoolFlag{
						Name:    "uninstall",
						Aliases: []string{"u"},
						Usage:   "Remove the installed script and settings wiring",
					},
				}, configFlags...),
				Action: func(_ context.Context, cmd *cli.Command) error {
					return slcli.Install(slcli.InstallParams{
						ConfigFlags:  readFlags(cmd),
						ScriptPath:   cmd.String("script-path"),
						SettingsPath: cmd.String("settings-path"),
						Uninstall:    cmd.Bool("uninstall"),
						LogLevel:     cmd.String("log-level"),
					})
				},
			},
			{
				Name:  "preview",
				Usage: "Generate the script and run it once with sample input",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "JSON file to feed the script instead of the built-in sample",
					},
				}, configFlags...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return slcli.Preview(ctx, slcli.PreviewParams{
						ConfigFlags: readFlags(cmd),
						InputPath:   cmd.String("input"),
						LogLevel:    cmd.String("log-level"),
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a statline configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					configPath := ""
					if cmd.Args().Len() > 0 {
						configPath = cmd.Args().Get(0)
					}
					return slcli.Validate(slcli.ValidateParams{ConfigPath: configPath})
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for statline configuration files",
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
					return slcli.Schema(outputPath)
				},
			},
			{
				Name:  "init",
				Usage: "Create a sample config file in the current folder",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Overwrite an existing config file",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return slcli.Init(slcli.InitParams{Force: cmd.Bool("force")})
				},
			},
			{
				Name:  "status",
				Usage: "Show current statline configuration and install status",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "script-path",
						Usage: "Install location for the script",
					},
					&cli.StringFlag{
						Name:  "settings-path",
						Usage: "Host settings file to inspect",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return slcli.Status(slcli.StatusParams{
						ScriptPath:   cmd.String("script-path"),
						SettingsPath: cmd.String("settings-path"),
					})
				},
			},
			{
				Name:  "clean",
				Usage: "Remove runtime cache files written by the script",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "all",
						Aliases: []string{"a"},
						Usage:   "Remove every file in the cache directory",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return slcli.Clean(slcli.CleanParams{All: cmd.Bool("all")})
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
