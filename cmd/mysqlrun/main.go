package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mysqlscript/mysqlrun/internal/cli"
	urfavecli "github.com/urfave/cli/v3"
)

const version = "1.0.0"

func main() {
	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCommand builds the mysqlrun command tree
func newRootCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:    "mysqlrun",
		Usage:   "MySQL script splitter and batch runner",
		Version: version,
		Commands: []*urfavecli.Command{
			{
				Name:      "split",
				Usage:     "Split a SQL script into statements without executing it",
				ArgsUsage: "<script.sql>",
				Action:    splitCommand,
				Flags: []urfavecli.Flag{
					&urfavecli.StringFlag{
						Name:  "format",
						Usage: "Output format (text or json)",
					},
					&urfavecli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (use - for stdout)",
					},
				},
			},
			{
				Name:      "run",
				Usage:     "Execute SQL scripts against a MySQL server",
				ArgsUsage: "<path>",
				Action:    runCommand,
				Flags: []urfavecli.Flag{
					&urfavecli.StringFlag{
						Name:    "dsn",
						Aliases: []string{"c"},
						Usage:   "MySQL DSN (user:password@tcp(host:port)/database); overrides the individual connection flags",
					},
					&urfavecli.StringFlag{
						Name:  "host",
						Usage: "MySQL host",
					},
					&urfavecli.IntFlag{
						Name:  "port",
						Usage: "MySQL port",
					},
					&urfavecli.StringFlag{
						Name:    "user",
						Aliases: []string{"u"},
						Usage:   "MySQL user",
					},
					&urfavecli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "MySQL password",
					},
					&urfavecli.StringFlag{
						Name:    "database",
						Aliases: []string{"d"},
						Usage:   "Default database",
					},
					&urfavecli.DurationFlag{
						Name:  "timeout",
						Usage: "Per-script timeout",
					},
					&urfavecli.IntFlag{
						Name:  "parallel",
						Usage: "Maximum concurrent scripts (1 = sequential)",
					},
					&urfavecli.BoolFlag{
						Name:  "continue-on-error",
						Usage: "Keep executing a script after a statement fails",
					},
					&urfavecli.StringFlag{
						Name:  "format",
						Usage: "Report format (text or json)",
					},
					&urfavecli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Report file path (use - for stdout)",
					},
					&urfavecli.BoolFlag{
						Name:  "verbose",
						Usage: "Enable debug output",
					},
				},
			},
		},
	}
}

// splitCommand handles 'mysqlrun split'
func splitCommand(ctx context.Context, cmd *urfavecli.Command) error {
	config, err := cli.LoadConfig()
	if err != nil {
		return err
	}
	cli.ApplyFlagsToConfig(config, "", "", 0, "", "", "", 0, 0, false,
		cmd.String("format"), cmd.String("output"), false)

	scriptPath := cmd.Args().First()
	if scriptPath == "" {
		return urfavecli.Exit("usage: mysqlrun split <script.sql>", 2)
	}

	// Exit through the library so deferred cleanup up the stack runs.
	exitCode, err := cli.Split(config, scriptPath)
	if err != nil {
		return urfavecli.Exit(err, exitCode)
	}
	if exitCode != 0 {
		return urfavecli.Exit("", exitCode)
	}
	return nil
}

// runCommand handles 'mysqlrun run'
func runCommand(ctx context.Context, cmd *urfavecli.Command) error {
	config, err := cli.LoadConfig()
	if err != nil {
		return err
	}

	cli.ApplyFlagsToConfig(config,
		cmd.String("dsn"),
		cmd.String("host"),
		int(cmd.Int("port")),
		cmd.String("user"),
		cmd.String("password"),
		cmd.String("database"),
		cmd.Duration("timeout"),
		int(cmd.Int("parallel")),
		cmd.Bool("continue-on-error"),
		cmd.String("format"),
		cmd.String("output"),
		cmd.Bool("verbose"))

	// First non-flag argument, default to the current directory
	searchPath := cmd.Args().First()
	if searchPath == "" {
		searchPath = "."
	}

	exitCode, err := cli.Run(ctx, config, searchPath)
	if err != nil {
		return urfavecli.Exit(err, exitCode)
	}
	if exitCode != 0 {
		return urfavecli.Exit("", exitCode)
	}
	return nil
}
