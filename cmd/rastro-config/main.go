package main

import (
	"fmt"
	"os"
	"path/filepath"

	"git.sr.ht/~spc/go-log"
	"github.com/urfave/cli/v2"

	"github.com/besok/rastro/internal/conf"
	"github.com/besok/rastro/internal/l10n"
)

// Version is set at build time.
var Version = "dev"

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "rastro-config"
	app.Version = Version
	app.Usage = l10n.T("inspect and edit the rastro configuration file")
	app.HideHelpCommand = true

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   l10n.T("read and write configuration at `FILE` (default ~/.rastro/config.toml)"),
			EnvVars: []string{"RASTRO_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "drop-in-dir",
			Usage:   l10n.T("merge *.toml files from `DIR` when reading (default FILE.d)"),
			EnvVars: []string{"RASTRO_CONFIG_DROPIN_DIR"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "error",
			Usage:   l10n.T("set log level to `LEVEL`"),
			EnvVars: []string{"RASTRO_LOG_LEVEL"},
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:   "path",
			Usage:  l10n.T("Print the configuration file path"),
			Action: pathAction,
		},
		{
			Name:  "init",
			Usage: l10n.T("Write a configuration file holding the defaults"),
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "force",
					Usage: l10n.T("overwrite an existing file"),
				},
			},
			Action: initAction,
		},
		{
			Name:  "show",
			Usage: l10n.T("Print the effective configuration document"),
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "defaults",
					Usage: l10n.T("print the built-in defaults instead"),
				},
			},
			Action: showAction,
		},
		{
			Name:      "get",
			Usage:     l10n.T("Print one setting"),
			ArgsUsage: "SECTION.KEY",
			Action:    getAction,
		},
		{
			Name:      "set",
			Usage:     l10n.T("Change one setting in the configuration file"),
			ArgsUsage: "SECTION.KEY VALUE",
			Action:    setAction,
		},
		{
			Name:      "validate",
			Usage:     l10n.T("Check that a configuration file loads"),
			ArgsUsage: "[FILE]",
			Action:    validateAction,
		},
		{
			Name:      "describe",
			Usage:     l10n.T("List settings with their kinds, defaults and documentation"),
			ArgsUsage: "[SECTION]",
			Action:    describeAction,
		},
	}

	app.Before = beforeAction

	return app
}

func beforeAction(c *cli.Context) error {
	level, err := log.ParseLevel(c.String("log-level"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	log.SetLevel(level)
	log.SetPrefix(fmt.Sprintf("[%v] ", filepath.Base(os.Args[0])))
	return nil
}

// configPath returns the --config value or the default location.
func configPath(c *cli.Context) (string, error) {
	if path := c.String("config"); path != "" {
		return path, nil
	}
	return conf.DefaultPath()
}

func dropInDir(c *cli.Context, path string) string {
	if dir := c.String("drop-in-dir"); dir != "" {
		return dir
	}
	return path + ".d"
}

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
