package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"git.sr.ht/~spc/go-log"
	"github.com/briandowns/spinner"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/besok/rastro/internal/conf"
	"github.com/besok/rastro/internal/l10n"
)

func pathAction(c *cli.Context) error {
	path, err := configPath(c)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, path)
	return nil
}

func initAction(c *cli.Context) error {
	path, err := configPath(c)
	if err != nil {
		return err
	}
	_, err = os.Stat(path)
	switch {
	case err == nil:
		if !c.Bool("force") {
			return errors.New(l10n.T("%s already exists, use --force to overwrite it", path))
		}
	case !errors.Is(err, fs.ErrNotExist):
		return errors.New(l10n.T("cannot check %s: %v", path, err))
	}

	cfg := conf.New()
	if err := save(c, cfg, path); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, l10n.T("Wrote default configuration to %s", path))
	return nil
}

func showAction(c *cli.Context) error {
	cfg := conf.New()
	if !c.Bool("defaults") {
		var err error
		cfg, err = read(c)
		if err != nil {
			return err
		}
	}
	fmt.Fprint(c.App.Writer, cfg.Serialize())
	return nil
}

func getAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New(l10n.T("expected exactly one argument: SECTION.KEY"))
	}
	cfg, err := read(c)
	if err != nil {
		return err
	}
	field, err := cfg.Lookup(c.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, field.Value())
	return nil
}

func setAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New(l10n.T("expected exactly two arguments: SECTION.KEY VALUE"))
	}
	path, err := configPath(c)
	if err != nil {
		return err
	}

	// Only the main file is rewritten; drop-ins stay where they are.
	cfg, err := conf.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debugf("%s does not exist, starting from defaults", path)
		cfg, err = conf.New(), nil
	}
	if err != nil {
		return err
	}

	if err := cfg.SetString(c.Args().Get(0), c.Args().Get(1)); err != nil {
		return err
	}
	return save(c, cfg, path)
}

func validateAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		var err error
		path, err = configPath(c)
		if err != nil {
			return err
		}
	}
	if _, err := conf.Load(path); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, l10n.T("%s is valid", path))
	return nil
}

func describeAction(c *cli.Context) error {
	section := c.Args().First()
	cfg := conf.New()
	namespaces := cfg.Namespaces()
	if section != "" {
		ns, ok := cfg.Namespace(section)
		if !ok {
			return errors.New(l10n.T("unknown section %q", section))
		}
		namespaces = []*conf.Namespace{ns}
	}

	w := c.App.Writer
	for i, ns := range namespaces {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fields := ns.Fields()
		fmt.Fprintf(w, "[%s] %s\n", ns.Name(), l10n.TN("%d setting", "%d settings", uint32(len(fields)), len(fields)))
		for _, f := range fields {
			fmt.Fprintf(w, "  %s (%s, default %#v)\n", f.Key(), f.Kind(), f.DefaultValue())
			for _, line := range strings.Split(f.Describe(), "\n") {
				fmt.Fprintf(w, "      %s\n", line)
			}
		}
	}
	return nil
}

// read loads the configuration file merged with its drop-ins. A missing
// file yields the defaults.
func read(c *cli.Context) (*conf.Configuration, error) {
	path, err := configPath(c)
	if err != nil {
		return nil, err
	}
	source := &conf.ConfigSource{Path: path, DropInDir: dropInDir(c, path)}
	log.Debugf("reading %s (drop-ins from %s)", source.Path, source.DropInDir)
	return source.Read()
}

// save writes cfg to path, showing a spinner when the output is a terminal.
func save(c *cli.Context, cfg *conf.Configuration, path string) error {
	if isTerminal(c.App.Writer) {
		s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(c.App.ErrWriter))
		s.Suffix = " " + l10n.T("Saving %s", path)
		if cfg.Console.UseColor.Get() {
			_ = s.Color("green")
		}
		s.Start()
		defer s.Stop()
	}
	log.Debugf("saving %s", path)
	return cfg.Save(path)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
