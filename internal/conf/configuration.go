package conf

import (
	"errors"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

// Configuration owns one instance of every wired section.
//
// A Configuration is a plain value: it is not safe for concurrent mutation
// and callers sharing one across goroutines must guard it themselves.
type Configuration struct {
	Logger        *Logger
	Console       *Console
	Visualization *Visualization
	IERS          *IERS
	Data          *Data
}

// New returns a Configuration with every section at its defaults.
func New() *Configuration {
	return &Configuration{
		Logger:        NewLogger(),
		Console:       NewConsole(),
		Visualization: NewVisualization(),
		IERS:          NewIERS(),
		Data:          NewData(),
	}
}

// Namespaces returns the sections in serialization order.
func (c *Configuration) Namespaces() []*Namespace {
	return []*Namespace{
		c.Logger.Namespace,
		c.Console.Namespace,
		c.Visualization.Namespace,
		c.IERS.Namespace,
		c.Data.Namespace,
	}
}

// Namespace returns the section with the given dotted name.
func (c *Configuration) Namespace(name string) (*Namespace, bool) {
	for _, ns := range c.Namespaces() {
		if ns.Name() == name {
			return ns, true
		}
	}
	return nil, false
}

// Lookup resolves "section.key", where the last dot separates the key from
// the (possibly dotted) section name.
func (c *Configuration) Lookup(path string) (Field, error) {
	i := strings.LastIndex(path, ".")
	if i <= 0 || i == len(path)-1 {
		return nil, newError("%q is not of the form section.key", path)
	}
	section, key := path[:i], path[i+1:]
	ns, ok := c.Namespace(section)
	if !ok {
		return nil, newError("unknown section %q", section)
	}
	f, ok := ns.Field(key)
	if !ok {
		return nil, newError("%s: unknown key %q", section, key)
	}
	return f, nil
}

// SetString parses text according to the kind of the addressed leaf and
// stores it. On error the leaf is unchanged.
func (c *Configuration) SetString(path, text string) error {
	f, err := c.Lookup(path)
	if err != nil {
		return err
	}
	if err := f.parse(text); err != nil {
		var cerr *ConfigurationError
		if errors.As(err, &cerr) {
			cerr.AddPrefix(path)
		}
		return err
	}
	return nil
}

// Snapshot returns every value keyed by section name and field key.
func (c *Configuration) Snapshot() map[string]map[string]any {
	out := make(map[string]map[string]any)
	for _, ns := range c.Namespaces() {
		out[ns.Name()] = ns.Snapshot()
	}
	return out
}

// Equal reports whether both configurations hold the same values. NaN floats
// compare equal to each other.
func (c *Configuration) Equal(other *Configuration) bool {
	if c == nil || other == nil {
		return c == other
	}
	mine, theirs := c.Namespaces(), other.Namespaces()
	for i, ns := range mine {
		a, b := ns.Fields(), theirs[i].Fields()
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j].Key() != b[j].Key() || !sameValue(a[j].Value(), b[j].Value()) {
				return false
			}
		}
	}
	return true
}

func sameValue(a, b any) bool {
	x, xok := a.(float64)
	y, yok := b.(float64)
	if xok && yok && math.IsNaN(x) && math.IsNaN(y) {
		return true
	}
	return a == b
}

// Serialize renders the whole document. The result depends only on the
// current values, so repeated calls on an unchanged Configuration are
// byte-identical.
func (c *Configuration) Serialize() string {
	var b strings.Builder
	for _, ns := range c.Namespaces() {
		b.WriteString(ns.SectionText())
	}
	return b.String()
}

// Deserialize parses a document into a new Configuration. Sections and keys
// missing from text keep their defaults and unknown keys are ignored. Any
// syntax error or type mismatch fails the whole document.
func Deserialize(text string) (*Configuration, error) {
	root, err := parseDocument(text)
	if err != nil {
		return nil, err
	}
	return fromTree(root)
}

// parseDocument parses text into the generic document tree.
func parseDocument(text string) (map[string]any, error) {
	var doc any
	if _, err := toml.Decode(text, &doc); err != nil {
		return nil, wrapError(err, "parsing document")
	}
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, newError("document root must be a table, got %s", shapeOf(doc))
	}
	return root, nil
}

func fromTree(root map[string]any) (*Configuration, error) {
	cfg := New()
	for _, ns := range cfg.Namespaces() {
		if err := ns.decodeSection(root); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Load reads and deserializes the file at path.
func Load(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapError(err, "reading %s", path)
	}
	cfg, err := Deserialize(string(data))
	if err != nil {
		var cerr *ConfigurationError
		if errors.As(err, &cerr) {
			cerr.AddPrefix(path)
		}
		return nil, err
	}
	slog.Debug("configuration loaded", slog.String("path", path))
	return cfg, nil
}

// Save writes the serialized document to path, creating missing parent
// directories. The document is written to a temporary file next to the target
// and renamed over it, so readers see either the old or the new file. A
// symlinked path is followed and the link kept; an existing file keeps its
// permissions. The directory entry itself is not synced.
func (c *Configuration) Save(path string) error {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}
	var mode fs.FileMode
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return wrapError(err, "creating directory %s", dir)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(target)+"."+uuid.NewString()+".tmp")
	if err := writeFileSync(tmp, []byte(c.Serialize()), mode); err != nil {
		_ = os.Remove(tmp)
		return wrapError(err, "writing %s", tmp)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return wrapError(err, "replacing %s", target)
	}
	slog.Debug("configuration saved", slog.String("path", target))
	return nil
}

// writeFileSync creates path and writes data to it. A non-zero mode is applied
// explicitly so it is not narrowed by the umask.
func writeFileSync(path string, data []byte, mode fs.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if mode != 0 {
		if err := f.Chmod(mode); err != nil {
			f.Close()
			return err
		}
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
