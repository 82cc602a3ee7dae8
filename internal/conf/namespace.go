package conf

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Declaration describes one setting of a section. Default carries both the
// default value and, through its dynamic type, the kind of the leaf.
type Declaration struct {
	Key         string
	Default     any
	Description string
}

func (d Declaration) field() (Field, error) {
	switch v := d.Default.(type) {
	case string:
		return NewLeaf(d.Key, v, d.Description), nil
	case int32:
		return NewLeaf(d.Key, v, d.Description), nil
	case int64:
		return NewLeaf(d.Key, v, d.Description), nil
	case float64:
		return NewLeaf(d.Key, v, d.Description), nil
	case bool:
		return NewLeaf(d.Key, v, d.Description), nil
	default:
		return nil, newError("%s: unsupported default of type %T", d.Key, d.Default)
	}
}

// Namespace is one document section: a dotted name and its leaves in
// declaration order.
type Namespace struct {
	name   string
	fields []Field
	index  map[string]Field
}

// NewNamespace groups fields under a section name. Keys must be unique.
func NewNamespace(name string, fields ...Field) (*Namespace, error) {
	if name == "" {
		return nil, newError("empty section name")
	}
	ns := &Namespace{
		name:  name,
		index: make(map[string]Field, len(fields)),
	}
	for _, f := range fields {
		if _, dup := ns.index[f.Key()]; dup {
			return nil, newError("%s: duplicate key %q", name, f.Key())
		}
		ns.fields = append(ns.fields, f)
		ns.index[f.Key()] = f
	}
	return ns, nil
}

// Declare builds a namespace from a declaration list.
func Declare(name string, decls []Declaration) (*Namespace, error) {
	fields := make([]Field, 0, len(decls))
	for _, d := range decls {
		f, err := d.field()
		if err != nil {
			var cerr *ConfigurationError
			if errors.As(err, &cerr) {
				cerr.AddPrefix(name)
			}
			return nil, err
		}
		fields = append(fields, f)
	}
	return NewNamespace(name, fields...)
}

func mustDeclare(name string, decls []Declaration) *Namespace {
	ns, err := Declare(name, decls)
	if err != nil {
		panic(err)
	}
	return ns
}

// bind returns the typed leaf registered under key. The schema tables are
// fixed at compile time, so a miss is a programming error.
func bind[T Scalar](ns *Namespace, key string) *Leaf[T] {
	f, ok := ns.index[key]
	if !ok {
		panic(fmt.Sprintf("%s: no field %q", ns.name, key))
	}
	l, ok := f.(*Leaf[T])
	if !ok {
		panic(fmt.Sprintf("%s: field %q is %s, not %s", ns.name, key, f.Kind(), kindOf[T]()))
	}
	return l
}

func (n *Namespace) Name() string {
	return n.name
}

// Fields returns the leaves in declaration order.
func (n *Namespace) Fields() []Field {
	out := make([]Field, len(n.fields))
	copy(out, n.fields)
	return out
}

func (n *Namespace) Field(key string) (Field, bool) {
	f, ok := n.index[key]
	return f, ok
}

func (n *Namespace) Reset() {
	for _, f := range n.fields {
		f.Reset()
	}
}

// Snapshot returns the current values keyed by field key.
func (n *Namespace) Snapshot() map[string]any {
	out := make(map[string]any, len(n.fields))
	for _, f := range n.fields {
		out[f.Key()] = f.Value()
	}
	return out
}

// SectionText renders the section header followed by every field's comment
// block and key/value line. Output depends only on the current values.
func (n *Namespace) SectionText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", n.name)
	for _, f := range n.fields {
		b.WriteString(commentLines(f.Describe()))
		b.WriteString(formatKeyValue(f.Key(), f.Value()))
	}
	return b.String()
}

// decodeSection overwrites the fields present in the document's section.
// Absent sections and absent keys leave defaults in place; unknown keys are
// ignored. The first conversion failure aborts and the caller must discard n.
func (n *Namespace) decodeSection(root map[string]any) error {
	section, found, err := lookupSection(root, n.name)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	for _, f := range n.fields {
		v, ok := section[f.Key()]
		if !ok {
			continue
		}
		if err := f.decode(v); err != nil {
			var cerr *ConfigurationError
			if errors.As(err, &cerr) {
				cerr.AddPrefix(f.Key())
				cerr.AddPrefix(n.name)
			}
			return err
		}
	}
	return nil
}

// lookupSection walks a dotted section name through the document. A header
// such as [utils.iers] decodes as root["utils"]["iers"].
func lookupSection(root map[string]any, name string) (map[string]any, bool, error) {
	current := root
	for _, part := range strings.Split(name, ".") {
		v, ok := current[part]
		if !ok {
			return nil, false, nil
		}
		table, ok := v.(map[string]any)
		if !ok {
			err := newError("expected a table, got %s", shapeOf(v))
			err.AddPrefix(name)
			return nil, false, err
		}
		current = table
	}
	return current, true, nil
}

// shapeOf names the TOML kind of a document value for error messages.
func shapeOf(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case int64:
		return "integer"
	case float64:
		return "float"
	case bool:
		return "boolean"
	case time.Time:
		return "datetime"
	case []map[string]any:
		return "array of tables"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
