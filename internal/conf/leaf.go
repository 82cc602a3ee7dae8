package conf

import (
	"strings"
)

// Field is the kind-independent view of a leaf used by a Namespace to
// serialize, deserialize and enumerate its settings.
type Field interface {
	Key() string
	Kind() Kind
	Describe() string
	// Value returns the current value boxed as any.
	Value() any
	// DefaultValue returns the declared default boxed as any.
	DefaultValue() any
	Reset()
	decode(v any) error
	parse(s string) error
}

// Leaf is a named, typed, documented setting with a fixed default.
type Leaf[T Scalar] struct {
	key         string
	description string
	def         T
	value       T
}

// NewLeaf returns a leaf holding its default value.
func NewLeaf[T Scalar](key string, def T, description string) *Leaf[T] {
	return &Leaf[T]{
		key:         key,
		description: description,
		def:         def,
		value:       def,
	}
}

func (l *Leaf[T]) Get() T {
	return l.value
}

// Set overwrites the value. Ranges and enumerations are not checked here;
// consumers interpret the value.
func (l *Leaf[T]) Set(v T) {
	l.value = v
}

func (l *Leaf[T]) Default() T {
	return l.def
}

func (l *Leaf[T]) Key() string {
	return l.key
}

func (l *Leaf[T]) Kind() Kind {
	return kindOf[T]()
}

// Describe returns the documentation emitted as comments above the key.
func (l *Leaf[T]) Describe() string {
	return l.description
}

func (l *Leaf[T]) Value() any {
	return l.value
}

func (l *Leaf[T]) DefaultValue() any {
	return l.def
}

func (l *Leaf[T]) Reset() {
	l.value = l.def
}

func (l *Leaf[T]) decode(v any) error {
	value, err := fromDocument[T](v)
	if err != nil {
		return err
	}
	l.value = value
	return nil
}

func (l *Leaf[T]) parse(s string) error {
	value, err := fromText[T](s)
	if err != nil {
		return err
	}
	l.value = value
	return nil
}

// commentLines renders a description as TOML comment lines. Lines that are
// already comments are kept as written.
func commentLines(description string) string {
	if description == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimRight(line, " \t\r")
		switch {
		case line == "":
			line = "#"
		case !strings.HasPrefix(line, "#"):
			line = "# " + line
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
