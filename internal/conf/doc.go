// Package conf implements the typed configuration registry for rastro.
//
// # Usage
//
// A Configuration starts at its defaults and is read or written through the
// typed leaves of its sections:
//
//	cfg := conf.New()
//	cfg.Logger.LogLevel.Set("DEBUG")
//	fmt.Println(cfg.Console.MaxLines.Get())
//
// Persisting and loading go through explicit calls; there is no package level
// state:
//
//	path, err := conf.DefaultPath() // ~/.rastro/config.toml
//	err = cfg.Save(path)
//	cfg, err = conf.Load(path)
//
// For layered loading (e.g. administrators shipping overrides), use ConfigSource:
//
//	cs := &conf.ConfigSource{
//	    Path:      "/custom/path/config.toml",
//	    DropInDir: "/custom/path/config.toml.d",
//	}
//	cfg, err := cs.Read()
//
// # Document Format
//
// Each section is a TOML table with a dotted header. Every key is preceded by
// comment lines carrying the field documentation:
//
//	[utils.iers]
//	# Remote timeout downloading IERS file data (seconds).
//	remote_timeout = 10.0
//
// Deserialization starts from defaults. Missing sections and keys keep their
// default, unknown keys are ignored, and a value of the wrong TOML type fails
// the whole document. Integers are never read as floats or the other way
// round, and int32 fields reject values outside the int32 range.
//
// # Internal Architecture
//
//   - Declaration: one row of a section's schema table (key, default, description).
//     The dynamic type of the default selects the leaf kind.
//
//   - Leaf[T]: typed value with Get/Set/Default/Describe. Field is its
//     kind-independent view used for serialization.
//
//   - Namespace: ordered fields of one section. Typed section structs
//     (Logger, Console, ...) embed it and expose the leaves as struct fields.
//
//   - ConfigurationError: single error type; AddPrefix builds the
//     "section: key: problem" trail.
package conf
