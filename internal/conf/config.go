package conf

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ConfigSource orchestrates loading configuration from multiple sources.
// See the Read method.
type ConfigSource struct {
	Path      string
	DropInDir string
}

// Read loads and returns the complete Configuration by merging all layers:
// 1. Built-in defaults
// 2. Main configuration file
// 3. Drop-in files
//
// The layers are merged as documents and deserialized once, so a bad value in
// any layer fails the whole read.
func (cs *ConfigSource) Read() (*Configuration, error) {
	doc := map[string]any{}

	data, err := os.ReadFile(cs.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, wrapError(err, "failed to load %s", cs.Path)
		}
		slog.Debug("configuration file not found, using defaults", "path", cs.Path)
	} else {
		// Existing but malformed file should result in failure (let's not hide
		// problems from the users).
		mainDoc, err := parseFile(cs.Path, data)
		if err != nil {
			return nil, err
		}
		doc = mergeDocuments(doc, mainDoc)
	}

	dropIns, err := cs.parseDropInFiles()
	if err != nil {
		slog.Error("failed to load drop-in files", "error", err, "dir", cs.DropInDir)
		return nil, err
	}
	for _, dropIn := range dropIns {
		doc = mergeDocuments(doc, dropIn)
	}

	return fromTree(doc)
}

func parseFile(path string, data []byte) (map[string]any, error) {
	doc, err := parseDocument(string(data))
	if err != nil {
		var cerr *ConfigurationError
		if errors.As(err, &cerr) {
			cerr.AddPrefix(path)
		}
		return nil, err
	}
	return doc, nil
}

// findDropInFiles finds and returns sorted paths to drop-in configuration files.
// Returns nil if the drop-in directory doesn't exist (not an error).
func (cs *ConfigSource) findDropInFiles() ([]string, error) {
	if cs.DropInDir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(cs.DropInDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, wrapError(err, "failed to read drop-in directory %s", cs.DropInDir)
	}

	var filenames []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".toml") {
			filenames = append(filenames, filepath.Join(cs.DropInDir, entry.Name()))
		}
	}
	sort.Strings(filenames)

	return filenames, nil
}

// parseDropInFiles parses every drop-in file in lexicographic order.
func (cs *ConfigSource) parseDropInFiles() ([]map[string]any, error) {
	paths, err := cs.findDropInFiles()
	if err != nil {
		return nil, err
	}

	var docs []map[string]any
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, wrapError(err, "failed to load %s", path)
		}
		doc, err := parseFile(path, data)
		if err != nil {
			return nil, err
		}
		slog.Debug("drop-in file parsed", "path", path)
		docs = append(docs, doc)
	}

	return docs, nil
}

// mergeDocuments merges src into dst. Tables merge recursively; any other
// value in src replaces the one in dst.
func mergeDocuments(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, srcVal := range src {
		srcTable, srcIsTable := srcVal.(map[string]any)
		dstTable, dstIsTable := dst[key].(map[string]any)
		if srcIsTable && dstIsTable {
			dst[key] = mergeDocuments(dstTable, srcTable)
			continue
		}
		dst[key] = srcVal
	}
	return dst
}
