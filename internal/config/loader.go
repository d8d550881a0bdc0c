package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// SourceKind says where an effective value came from.
type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

// Source locates the writer of a config value.
type Source struct {
	Kind   SourceKind
	Name   string // for defaults
	File   string
	Line   int
	Column int
}

func fileSource(file string, n *yaml.Node) Source {
	return Source{Kind: SourceFile, File: file, Line: n.Line, Column: n.Column}
}

func (s Source) position() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// LoadResult is a loaded config together with where each key was set.
type LoadResult struct {
	Config *Config
	// Sources maps a dotted YAML path to the last file position that set it.
	Sources map[string]Source
	// Files lists every file read, includes before the file including them.
	Files []string
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/floatkit/config.yaml, falling
// back to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" && filepath.IsAbs(dir) {
		return filepath.Join(dir, "floatkit", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "floatkit", "config.yaml"), nil
}

// Load reads the merged configuration from the standard location. A missing
// file yields the defaults.
func Load() (*Config, error) {
	res, err := LoadWithSources()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSources is Load, keeping per-key sources for introspection.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads path and everything it includes, then builds and
// validates the effective config. A missing path yields the defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	l := newLoader()
	if _, err := os.Stat(path); err == nil {
		if err := l.load(path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg, err := BuildEffectiveConfig(l.raw)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return nil, l.withSource(err)
	}
	return &LoadResult{Config: cfg, Sources: l.sources, Files: l.files}, nil
}

// loader walks a config file and its includes depth first. Included files
// merge before the file that names them, so the including file wins.
type loader struct {
	raw     RawConfig
	sources map[string]Source
	files   []string
	done    map[string]bool
	stack   []string
}

func newLoader() *loader {
	return &loader{
		sources: make(map[string]Source),
		done:    make(map[string]bool),
	}
}

func (l *loader) load(path string) error {
	file := canonicalPath(path)
	if slices.Contains(l.stack, file) {
		chain := append(slices.Clone(l.stack), file)
		return fmt.Errorf("include cycle detected: %s", strings.Join(chain, " -> "))
	}
	if l.done[file] {
		return nil
	}
	l.done[file] = true

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("%s: failed to read: %w", file, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%s: failed to parse yaml: %w", file, err)
	}
	var raw RawConfig
	if err := decodeStrict(data, &raw); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	root := rootMapping(&doc)

	l.stack = append(l.stack, file)
	for _, inc := range includeNodes(root) {
		paths, err := expandInclude(file, inc.Value)
		if err != nil {
			return fmt.Errorf("%s: include %q: %w", fileSource(file, inc).position(), inc.Value, err)
		}
		for _, p := range paths {
			if err := l.load(p); err != nil {
				return err
			}
		}
	}
	l.stack = l.stack[:len(l.stack)-1]

	l.raw = l.raw.merge(raw)
	recordSources(root, file, "", l.sources)
	l.files = append(l.files, file)
	return nil
}

// withSource attaches the file position that set a failing key.
func (l *loader) withSource(err error) error {
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path == "" {
		return err
	}
	if src, ok := l.sources[verr.Path]; ok {
		verr.Source = src
	}
	return verr
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func canonicalPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if real, err := filepath.EvalSymlinks(path); err == nil {
		return real
	}
	return path
}

func rootMapping(doc *yaml.Node) *yaml.Node {
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return nil
	}
	return n
}

// includeNodes returns the scalar entries of the top-level include key.
func includeNodes(root *yaml.Node) []*yaml.Node {
	if root == nil {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "include" {
			continue
		}
		v := root.Content[i+1]
		switch v.Kind {
		case yaml.ScalarNode:
			return []*yaml.Node{v}
		case yaml.SequenceNode:
			var out []*yaml.Node
			for _, item := range v.Content {
				if item.Kind == yaml.ScalarNode {
					out = append(out, item)
				}
			}
			return out
		}
	}
	return nil
}

// expandInclude resolves one include entry relative to the including file.
// A directory contributes its *.yaml and *.yml files and a glob its matches,
// both in lexical order.
func expandInclude(from, include string) ([]string, error) {
	if include == "" {
		return nil, errors.New("path is empty")
	}
	path, err := expandHome(include)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(from), path)
	}

	if strings.ContainsAny(path, "*?[") {
		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %s", path)
		}
		slices.Sort(matches)
		return matches, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, ent := range entries {
		switch strings.ToLower(filepath.Ext(ent.Name())) {
		case ".yaml", ".yml":
			if !ent.IsDir() {
				files = append(files, filepath.Join(path, ent.Name()))
			}
		}
	}
	slices.Sort(files)
	return files, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// recordSources notes the position of every mapping value under prefix.
// Sequences are recorded as a whole.
func recordSources(n *yaml.Node, file, prefix string, out map[string]Source) {
	if n == nil || n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, n.Content[i+1]
		if prefix != "" {
			key = prefix + "." + key
		}
		out[key] = fileSource(file, val)
		recordSources(val, file, key, out)
	}
}
