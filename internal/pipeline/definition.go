package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Operation names accepted in a step's op field
const (
	OpGather   = "gather"
	OpSpread   = "spread"
	OpSeparate = "separate"
	OpUnite    = "unite"
	OpSelect   = "select"
	OpDistinct = "distinct"
	OpTag      = "tag"
)

// Source formats
const (
	FormatCSV    = "csv"
	FormatJSON   = "json"
	FormatSQLite = "sqlite"
)

// Definition describes one pipeline run: where the raw tables come from,
// what happens to them, and which normalized tables come out.
type Definition struct {
	Name    string   `yaml:"name"`
	Sources []Source `yaml:"sources"`
	Steps   []Step   `yaml:"steps"`
	Outputs []Output `yaml:"outputs"`

	// dir is the directory of the definition file; relative source paths
	// are resolved against it.
	dir string
}

// Source is one raw table. When Tag is set the table gets a provenance
// column of that name holding the source name.
type Source struct {
	Name   string `yaml:"name"`
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
	Query  string `yaml:"query"`
	Tag    string `yaml:"tag"`
}

// Step is one operation. Which fields apply depends on Op:
//
//	gather:   key, value, columns, drop_missing
//	spread:   key, value
//	separate: column, into, offsets, drop_source
//	unite:    column (target), columns, sep, drop_source
//	select:   columns, rename
//	distinct: -
//	tag:      column, value
type Step struct {
	Op          string            `yaml:"op"`
	Key         string            `yaml:"key"`
	Value       string            `yaml:"value"`
	Column      string            `yaml:"column"`
	Columns     []string          `yaml:"columns"`
	Into        []string          `yaml:"into"`
	Offsets     []int             `yaml:"offsets"`
	Sep         string            `yaml:"sep"`
	Rename      map[string]string `yaml:"rename"`
	DropMissing bool              `yaml:"drop_missing"`
	DropSource  bool              `yaml:"drop_source"`
}

// Output is a normalized sub-table projected from the final table
type Output struct {
	Name     string   `yaml:"name"`
	Columns  []string `yaml:"columns"`
	Distinct bool     `yaml:"distinct"`
}

// LoadDefinition reads and validates a pipeline definition file
func LoadDefinition(path string) (*Definition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline definition: %w", err)
	}
	def, err := ParseDefinition(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	def.dir = filepath.Dir(path)
	return def, nil
}

// ParseDefinition decodes a YAML definition. Unknown fields are rejected.
func ParseDefinition(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty pipeline definition")
		}
		return nil, fmt.Errorf("invalid pipeline definition: %w", err)
	}
	for i := range def.Sources {
		if def.Sources[i].Format == "" {
			def.Sources[i].Format = FormatFromPath(def.Sources[i].Path)
		}
		def.Sources[i].Format = strings.ToLower(def.Sources[i].Format)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// ResolvePath returns p relative to the definition file's directory
func (d *Definition) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || d.dir == "" {
		return p
	}
	return filepath.Join(d.dir, p)
}

// FormatFromPath guesses a source format from its file extension
func FormatFromPath(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".csv", ".tsv":
		return FormatCSV
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	case "":
		// a table directory holding meta.json and data.json
		return FormatJSON
	default:
		return ""
	}
}

// Validate checks the definition before anything is loaded
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("pipeline name is required")
	}
	if len(d.Sources) == 0 {
		return fmt.Errorf("pipeline %s: at least one source is required", d.Name)
	}

	names := make(map[string]bool, len(d.Sources))
	for i, src := range d.Sources {
		if src.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		if names[src.Name] {
			return fmt.Errorf("source %s: duplicate name", src.Name)
		}
		names[src.Name] = true
		if src.Path == "" {
			return fmt.Errorf("source %s: path is required", src.Name)
		}
		switch src.Format {
		case FormatCSV, FormatJSON:
		case FormatSQLite:
			if src.Query == "" {
				return fmt.Errorf("source %s: sqlite sources need a query", src.Name)
			}
		default:
			return fmt.Errorf("source %s: unknown format %q (expected csv, json or sqlite)", src.Name, src.Format)
		}
	}

	for i, step := range d.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}

	outputs := make(map[string]bool, len(d.Outputs))
	for i, out := range d.Outputs {
		if out.Name == "" {
			return fmt.Errorf("output %d: name is required", i)
		}
		if outputs[out.Name] {
			return fmt.Errorf("output %s: duplicate name", out.Name)
		}
		outputs[out.Name] = true
		if len(out.Columns) == 0 {
			return fmt.Errorf("output %s: columns are required", out.Name)
		}
	}
	return nil
}

func (s Step) validate() error {
	if len(s.Rename) > 0 && s.Op != OpSelect {
		return fmt.Errorf("rename is only valid for select")
	}
	switch s.Op {
	case OpGather:
		if s.Key == "" || s.Value == "" || len(s.Columns) == 0 {
			return fmt.Errorf("key, value and columns are required")
		}
	case OpSpread:
		if s.Key == "" || s.Value == "" {
			return fmt.Errorf("key and value are required")
		}
	case OpSeparate:
		if s.Column == "" || len(s.Into) == 0 {
			return fmt.Errorf("column and into are required")
		}
	case OpUnite:
		if s.Column == "" || len(s.Columns) == 0 {
			return fmt.Errorf("column and columns are required")
		}
	case OpSelect:
		if len(s.Columns) == 0 {
			return fmt.Errorf("columns are required")
		}
		for _, from := range slices.Sorted(maps.Keys(s.Rename)) {
			if !slices.Contains(s.Columns, from) {
				return fmt.Errorf("rename %q: column is not selected", from)
			}
		}
	case OpDistinct:
	case OpTag:
		if s.Column == "" {
			return fmt.Errorf("column is required")
		}
	case "":
		return fmt.Errorf("op is required")
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
	return nil
}
