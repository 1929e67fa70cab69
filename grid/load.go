package grid

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type document struct {
	Grids []*Spec `yaml:"grids"`
}

// Load reads a YAML document with a top level grids list. Every grid is
// validated. An empty document yields no grids.
func Load(r io.Reader) ([]*Spec, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse grids: %w", err)
	}
	seen := make(map[string]bool, len(doc.Grids))
	for i, s := range doc.Grids {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("grid %d: %w", i, err)
		}
		if s.Name == "" {
			return nil, fmt.Errorf("grid %d: %w: missing name", i, ErrInvalidSpec)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("grid %d: %w: duplicate name %q", i, ErrInvalidSpec, s.Name)
		}
		seen[s.Name] = true
	}
	return doc.Grids, nil
}

// LoadFile reads grids from a YAML file.
func LoadFile(path string) ([]*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open grid file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Merge returns builtin grids overlaid with extra grids of the same name.
func Merge(base, extra []*Spec) []*Spec {
	out := make([]*Spec, 0, len(base)+len(extra))
	index := make(map[string]int, len(base))
	for _, s := range base {
		index[s.Name] = len(out)
		out = append(out, s)
	}
	for _, s := range extra {
		if i, ok := index[s.Name]; ok {
			out[i] = s
			continue
		}
		index[s.Name] = len(out)
		out = append(out, s)
	}
	return out
}
