package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source is a structured configuration source consulted after the
// environment. Keys are colon-separated paths such as "Smtp:Host".
type Source interface {
	Lookup(key string) (string, bool)
}

// MapSource is a flattened, case-insensitive key/value Source.
type MapSource struct {
	values map[string]string
}

// NewMapSource returns a Source over the given flattened keys.
func NewMapSource(values map[string]string) *MapSource {
	s := &MapSource{values: make(map[string]string, len(values))}
	for k, v := range values {
		s.values[normalizeKey(k)] = v
	}
	return s
}

// Lookup returns the value stored under key, ignoring case.
func (s *MapSource) Lookup(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.values[normalizeKey(key)]
	return v, ok
}

// LoadFile reads a YAML configuration file and flattens its nested mappings
// into colon-separated keys. A file that does not exist yields an empty
// source so the environment alone can drive the service.
func LoadFile(path string) (*MapSource, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewMapSource(nil), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(b)
}

// Parse flattens a YAML document into a MapSource.
func Parse(b []byte) (*MapSource, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	flat := make(map[string]string)
	flatten("", doc, flat)
	return NewMapSource(flat), nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + ":" + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}
