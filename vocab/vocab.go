package vocab

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Package vocab holds the keyword vocabulary the label heuristic
// matches against. The defaults cover the Traktor command names seen
// in real mapping files; a YAML file can extend them for controllers
// with unusual naming.

// Default returns the built-in keyword list. Callers own the slice.
func Default() []string {
	return []string{
		"deck", "play", "cue", "sync", "loop", "volume", "eq",
		"filter", "master", "hotcue", "load", "browse", "fx",
		"tempo", "crossfader", "gain", "monitor", "pitch",
		"scratch", "seek", "jog",
	}
}

type file struct {
	Keywords []string `yaml:"keywords"`
	Replace  bool     `yaml:"replace"`
}

// Load reads extra keywords from a YAML file and merges them with the
// defaults (or replaces them when the file says `replace: true`).
// An empty path returns the defaults.
func Load(path string) ([]string, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("vocabulary file %s: %w", path, err)
	}
	if len(f.Keywords) == 0 {
		return nil, fmt.Errorf("vocabulary file %s: no keywords", path)
	}

	if f.Replace {
		return f.Keywords, nil
	}
	return append(Default(), f.Keywords...), nil
}
