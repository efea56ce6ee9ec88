// Package confkit holds the pieces shared by the service config loaders:
// path resolution, side files referenced from the main config, and .env
// loading.
package confkit

import (
	"os"
	"path/filepath"
)

// ResolvePath expands environment variables in file and joins it with base
// unless the result is already absolute.
func ResolvePath(base, file string) string {
	file = os.ExpandEnv(file)
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(base, file)
}

// Section is a config block that lives in its own file, such as llm.yaml.
// The main config only carries File; Value is filled by Hydrate.
type Section[T any] struct {
	File  string `json:",optional"`
	Value *T     `json:"-"`
}

// Hydrate loads File relative to base. An empty File leaves the section
// untouched so an inline Value set by code survives.
func (s *Section[T]) Hydrate(base string, loader func(string) (*T, error)) error {
	if s.File == "" {
		return nil
	}
	p := ResolvePath(base, s.File)
	v, err := loader(p)
	if err != nil {
		return err
	}
	s.File, s.Value = p, v
	return nil
}

// Describe returns the resolved file, "inline" for a Value without a file,
// or "" when the section is not configured.
func (s Section[T]) Describe() string {
	switch {
	case s.File != "":
		return s.File
	case s.Value != nil:
		return "inline"
	default:
		return ""
	}
}

// ProjectRoot walks up from dir until it finds go.mod or .git.
func ProjectRoot(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		if fileExists(filepath.Join(dir, "go.mod")) || fileExists(filepath.Join(dir, ".git")) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
