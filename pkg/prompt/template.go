// Package prompt renders text/template prompts loaded from disk or from an
// inline default.
package prompt

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"text/template"
)

// Template wraps a text/template with an optional function map. File-backed
// templates can be reloaded; inline ones are fixed at construction.
type Template struct {
	name   string
	path   string
	inline string
	funcs  template.FuncMap

	mu   sync.RWMutex
	tmpl *template.Template
	hash string
}

// NewTemplate parses the template at path using the provided template functions.
func NewTemplate(path string, funcs template.FuncMap) (*Template, error) {
	if path == "" {
		return nil, fmt.Errorf("prompt template path is empty")
	}
	t := &Template{
		name:  filepath.Base(path),
		path:  path,
		funcs: funcs,
	}
	if err := t.reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Inline parses text as a template called name.
func Inline(name, text string, funcs template.FuncMap) (*Template, error) {
	t := &Template{
		name:   name,
		inline: text,
		funcs:  funcs,
	}
	if err := t.parse([]byte(text)); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadOrInline uses the file at path when it exists and falls back to the
// inline text when path is empty or missing.
func LoadOrInline(path, name, text string, funcs template.FuncMap) (*Template, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return NewTemplate(path, funcs)
		}
	}
	return Inline(name, text, funcs)
}

// Render executes the template with the provided data and returns the rendered string.
func (t *Template) Render(data any) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.tmpl == nil {
		return "", fmt.Errorf("prompt template %q not parsed", t.name)
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute prompt template %q: %w", t.name, err)
	}
	return buf.String(), nil
}

// Reload reparses a file-backed template from disk.
func (t *Template) Reload() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reload()
}

// Source returns the file path, or "inline:<name>" for inline templates.
func (t *Template) Source() string {
	if t.path == "" {
		return "inline:" + t.name
	}
	return t.path
}

func (t *Template) reload() error {
	if t.path == "" {
		return nil
	}
	data, err := os.ReadFile(t.path)
	if err != nil {
		return fmt.Errorf("read prompt template %q: %w", t.path, err)
	}
	return t.parse(data)
}

func (t *Template) parse(data []byte) error {
	tmpl := template.New(t.name).Option("missingkey=error")
	if len(t.funcs) > 0 {
		tmpl = tmpl.Funcs(t.funcs)
	}
	if _, err := tmpl.Parse(string(data)); err != nil {
		return fmt.Errorf("parse prompt template %q: %w", t.name, err)
	}
	t.tmpl = tmpl
	t.hash = computeDigest(data)
	return nil
}

// Digest returns the sha256 hash of the template content.
func (t *Template) Digest() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.hash
}
