// Package summary renders the short outcome texts attached to analytics
// records and lead payloads: the estimate summary and the community-request
// note. Templates are pongo2; the defaults are embedded and callers may
// supply their own set.
package summary

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Names of the embedded templates.
const (
	TemplateEstimateResults  = "estimate_results"
	TemplateCommunityRequest = "community_request"
)

const templateExt = ".tpl"

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	files fs.FS
}

// WithFS replaces the embedded template set.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// Engine loads and caches compiled templates from an fs.FS.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

// New constructs an engine over the embedded templates plus any overrides.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	files := cfg.files
	if files == nil {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("summary: embedded templates: %w", err)
		}
		files = sub
	}

	return &Engine{
		set:       pongo2.NewSet("summary", pongo2.NewFSLoader(files)),
		templates: make(map[string]*pongo2.Template),
	}, nil
}

// Render executes the named template against data and returns the trimmed
// output.
func (e *Engine) Render(name string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("summary: engine is nil")
	}

	tmpl, err := e.template(name)
	if err != nil {
		return "", err
	}

	out, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("summary: execute template %q: %w", name, err)
	}
	return strings.TrimSpace(out), nil
}

func (e *Engine) template(name string) (*pongo2.Template, error) {
	path := name
	if !strings.HasSuffix(path, templateExt) {
		path += templateExt
	}

	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("summary: load template %q: %w", path, err)
	}

	e.templates[path] = tmpl
	return tmpl, nil
}
