package twempest

import (
	"fmt"
	"strings"
	"text/template"
)

// Engine compiles post templates against a filter registry.
type Engine struct {
	filters map[string]Filter
}

// NewEngine creates an Engine. A nil registry means DefaultFilters.
func NewEngine(filters map[string]Filter) *Engine {
	if filters == nil {
		filters = DefaultFilters()
	}
	return &Engine{filters: filters}
}

// Template is a compiled post template.
// A Template rebinds its filters on every Expand and must not be expanded
// from several goroutines at once.
type Template struct {
	engine *Engine
	tmpl   *template.Template
}

// Parse compiles text. Syntax errors and unknown filters wrap ErrTemplate.
func (e *Engine) Parse(name, text string) (*Template, error) {
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(e.bind(&Post{})).
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return &Template{engine: e, tmpl: tmpl}, nil
}

// Name returns the name the template was parsed with.
func (t *Template) Name() string {
	return t.tmpl.Name()
}

// Expand executes the template against p with every filter bound to p.
func (t *Template) Expand(p *Post) (string, error) {
	t.tmpl.Funcs(t.engine.bind(p))

	var b strings.Builder
	if err := t.tmpl.Execute(&b, p); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return b.String(), nil
}

func (e *Engine) bind(p *Post) template.FuncMap {
	funcs := make(template.FuncMap, len(e.filters))
	for name, f := range e.filters {
		funcs[name] = f(p)
	}
	return funcs
}

// parseFragment compiles the small tag format handed to reimage or relink.
func parseFragment(filter, tagFormat string) (*template.Template, error) {
	tmpl, err := template.New(filter).Option("missingkey=error").Parse(tagFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %s tag format: %v", ErrTemplate, filter, err)
	}
	return tmpl, nil
}

func renderFragment(tmpl *template.Template, data map[string]string) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("%w: %s tag format: %v", ErrTemplate, tmpl.Name(), err)
	}
	return b.String(), nil
}
