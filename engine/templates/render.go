package templates

import (
	"io/fs"
	"strings"
	"text/template"

	"github.com/inovahubco/brickend/naming"
)

// funcs are the helpers available inside stack templates.
var funcs = template.FuncMap{
	"snake":  naming.ToSnakeCase,
	"pascal": naming.ToPascalCase,
	"kebab":  naming.ToKebabCase,
	"plural": naming.Pluralize,
	"lower":  strings.ToLower,
	"upper":  strings.ToUpper,
	"join":   strings.Join,
}

// parse reads and parses the template file. It runs once per template;
// a registry may index many templates a run never touches, so parsing
// is deferred to first render.
func (t *Template) parse() {
	content, err := fs.ReadFile(t.root, t.Path)
	if err != nil {
		t.parseErr = NewNotFoundError(t.Key.Category, t.Key.Stack, t.Key.Component)
		return
	}
	t.parsed, err = template.New(t.Key.Component).Funcs(funcs).Parse(string(content))
	if err != nil {
		t.parseErr = NewSyntaxError(t.Path, err)
	}
}

// Render executes the resolved template against data and returns the
// rendered text. Parse and execution failures are reported as a
// *SyntaxError carrying the template path; the data is never mutated and
// the same value may be rendered against many templates concurrently.
func (r *Registry) Render(t *Template, data any) (string, error) {
	t.once.Do(t.parse)
	if t.parseErr != nil {
		return "", t.parseErr
	}
	var b strings.Builder
	if err := t.parsed.Execute(&b, data); err != nil {
		return "", NewSyntaxError(t.Path, err)
	}
	return b.String(), nil
}

// RenderComponent resolves the triplet and renders it against data in
// one step.
func (r *Registry) RenderComponent(category, stack, component string, data any) (string, error) {
	t, err := r.Resolve(category, stack, component)
	if err != nil {
		return "", err
	}
	return r.Render(t, data)
}
