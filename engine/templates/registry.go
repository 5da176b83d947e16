// Package templates discovers and renders stack templates. Templates are
// indexed by a (category, stack, component) triplet across two search
// roots: an override root for user-supplied templates and a core root
// shipped with the tool. Override entries always shadow core entries for
// the same triplet.
package templates

import (
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"
)

const (
	// ManifestFile must exist in a stack directory for the stack to be
	// discoverable. It prevents partial or abandoned stack directories
	// from being offered.
	ManifestFile = "meta.yaml"
	// Suffix is the template filename suffix: <component>_template.tmpl.
	Suffix = "_template.tmpl"

	// SourceCore and SourceOverride identify which root a resolved
	// template came from.
	SourceCore     = "core"
	SourceOverride = "override"
)

// Key identifies one template's role.
type Key struct {
	Category  string
	Stack     string
	Component string
}

// Template is a resolved template handle: the triplet, the path of the
// template file relative to its root, and the root it was found in.
type Template struct {
	Key    Key
	Path   string
	Source string
	root   fs.FS

	// Parsing is deferred to first render and memoized; a registry may
	// index many templates a run never touches.
	once     sync.Once
	parsed   *template.Template
	parseErr error
}

// Registry holds the immutable template index built once from the two
// search roots. It is safe for concurrent use; callers share a single
// instance per generation run.
type Registry struct {
	index map[Key]*Template
}

// NewRegistry scans the core root and then the override root for
// category/stack/<component>_template.tmpl files and builds the index.
// Either root may be nil. Stacks without a manifest marker file are
// skipped. A root that cannot be read (e.g. a missing override
// directory) contributes no entries; this is not an error.
func NewRegistry(override, core fs.FS) *Registry {
	r := &Registry{index: make(map[Key]*Template)}
	if core != nil {
		r.scan(core, SourceCore)
	}
	if override != nil {
		r.scan(override, SourceOverride)
	}
	return r
}

// scan indexes one root. Later scans overwrite earlier entries for the
// same triplet, which is how override priority is implemented.
func (r *Registry) scan(root fs.FS, source string) {
	categories, err := fs.ReadDir(root, ".")
	if err != nil {
		return
	}
	for _, cat := range categories {
		if !cat.IsDir() || strings.HasPrefix(cat.Name(), ".") {
			continue
		}
		stacks, err := fs.ReadDir(root, cat.Name())
		if err != nil {
			continue
		}
		for _, stack := range stacks {
			if !stack.IsDir() || strings.HasPrefix(stack.Name(), ".") {
				continue
			}
			stackDir := path.Join(cat.Name(), stack.Name())
			if _, err := fs.Stat(root, path.Join(stackDir, ManifestFile)); err != nil {
				continue
			}
			entries, err := fs.ReadDir(root, stackDir)
			if err != nil {
				continue
			}
			for _, entry := range entries {
				if entry.IsDir() || !strings.HasSuffix(entry.Name(), Suffix) {
					continue
				}
				component := strings.TrimSuffix(entry.Name(), Suffix)
				key := Key{Category: cat.Name(), Stack: stack.Name(), Component: component}
				r.index[key] = &Template{
					Key:    key,
					Path:   path.Join(stackDir, entry.Name()),
					Source: source,
					root:   root,
				}
			}
		}
	}
}

// Resolve returns the template for the given triplet, preferring the
// override root. It returns a *NotFoundError when the triplet resolves
// in neither root.
func (r *Registry) Resolve(category, stack, component string) (*Template, error) {
	t, ok := r.index[Key{Category: category, Stack: stack, Component: component}]
	if !ok {
		return nil, NewNotFoundError(category, stack, component)
	}
	return t, nil
}

// Components returns the sorted component names available for a
// category/stack pair.
func (r *Registry) Components(category, stack string) []string {
	var components []string
	for key := range r.index {
		if key.Category == category && key.Stack == stack {
			components = append(components, key.Component)
		}
	}
	sort.Strings(components)
	return components
}

// Stacks returns the sorted stack names available for a category.
func (r *Registry) Stacks(category string) []string {
	seen := make(map[string]struct{})
	for key := range r.index {
		if key.Category == category {
			seen[key.Stack] = struct{}{}
		}
	}
	stacks := make([]string, 0, len(seen))
	for stack := range seen {
		stacks = append(stacks, stack)
	}
	sort.Strings(stacks)
	return stacks
}

// Len returns the number of indexed templates.
func (r *Registry) Len() int {
	return len(r.index)
}
