package gen

import (
	"path"
)

// Stack describes how one backend stack lays out its generated files:
// which components render once against the whole context and where,
// which render once per entity and into which directory, and the
// component list to fall back on when template discovery yields nothing.
// Adding a stack means adding a descriptor, not new control flow.
type Stack struct {
	// Name is the stack identifier, e.g. "fastapi".
	Name string
	// Category is the template category the stack lives under.
	Category string
	// Ext is the extension of generated files.
	Ext string
	// SingleFile maps a component to its fixed relative output path.
	// Single-file components are required: a missing template aborts
	// the run.
	SingleFile map[string]string
	// PerEntity maps a component to the directory its per-entity files
	// are written into. Per-entity components are optional: a missing
	// template is skipped with a warning.
	PerEntity map[string]string
	// Fallback is the component list used when discovery fails.
	Fallback []string
	// Markers are package marker files ensured inside output
	// directories (empty, created when absent).
	Markers []string
}

// stacks holds the built-in stack descriptors.
var stacks = []*Stack{
	{
		Name:     "fastapi",
		Category: "back",
		Ext:      ".py",
		SingleFile: map[string]string{
			"models":  "app/models.py",
			"schemas": "app/schemas.py",
			"main":    "app/main.py",
			"db":      "app/database.py",
		},
		PerEntity: map[string]string{
			"crud":   "app/crud",
			"router": "app/routers",
		},
		Fallback: []string{"models", "schemas", "crud", "router", "main", "db"},
		Markers:  []string{"app/__init__.py"},
	},
	{
		Name:     "django",
		Category: "back",
		Ext:      ".py",
		SingleFile: map[string]string{
			"models":      "apps/core/models.py",
			"serializers": "apps/core/serializers.py",
			"viewsets":    "apps/core/viewsets.py",
			"urls":        "apps/core/urls.py",
			"admin":       "apps/core/admin.py",
		},
		Fallback: []string{"models", "serializers", "viewsets", "urls", "admin"},
		Markers:  []string{"apps/core/__init__.py"},
	},
}

// StackFor returns the descriptor for the named stack. Unknown stacks
// get a FastAPI-style default layout under their own name, so a stack
// that exists only as a user template directory still generates.
func StackFor(name string) *Stack {
	for _, s := range stacks {
		if s.Name == name {
			return s
		}
	}
	return &Stack{
		Name:     name,
		Category: "back",
		Ext:      ".py",
		SingleFile: map[string]string{
			"models":  "app/models.py",
			"schemas": "app/schemas.py",
		},
		PerEntity: map[string]string{
			"crud":   "app/crud",
			"router": "app/routers",
		},
		Fallback: []string{"models", "schemas", "crud", "router"},
		Markers:  []string{"app/__init__.py"},
	}
}

// Stacks returns the names of all built-in stacks.
func Stacks() []string {
	names := make([]string, 0, len(stacks))
	for _, s := range stacks {
		names = append(names, s.Name)
	}
	return names
}

// EntityPath returns the relative output path of a per-entity component
// for the given snake-case entity name.
func (s *Stack) EntityPath(component, entitySnake string) string {
	return path.Join(s.PerEntity[component], entitySnake+"_"+component+s.Ext)
}
