// Package integrations ships the built-in stack templates. The embedded
// tree mirrors the on-disk layout a user override root uses:
// <category>/<stack>/<component>_template.tmpl plus a meta.yaml manifest
// per stack.
package integrations

import (
	"embed"
	"io/fs"
)

//go:embed back
var core embed.FS

// Core returns the built-in template root, suitable as the core root of
// a template registry.
func Core() fs.FS {
	return core
}
