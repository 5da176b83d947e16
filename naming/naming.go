// Package naming provides string-case conversion between the naming
// conventions used in generated code (snake_case, PascalCase, kebab-case)
// and validation of entity and field identifiers.
package naming

import (
	"regexp"
	"strings"

	"github.com/go-openapi/inflect"
)

var (
	separators   = regexp.MustCompile(`[\-\s]+`)
	acronymSplit = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	wordBoundary = regexp.MustCompile(`([a-z\d])([A-Z])`)
	identifier   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	pascalSplit  = regexp.MustCompile(`[_\-\s]+`)
)

// ToSnakeCase converts a string in PascalCase, camelCase, kebab-case or
// space-separated form to snake_case. Runs of uppercase letters followed
// by an uppercase+lowercase pair split before the pair, so acronyms stay
// together: "HTTPServer" becomes "http_server".
func ToSnakeCase(s string) string {
	out := separators.ReplaceAllString(s, "_")
	out = acronymSplit.ReplaceAllString(out, "${1}_${2}")
	out = wordBoundary.ReplaceAllString(out, "${1}_${2}")
	return strings.ToLower(out)
}

// ToPascalCase converts a string in snake_case, kebab-case, camelCase or
// space-separated form to PascalCase. Input already in PascalCase passes
// through unchanged.
func ToPascalCase(s string) string {
	parts := pascalSplit.Split(ToSnakeCase(s), -1)
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(strings.ToLower(part[1:]))
	}
	return b.String()
}

// ToKebabCase converts a string in PascalCase, camelCase, snake_case or
// space-separated form to kebab-case.
func ToKebabCase(s string) string {
	return strings.ReplaceAll(ToSnakeCase(s), "_", "-")
}

// Pluralize returns the plural form of a snake_case word. It is used for
// table names and route paths in stack templates.
func Pluralize(s string) string {
	return inflect.Pluralize(s)
}

// ValidateIdentifier reports whether name is a valid entity or field
// identifier: an ASCII letter followed by letters, digits or underscores.
// Empty strings, leading digits, underscores, hyphens and embedded
// whitespace are rejected.
func ValidateIdentifier(name string) bool {
	return identifier.MatchString(name)
}
