// Package load defines the entity definitions consumed by the generation
// engine and normalizes the supported input representations into a single
// canonical form.
//
// Two representations are accepted: a typed List of EntityDefinition
// values, and a RecordList of raw key/value records as produced by a
// generic document decoder. Both are resolved to []EntityDefinition
// before any validation runs, so downstream code never branches on the
// input shape.
package load

import (
	"fmt"
)

// FieldType enumerates the stack-agnostic field types an entity
// definition may use.
type FieldType string

// The allowed field types.
const (
	TypeUUID     FieldType = "uuid"
	TypeString   FieldType = "string"
	TypeText     FieldType = "text"
	TypeInteger  FieldType = "integer"
	TypeFloat    FieldType = "float"
	TypeBoolean  FieldType = "boolean"
	TypeDatetime FieldType = "datetime"
)

// Types lists all allowed field types in a stable order.
var Types = []FieldType{
	TypeUUID,
	TypeString,
	TypeText,
	TypeInteger,
	TypeFloat,
	TypeBoolean,
	TypeDatetime,
}

// Valid reports whether t is one of the allowed field types.
func (t FieldType) Valid() bool {
	for _, allowed := range Types {
		if t == allowed {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (t FieldType) String() string { return string(t) }

// FieldDefinition describes a single field of an entity.
type FieldDefinition struct {
	Name        string    `yaml:"name" json:"name"`
	Type        FieldType `yaml:"type" json:"type"`
	PrimaryKey  bool      `yaml:"primary_key,omitempty" json:"primary_key,omitempty"`
	Unique      bool      `yaml:"unique,omitempty" json:"unique,omitempty"`
	Nullable    bool      `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	Default     *string   `yaml:"default,omitempty" json:"default,omitempty"`
	ForeignKey  *string   `yaml:"foreign_key,omitempty" json:"foreign_key,omitempty"`
	Constraints []string  `yaml:"constraints,omitempty" json:"constraints,omitempty"`
}

// EntityDefinition describes a single entity and its fields.
type EntityDefinition struct {
	Name   string            `yaml:"name" json:"name"`
	Fields []FieldDefinition `yaml:"fields" json:"fields"`
}

// Input is implemented by the supported entity input representations.
// Entities returns the canonical definition list; normalization failures
// (malformed records) are reported here, semantic validation happens in
// the context builder.
type Input interface {
	Entities() ([]EntityDefinition, error)
}

// List is the typed input representation: an ordered collection of
// entity definitions.
type List []EntityDefinition

// Entities implements Input.
func (l List) Entities() ([]EntityDefinition, error) {
	return []EntityDefinition(l), nil
}

// RecordList is the raw input representation: uniform key/value records
// as decoded from a structured document.
type RecordList []map[string]any

// Entities implements Input by decoding each record into an
// EntityDefinition.
func (r RecordList) Entities() ([]EntityDefinition, error) {
	defs := make([]EntityDefinition, 0, len(r))
	for i, rec := range r {
		def, err := decodeEntity(rec)
		if err != nil {
			return nil, fmt.Errorf("load: record %d: %w", i, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func decodeEntity(rec map[string]any) (EntityDefinition, error) {
	var def EntityDefinition
	name, err := stringValue(rec, "name")
	if err != nil {
		return def, err
	}
	def.Name = name

	raw, ok := rec["fields"]
	if !ok {
		return def, fmt.Errorf("entity %q: missing fields", name)
	}
	items, ok := raw.([]any)
	if !ok {
		return def, fmt.Errorf("entity %q: fields must be a list", name)
	}
	for i, item := range items {
		frec, ok := toRecord(item)
		if !ok {
			return def, fmt.Errorf("entity %q: field %d is not a record", name, i)
		}
		field, err := decodeField(frec)
		if err != nil {
			return def, fmt.Errorf("entity %q: %w", name, err)
		}
		def.Fields = append(def.Fields, field)
	}
	return def, nil
}

func decodeField(rec map[string]any) (FieldDefinition, error) {
	var f FieldDefinition
	name, err := stringValue(rec, "name")
	if err != nil {
		return f, err
	}
	typ, err := stringValue(rec, "type")
	if err != nil {
		return f, fmt.Errorf("field %q: %w", name, err)
	}
	f.Name = name
	f.Type = FieldType(typ)
	f.PrimaryKey = boolValue(rec, "primary_key", false)
	f.Unique = boolValue(rec, "unique", false)
	f.Nullable = boolValue(rec, "nullable", true)
	if v, ok := rec["default"]; ok && v != nil {
		s := fmt.Sprint(v)
		f.Default = &s
	}
	if v, ok := rec["foreign_key"]; ok && v != nil {
		s := fmt.Sprint(v)
		f.ForeignKey = &s
	}
	if v, ok := rec["constraints"]; ok && v != nil {
		items, ok := v.([]any)
		if !ok {
			return f, fmt.Errorf("field %q: constraints must be a list", name)
		}
		for _, item := range items {
			f.Constraints = append(f.Constraints, fmt.Sprint(item))
		}
	}
	return f, nil
}

// toRecord accepts both map[string]any and map[any]any record shapes,
// since document decoders differ in which they produce.
func toRecord(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		rec := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			rec[ks] = val
		}
		return rec, true
	default:
		return nil, false
	}
}

func stringValue(rec map[string]any, key string) (string, error) {
	v, ok := rec[key]
	if !ok {
		return "", fmt.Errorf("missing %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, v)
	}
	return s, nil
}

func boolValue(rec map[string]any, key string, def bool) bool {
	v, ok := rec[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}
