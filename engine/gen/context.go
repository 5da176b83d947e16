package gen

import (
	"github.com/inovahubco/brickend/engine/load"
	"github.com/inovahubco/brickend/naming"
)

// sqlTypes maps a field type to its stack-agnostic SQL type tag.
var sqlTypes = map[load.FieldType]string{
	load.TypeUUID:     "UUID",
	load.TypeString:   "VARCHAR",
	load.TypeText:     "TEXT",
	load.TypeInteger:  "INTEGER",
	load.TypeFloat:    "FLOAT",
	load.TypeBoolean:  "BOOLEAN",
	load.TypeDatetime: "TIMESTAMP",
}

// pythonTypes maps a field type to the Python annotation used by backend
// stack templates.
var pythonTypes = map[load.FieldType]string{
	load.TypeUUID:     "UUID",
	load.TypeString:   "str",
	load.TypeText:     "str",
	load.TypeInteger:  "int",
	load.TypeFloat:    "float",
	load.TypeBoolean:  "bool",
	load.TypeDatetime: "datetime",
}

// typescriptTypes maps a field type to the TypeScript type used by
// client-facing templates.
var typescriptTypes = map[load.FieldType]string{
	load.TypeUUID:     "string",
	load.TypeString:   "string",
	load.TypeText:     "string",
	load.TypeInteger:  "number",
	load.TypeFloat:    "number",
	load.TypeBoolean:  "boolean",
	load.TypeDatetime: "Date",
}

// Names holds the case variants of an entity or field name.
type Names struct {
	Snake  string
	Pascal string
	Kebab  string
}

// FieldContext is the derived, render-ready view of a single field.
type FieldContext struct {
	OriginalName   string
	Names          Names
	Type           load.FieldType
	SQLType        string
	PythonType     string
	TypeScriptType string
	PrimaryKey     bool
	Unique         bool
	Nullable       bool
	// Required is true for non-nullable, non-key fields: the ones a
	// create payload must carry.
	Required       bool
	HasDefault     bool
	Default        string
	ForeignKey     string
	IsRelationship bool
	Constraints    []string
}

// EntityContext is the derived, render-ready view of a single entity.
type EntityContext struct {
	OriginalName string
	Names        Names
	// TableName is the default table name (snake case).
	TableName string
	// ClassName is the default class name (Pascal case).
	ClassName string
	// Plural is the pluralized snake-case name, used for route paths
	// and collection names.
	Plural string
	// RoutePath is the default API route for the entity.
	RoutePath string
	Fields    []FieldContext
	// PrimaryKeyField is the snake-case name of the primary key when
	// the entity has exactly one; empty for composite keys.
	PrimaryKeyField string
	// PrimaryKeys holds the ordered snake-case names of all fields
	// marked as primary key.
	PrimaryKeys      []string
	FieldCount       int
	HasRelationships bool
	RequiredFields   []FieldContext
	OptionalFields   []FieldContext
	UniqueFields     []FieldContext
}

// ProjectInfo carries project metadata into template rendering. It is
// supplied by the configuration-loading collaborator.
type ProjectInfo struct {
	Name     string
	Version  string
	Stack    string
	Settings map[string]any
}

// RenderContext is the fully derived, read-only structure fed to
// template rendering. It is built once per generation run and must not
// be mutated afterwards; the same context may be rendered against many
// templates concurrently.
type RenderContext struct {
	Entities    []EntityContext
	EntityCount int
	TotalFields int
	// EntityNames, EntityClasses and TableNames are parallel convenience
	// collections over Entities.
	EntityNames   []string
	EntityClasses []string
	TableNames    []string
	// EntitiesWithRelationships holds the original names of entities
	// carrying at least one foreign-key reference.
	EntitiesWithRelationships []string
	NeedsUUIDImport           bool
	NeedsDatetimeImport       bool

	// Project is filled in by the orchestrator before rendering.
	Project ProjectInfo
	// Entity is set on a per-entity copy of the context when rendering
	// per-entity components; nil for single-file components.
	Entity *EntityContext
}

// Build converts entity definitions into a render context. It fails with
// a *ValidationError, never a partial context, when an entity or field
// name is not a valid identifier, names are duplicated, a field type is
// outside the allowed enumeration, or an entity has no primary key.
// Validation runs before any derived data is computed.
func Build(input load.Input) (*RenderContext, error) {
	defs, err := input.Entities()
	if err != nil {
		return nil, NewValidationError("", "", nil, err.Error())
	}
	if err := validate(defs); err != nil {
		return nil, err
	}

	rc := &RenderContext{
		Entities:    make([]EntityContext, 0, len(defs)),
		EntityCount: len(defs),
	}
	for _, def := range defs {
		ec := buildEntity(def)
		rc.Entities = append(rc.Entities, ec)
		rc.TotalFields += ec.FieldCount
		rc.EntityNames = append(rc.EntityNames, ec.Names.Snake)
		rc.EntityClasses = append(rc.EntityClasses, ec.Names.Pascal)
		rc.TableNames = append(rc.TableNames, ec.TableName)
		if ec.HasRelationships {
			rc.EntitiesWithRelationships = append(rc.EntitiesWithRelationships, ec.OriginalName)
		}
		for _, f := range ec.Fields {
			switch f.Type {
			case load.TypeUUID:
				rc.NeedsUUIDImport = true
			case load.TypeDatetime:
				rc.NeedsDatetimeImport = true
			}
		}
	}
	return rc, nil
}

// validate checks all structural invariants in a single pass: entity-name
// duplication across the list first, then per entity: name validity,
// field-name duplication, per-field validity and primary-key presence.
// The first violation is reported.
func validate(defs []load.EntityDefinition) error {
	seen := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		if _, dup := seen[def.Name]; dup {
			return NewValidationError(def.Name, "", nil, "duplicate entity name")
		}
		seen[def.Name] = struct{}{}
	}

	for _, def := range defs {
		if !naming.ValidateIdentifier(def.Name) {
			return NewValidationError(def.Name, "", def.Name,
				"invalid entity name; must start with a letter and contain only letters, digits, or underscores")
		}
		fieldNames := make(map[string]struct{}, len(def.Fields))
		for _, f := range def.Fields {
			if _, dup := fieldNames[f.Name]; dup {
				return NewValidationError(def.Name, f.Name, nil, "duplicate field name")
			}
			fieldNames[f.Name] = struct{}{}
		}
		hasPK := false
		for _, f := range def.Fields {
			if !naming.ValidateIdentifier(f.Name) {
				return NewValidationError(def.Name, f.Name, f.Name,
					"invalid field name; must start with a letter and contain only letters, digits, or underscores")
			}
			if !f.Type.Valid() {
				return NewValidationError(def.Name, f.Name, f.Type.String(), "unknown field type")
			}
			if f.PrimaryKey {
				hasPK = true
			}
		}
		if !hasPK {
			return NewValidationError(def.Name, "", nil, "no field marked as primary_key")
		}
	}
	return nil
}

func buildEntity(def load.EntityDefinition) EntityContext {
	snake := naming.ToSnakeCase(def.Name)
	plural := naming.Pluralize(snake)
	ec := EntityContext{
		OriginalName: def.Name,
		Names: Names{
			Snake:  snake,
			Pascal: naming.ToPascalCase(def.Name),
			Kebab:  naming.ToKebabCase(def.Name),
		},
		TableName:  snake,
		Plural:     plural,
		RoutePath:  "/" + naming.ToKebabCase(def.Name),
		FieldCount: len(def.Fields),
	}
	ec.ClassName = ec.Names.Pascal

	for _, fdef := range def.Fields {
		fc := buildField(fdef)
		ec.Fields = append(ec.Fields, fc)
		if fc.PrimaryKey {
			ec.PrimaryKeys = append(ec.PrimaryKeys, fc.Names.Snake)
		}
		if fc.IsRelationship {
			ec.HasRelationships = true
		}
		switch {
		case fc.Required:
			ec.RequiredFields = append(ec.RequiredFields, fc)
		case fc.Nullable && !fc.PrimaryKey:
			ec.OptionalFields = append(ec.OptionalFields, fc)
		}
		if fc.Unique {
			ec.UniqueFields = append(ec.UniqueFields, fc)
		}
	}
	if len(ec.PrimaryKeys) == 1 {
		ec.PrimaryKeyField = ec.PrimaryKeys[0]
	}
	return ec
}

func buildField(def load.FieldDefinition) FieldContext {
	nullable := def.Nullable
	if def.PrimaryKey {
		// Primary keys are never nullable, whatever the definition says.
		nullable = false
	}
	fc := FieldContext{
		OriginalName: def.Name,
		Names: Names{
			Snake:  naming.ToSnakeCase(def.Name),
			Pascal: naming.ToPascalCase(def.Name),
			Kebab:  naming.ToKebabCase(def.Name),
		},
		Type:        def.Type,
		SQLType:     sqlTypes[def.Type],
		PrimaryKey:  def.PrimaryKey,
		Unique:      def.Unique,
		Nullable:    nullable,
		Required:    !nullable && !def.PrimaryKey,
		Constraints: append([]string(nil), def.Constraints...),
	}
	fc.PythonType = pythonTypes[def.Type]
	fc.TypeScriptType = typescriptTypes[def.Type]
	if nullable {
		fc.PythonType = "Optional[" + fc.PythonType + "]"
		fc.TypeScriptType = fc.TypeScriptType + " | null"
	}
	if def.Default != nil {
		fc.HasDefault = true
		fc.Default = *def.Default
	}
	if def.ForeignKey != nil {
		fc.ForeignKey = *def.ForeignKey
		fc.IsRelationship = true
	}
	return fc
}

// WithEntity returns a shallow per-entity copy of the context for
// rendering per-entity components. The receiver is not modified.
func (rc *RenderContext) WithEntity(e *EntityContext) *RenderContext {
	cp := *rc
	cp.Entity = e
	return &cp
}

// WithProject returns a copy of the context carrying the given project
// metadata. The receiver is not modified.
func (rc *RenderContext) WithProject(p ProjectInfo) *RenderContext {
	cp := *rc
	cp.Project = p
	return &cp
}
