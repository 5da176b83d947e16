package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovahubco/brickend/engine/load"
)

func userEntity() load.EntityDefinition {
	return load.EntityDefinition{
		Name: "User",
		Fields: []load.FieldDefinition{
			{Name: "id", Type: load.TypeUUID, PrimaryKey: true},
			{Name: "email", Type: load.TypeString, Unique: true, Nullable: false},
		},
	}
}

func TestBuild(t *testing.T) {
	t.Run("counts match input", func(t *testing.T) {
		rc, err := Build(load.List{
			userEntity(),
			{Name: "Post", Fields: []load.FieldDefinition{
				{Name: "id", Type: load.TypeInteger, PrimaryKey: true},
				{Name: "title", Type: load.TypeString},
				{Name: "body", Type: load.TypeText, Nullable: true},
			}},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, rc.EntityCount)
		assert.Len(t, rc.Entities, 2)
		assert.Equal(t, 2, rc.Entities[0].FieldCount)
		assert.Equal(t, 3, rc.Entities[1].FieldCount)
		assert.Equal(t, 5, rc.TotalFields)
	})

	t.Run("end to end user entity", func(t *testing.T) {
		rc, err := Build(load.List{userEntity()})
		require.NoError(t, err)
		require.Equal(t, 1, rc.EntityCount)

		ent := rc.Entities[0]
		assert.Equal(t, "id", ent.PrimaryKeyField)
		assert.Len(t, ent.Fields, 2)
		require.Len(t, ent.UniqueFields, 1)
		assert.Equal(t, "email", ent.UniqueFields[0].Names.Snake)
		assert.True(t, rc.NeedsUUIDImport)
		assert.False(t, rc.NeedsDatetimeImport)
	})

	t.Run("name variants", func(t *testing.T) {
		rc, err := Build(load.List{{
			Name: "UserProfile",
			Fields: []load.FieldDefinition{
				{Name: "id", Type: load.TypeUUID, PrimaryKey: true},
			},
		}})
		require.NoError(t, err)
		ent := rc.Entities[0]
		assert.Equal(t, "user_profile", ent.Names.Snake)
		assert.Equal(t, "UserProfile", ent.Names.Pascal)
		assert.Equal(t, "user-profile", ent.Names.Kebab)
		assert.Equal(t, "user_profile", ent.TableName)
		assert.Equal(t, "user_profiles", ent.Plural)
		assert.Equal(t, "/user-profile", ent.RoutePath)
	})

	t.Run("composite primary key yields ordered list", func(t *testing.T) {
		rc, err := Build(load.List{{
			Name: "Membership",
			Fields: []load.FieldDefinition{
				{Name: "user_id", Type: load.TypeUUID, PrimaryKey: true},
				{Name: "group_id", Type: load.TypeUUID, PrimaryKey: true},
			},
		}})
		require.NoError(t, err)
		ent := rc.Entities[0]
		assert.Empty(t, ent.PrimaryKeyField)
		assert.Equal(t, []string{"user_id", "group_id"}, ent.PrimaryKeys)
	})

	t.Run("primary key is never nullable", func(t *testing.T) {
		rc, err := Build(load.List{{
			Name: "Token",
			Fields: []load.FieldDefinition{
				{Name: "id", Type: load.TypeUUID, PrimaryKey: true, Nullable: true},
			},
		}})
		require.NoError(t, err)
		f := rc.Entities[0].Fields[0]
		assert.False(t, f.Nullable)
		assert.False(t, f.Required)
		assert.Equal(t, "UUID", f.PythonType)
	})

	t.Run("type mapping", func(t *testing.T) {
		rc, err := Build(load.List{{
			Name: "Event",
			Fields: []load.FieldDefinition{
				{Name: "id", Type: load.TypeUUID, PrimaryKey: true},
				{Name: "name", Type: load.TypeString},
				{Name: "payload", Type: load.TypeText, Nullable: true},
				{Name: "count", Type: load.TypeInteger},
				{Name: "score", Type: load.TypeFloat},
				{Name: "active", Type: load.TypeBoolean},
				{Name: "created_at", Type: load.TypeDatetime},
			},
		}})
		require.NoError(t, err)
		fields := rc.Entities[0].Fields
		sql := make(map[string]string, len(fields))
		for _, f := range fields {
			sql[f.Names.Snake] = f.SQLType
		}
		assert.Equal(t, map[string]string{
			"id": "UUID", "name": "VARCHAR", "payload": "TEXT",
			"count": "INTEGER", "score": "FLOAT", "active": "BOOLEAN",
			"created_at": "TIMESTAMP",
		}, sql)

		assert.Equal(t, "Optional[str]", fields[2].PythonType)
		assert.Equal(t, "string | null", fields[2].TypeScriptType)
		assert.Equal(t, "datetime", fields[6].PythonType)
		assert.True(t, rc.NeedsDatetimeImport)
	})

	t.Run("relationships and aggregates", func(t *testing.T) {
		fk := "User.id"
		rc, err := Build(load.List{
			userEntity(),
			{Name: "Post", Fields: []load.FieldDefinition{
				{Name: "id", Type: load.TypeInteger, PrimaryKey: true},
				{Name: "author_id", Type: load.TypeUUID, ForeignKey: &fk},
			}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Post"}, rc.EntitiesWithRelationships)
		assert.True(t, rc.Entities[1].HasRelationships)
		assert.Equal(t, "User.id", rc.Entities[1].Fields[1].ForeignKey)
		assert.Equal(t, []string{"user", "post"}, rc.EntityNames)
		assert.Equal(t, []string{"User", "Post"}, rc.EntityClasses)
	})

	t.Run("raw records and typed list build identical contexts", func(t *testing.T) {
		typed, err := Build(load.List{userEntity()})
		require.NoError(t, err)

		raw, err := Build(load.RecordList{{
			"name": "User",
			"fields": []any{
				map[string]any{"name": "id", "type": "uuid", "primary_key": true},
				map[string]any{"name": "email", "type": "string", "unique": true, "nullable": false},
			},
		}})
		require.NoError(t, err)
		assert.Equal(t, typed, raw)
	})
}

func TestBuildValidation(t *testing.T) {
	t.Run("duplicate entity names detected before field checks", func(t *testing.T) {
		// The second Order has an invalid field type; duplication must
		// be reported first.
		_, err := Build(load.List{
			{Name: "Order", Fields: []load.FieldDefinition{{Name: "id", Type: load.TypeUUID, PrimaryKey: true}}},
			{Name: "Order", Fields: []load.FieldDefinition{{Name: "id", Type: load.FieldType("bogus")}}},
		})
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
		assert.True(t, errors.Is(err, ErrValidationFailed))
		assert.Contains(t, err.Error(), "Order")
		assert.Contains(t, err.Error(), "duplicate entity name")
	})

	t.Run("invalid entity name", func(t *testing.T) {
		_, err := Build(load.List{{Name: "1User", Fields: []load.FieldDefinition{
			{Name: "id", Type: load.TypeUUID, PrimaryKey: true},
		}}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1User")
		assert.Contains(t, err.Error(), "invalid entity name")
	})

	t.Run("duplicate field name", func(t *testing.T) {
		_, err := Build(load.List{{Name: "User", Fields: []load.FieldDefinition{
			{Name: "id", Type: load.TypeUUID, PrimaryKey: true},
			{Name: "id", Type: load.TypeString},
		}}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate field name")
	})

	t.Run("invalid field name", func(t *testing.T) {
		_, err := Build(load.List{{Name: "User", Fields: []load.FieldDefinition{
			{Name: "user-name", Type: load.TypeString, PrimaryKey: true},
		}}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "user-name")
	})

	t.Run("unknown field type", func(t *testing.T) {
		_, err := Build(load.List{{Name: "User", Fields: []load.FieldDefinition{
			{Name: "id", Type: load.FieldType("decimal"), PrimaryKey: true},
		}}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown field type")
		assert.Contains(t, err.Error(), "decimal")
	})

	t.Run("missing primary key names the entity", func(t *testing.T) {
		_, err := Build(load.List{{Name: "Orphan", Fields: []load.FieldDefinition{
			{Name: "name", Type: load.TypeString},
		}}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Orphan")
		assert.Contains(t, err.Error(), "primary_key")
	})

	t.Run("malformed raw record reported as validation error", func(t *testing.T) {
		_, err := Build(load.RecordList{{"fields": []any{}}})
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})
}

func TestRenderContextCopies(t *testing.T) {
	rc, err := Build(load.List{userEntity()})
	require.NoError(t, err)

	withEnt := rc.WithEntity(&rc.Entities[0])
	assert.Nil(t, rc.Entity)
	require.NotNil(t, withEnt.Entity)
	assert.Equal(t, "User", withEnt.Entity.OriginalName)

	withProj := rc.WithProject(ProjectInfo{Name: "shop", Stack: "fastapi"})
	assert.Empty(t, rc.Project.Name)
	assert.Equal(t, "shop", withProj.Project.Name)
}
