package load

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldTypeValid(t *testing.T) {
	for _, typ := range Types {
		assert.True(t, typ.Valid(), "type %s", typ)
	}
	assert.False(t, FieldType("decimal").Valid())
	assert.False(t, FieldType("").Valid())
}

func TestListEntities(t *testing.T) {
	list := List{
		{Name: "User", Fields: []FieldDefinition{{Name: "id", Type: TypeUUID, PrimaryKey: true}}},
	}
	defs, err := list.Entities()
	require.NoError(t, err)
	assert.Len(t, defs, 1)
	assert.Equal(t, "User", defs[0].Name)
}

func TestRecordListEntities(t *testing.T) {
	t.Run("decodes full record", func(t *testing.T) {
		records := RecordList{
			{
				"name": "Order",
				"fields": []any{
					map[string]any{"name": "id", "type": "uuid", "primary_key": true},
					map[string]any{
						"name":        "total",
						"type":        "float",
						"nullable":    false,
						"unique":      false,
						"default":     "0.0",
						"constraints": []any{"check(total >= 0)"},
					},
					map[string]any{"name": "user_id", "type": "uuid", "foreign_key": "User.id"},
				},
			},
		}

		defs, err := records.Entities()
		require.NoError(t, err)
		require.Len(t, defs, 1)
		require.Len(t, defs[0].Fields, 3)

		id := defs[0].Fields[0]
		assert.True(t, id.PrimaryKey)
		assert.True(t, id.Nullable) // decoder default; the builder forces it off for primary keys

		total := defs[0].Fields[1]
		assert.Equal(t, TypeFloat, total.Type)
		assert.False(t, total.Nullable)
		require.NotNil(t, total.Default)
		assert.Equal(t, "0.0", *total.Default)
		assert.Equal(t, []string{"check(total >= 0)"}, total.Constraints)

		fk := defs[0].Fields[2]
		require.NotNil(t, fk.ForeignKey)
		assert.Equal(t, "User.id", *fk.ForeignKey)
	})

	t.Run("accepts map[any]any records", func(t *testing.T) {
		records := RecordList{
			{
				"name": "Tag",
				"fields": []any{
					map[any]any{"name": "id", "type": "integer", "primary_key": true},
				},
			},
		}
		defs, err := records.Entities()
		require.NoError(t, err)
		assert.Equal(t, "id", defs[0].Fields[0].Name)
	})

	t.Run("missing name fails", func(t *testing.T) {
		records := RecordList{{"fields": []any{}}}
		_, err := records.Entities()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing name")
	})

	t.Run("fields must be a list", func(t *testing.T) {
		records := RecordList{{"name": "User", "fields": "nope"}}
		_, err := records.Entities()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fields must be a list")
	})

	t.Run("missing type fails", func(t *testing.T) {
		records := RecordList{
			{"name": "User", "fields": []any{map[string]any{"name": "id"}}},
		}
		_, err := records.Entities()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing type")
	})
}
