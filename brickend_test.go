package brickend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovahubco/brickend/engine/gen"
)

const projectFile = `
project:
  name: shop
  version: 1.0.0
  stack: fastapi
output_dir: generated
entities:
  - name: Product
    fields:
      - name: id
        type: integer
        primary_key: true
      - name: name
        type: string
      - name: price
        type: float
`

func writeProject(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "brickend.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGenerateEndToEnd(t *testing.T) {
	path := writeProject(t, projectFile)

	result, err := Generate(context.Background(), path)
	require.NoError(t, err)
	assert.Greater(t, result.Files(), 0)

	out := filepath.Join(filepath.Dir(path), "generated")
	models, err := os.ReadFile(filepath.Join(out, "app", "models.py"))
	require.NoError(t, err)
	assert.Contains(t, string(models), "class Product(Base):")

	crud, err := os.ReadFile(filepath.Join(out, "app", "crud", "product_crud.py"))
	require.NoError(t, err)
	assert.Contains(t, string(crud), "def get_product(")
}

func TestOpenUsesOverrideTemplates(t *testing.T) {
	path := writeProject(t, projectFile+"templates_dir: templates_user\n")
	dir := filepath.Dir(path)
	overrideDir := filepath.Join(dir, "templates_user", "back", "fastapi")
	require.NoError(t, os.MkdirAll(overrideDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(overrideDir, "meta.yaml"), []byte("name: fastapi\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(overrideDir, "main_template.tmpl"),
		[]byte("APP = \"override-{{ .Project.Name }}\"\n"), 0o644))

	p, err := Open(path)
	require.NoError(t, err)
	_, err = p.Generate(context.Background())
	require.NoError(t, err)

	main, err := os.ReadFile(filepath.Join(dir, "generated", "app", "main.py"))
	require.NoError(t, err)
	assert.Equal(t, "APP = \"override-shop\"\n", string(main))
}

func TestValidate(t *testing.T) {
	t.Run("valid project", func(t *testing.T) {
		rc, err := Validate(writeProject(t, projectFile))
		require.NoError(t, err)
		assert.Equal(t, 1, rc.EntityCount)
		assert.Equal(t, "id", rc.Entities[0].PrimaryKeyField)
	})

	t.Run("entity without primary key", func(t *testing.T) {
		broken := `
project:
  name: shop
  stack: fastapi
entities:
  - name: Orphan
    fields:
      - name: label
        type: string
`
		_, err := Validate(writeProject(t, broken))
		require.Error(t, err)
		assert.True(t, gen.IsValidationError(err))
		assert.Contains(t, err.Error(), "Orphan")
	})

	t.Run("missing project file", func(t *testing.T) {
		_, err := Validate(filepath.Join(t.TempDir(), "brickend.yaml"))
		require.Error(t, err)
		assert.True(t, gen.IsConfigError(err))
	})
}
