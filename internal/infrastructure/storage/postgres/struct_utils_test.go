package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"billdesk/internal/core/entity"
	"billdesk/internal/core/id"
)

type MockCatalog struct {
	entity.BaseCatalog
	Code  string `db:"code" json:"code"`
	Name  string `db:"name" json:"name"`
	Notes string `db:"-" json:"notes"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[MockCatalog]()

	expectedCols := []string{"id", "deletion_mark", "version", "code", "name"}
	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}

	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "notes")
}

func TestStructToMap(t *testing.T) {
	cat := MockCatalog{
		BaseCatalog: entity.BaseCatalog{
			BaseEntity: entity.BaseEntity{
				ID:           id.New(),
				DeletionMark: true,
				Version:      5,
			},
		},
		Code:  "TEST",
		Name:  "Test Name",
		Notes: "ignored",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "TEST", m["code"])
	assert.Equal(t, "Test Name", m["name"])
	assert.NotContains(t, m, "notes")
}
