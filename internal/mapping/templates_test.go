package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/statement-import/internal/logging"
	"fjacquet/statement-import/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTemplateStoreMissingFileIsEmpty(t *testing.T) {
	store := NewFileTemplateStore(filepath.Join(t.TempDir(), "templates.yaml"), logging.Discard())

	_, found, err := store.Get("Date,Description,Amount")
	require.NoError(t, err)
	assert.False(t, found)

	all, err := store.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFileTemplateStorePutAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	store := NewFileTemplateStore(path, logging.Discard())

	signature := "Date,Description,Amount,Category"
	m := models.ColumnMapping{Date: "Date", Description: "Description", Amount: "Amount", Category: "Category"}
	require.NoError(t, store.Put(signature, m))

	// A second store over the same file sees the template, like a second
	// import session would.
	fresh := NewFileTemplateStore(path, logging.Discard())
	got, found, err := fresh.Get(signature)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, m, got)
}

func TestFileTemplateStorePutOverwrites(t *testing.T) {
	store := NewFileTemplateStore(filepath.Join(t.TempDir(), "templates.yaml"), logging.Discard())

	signature := "Date,Description,Amount"
	first := models.ColumnMapping{Date: "Date", Description: "Description", Amount: "Amount"}
	second := models.ColumnMapping{Date: "Date", Description: "Amount", Amount: "Description"}

	require.NoError(t, store.Put(signature, first))
	require.NoError(t, store.Put(signature, second))

	got, found, err := store.Get(signature)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, second, got)
}

func TestFileTemplateStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0644))

	store := NewFileTemplateStore(path, logging.Discard())
	_, _, err := store.Get("Date")
	assert.Error(t, err)
}
