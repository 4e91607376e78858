package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/transfer-payload-converter/internal/catalog"
)

func TestDefault(t *testing.T) {
	c := catalog.Default()

	require.Equal(t, 13, c.Len())

	first, ok := c.At(0)
	require.True(t, ok)
	assert.Equal(t, "wells_fargo_rtp/1071-066", first.Code)

	tokenUsed, ok := c.At(2)
	require.True(t, ok)
	assert.Equal(t, catalog.ErrorDescriptor{Code: "checkout_card/400", Description: "token_used"}, tokenUsed)

	last, ok := c.At(12)
	require.True(t, ok)
	assert.Equal(t, "payment_platform/internal_error", last.Code)
	assert.Equal(t, "Internal server error", last.Description)
}

func TestResolve(t *testing.T) {
	c := catalog.New([]catalog.ErrorDescriptor{
		{Code: "a/1", Description: "first"},
		{Code: "b/2", Description: "second"},
	})

	t.Run("in range", func(t *testing.T) {
		assert.Equal(t, "b/2", c.Resolve(1).Code)
	})

	t.Run("past the end falls back to generic", func(t *testing.T) {
		assert.Equal(t, catalog.Generic, c.Resolve(2))
	})

	t.Run("negative falls back to generic", func(t *testing.T) {
		assert.Equal(t, catalog.Generic, c.Resolve(-1))
	})

	t.Run("nil catalog falls back to generic", func(t *testing.T) {
		var empty *catalog.Catalog
		assert.Equal(t, 0, empty.Len())
		assert.Equal(t, "generic_error", empty.Resolve(0).Code)
	})
}

func TestNewCopiesEntries(t *testing.T) {
	entries := []catalog.ErrorDescriptor{{Code: "a/1", Description: "first"}}
	c := catalog.New(entries)

	entries[0].Code = "mutated"
	got := c.Entries()
	got[0].Description = "mutated too"

	d, _ := c.At(0)
	assert.Equal(t, catalog.ErrorDescriptor{Code: "a/1", Description: "first"}, d)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte("errors:\n  - code: x/1\n    description: one\n  - code: y/2\n    description: two\n"), 0o644))

		c, err := catalog.Load(path)
		require.NoError(t, err)
		assert.Equal(t, []catalog.ErrorDescriptor{
			{Code: "x/1", Description: "one"},
			{Code: "y/2", Description: "two"},
		}, c.Entries())
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"errors":[{"code":"x/1","description":"one"}]}`), 0o644))

		c, err := catalog.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("rejects entry without description", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("errors:\n  - code: x/1\n"), 0o644))

		_, err := catalog.Load(path)
		assert.Error(t, err)
	})

	t.Run("rejects empty catalog", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("errors: []\n"), 0o644))

		_, err := catalog.Load(path)
		assert.Error(t, err)
	})

	t.Run("rejects unknown extension", func(t *testing.T) {
		path := filepath.Join(dir, "catalog.toml")
		require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

		_, err := catalog.Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported catalog file extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := catalog.Load(filepath.Join(dir, "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestXLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")

	require.NoError(t, catalog.Default().WriteXLSX(path))

	loaded, err := catalog.Load(path)
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Entries(), loaded.Entries())
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("Codes")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Codes", "A1", &[]interface{}{"ignored", "Code", "Description"}))
	require.NoError(t, f.SetSheetRow("Codes", "A2", &[]interface{}{"", "wealth/failure", "wealth generic error"}))
	require.NoError(t, f.SetSheetRow("Codes", "A4", &[]interface{}{"", " checkout_card/400 ", "token_used"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	c, err := catalog.LoadXLSX(path, catalog.SheetColumns{
		Sheet:             "Codes",
		CodeColumn:        1,
		DescriptionColumn: 2,
		DataStartRow:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, []catalog.ErrorDescriptor{
		{Code: "wealth/failure", Description: "wealth generic error"},
		{Code: "checkout_card/400", Description: "token_used"},
	}, c.Entries())
}
