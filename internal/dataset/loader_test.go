package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.csv")
	csv := "client_name,website,category\n" +
		"Acme Corp,https://acme.com,Tech\n" +
		"Beta LLC,https://beta.io\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"client_name", "website", "category"}, records[0].Columns)
	assert.Equal(t, "Acme Corp", records[0].Get("client_name").String())
	assert.Equal(t, "Tech", records[0].Get("category").String())

	// Short row: trailing cells stay Missing.
	assert.Equal(t, 1, records[1].Index)
	assert.True(t, records[1].Get("website").Present)
	assert.False(t, records[1].Get("category").Present)
	assert.False(t, records[1].Get("no_such_column").Present)
}

func TestLoadExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"client_name", "website"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Acme Corp", "https://acme.com"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"北京公司", ""}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Acme Corp", records[0].Get("client_name").String())
	assert.Equal(t, "https://acme.com", records[0].Get("website").String())
	assert.Equal(t, "北京公司", records[1].Get("client_name").String())
	assert.False(t, records[1].Get("website").Present)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoad_EmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := Load(path)
	assert.Error(t, err, "a dataset without a header row is unusable")
}
