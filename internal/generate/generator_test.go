package generate

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientforge/schemagen/config"
	"github.com/clientforge/schemagen/internal/models"
	"github.com/clientforge/schemagen/internal/utils"
)

func testConfig(t *testing.T, csv string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "clients.csv")
	require.NoError(t, os.WriteFile(dataFile, []byte(csv), 0644))

	cfg := &config.Config{}
	cfg.Data.File = dataFile
	cfg.Output.Dir = filepath.Join(dir, "schema-files")
	cfg.Formats.JSON = true
	cfg.Formats.YAML = true
	cfg.Formats.Markdown = true
	cfg.Formats.LLM = true
	cfg.Filter.Enabled = true
	cfg.Filter.MinFields = 2
	cfg.Slug.SourceFields = "slug,client_name,name"
	cfg.Title.SourceFields = "client_name,name"
	return cfg
}

func TestGeneratorRun(t *testing.T) {
	cfg := testConfig(t, "client_name,website,category\n"+
		"Acme Corp,https://acme.com,Tech\n"+
		"Empty Test,,\n"+
		"Beta LLC,https://beta.example.org,Finance\n")

	stats := models.NewRunStats()
	gen := NewGenerator(cfg, utils.NewTestLogger(io.Discard))
	records, err := gen.Run(stats)
	require.NoError(t, err)

	assert.Len(t, records, 3)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Successful)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Errors)

	_, err = os.Stat(filepath.Join(cfg.Output.Dir, "acme_corp", "acme_corp.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(cfg.Output.Dir, "beta_llc", "beta_llc.yaml"))
	require.NoError(t, err)
}

func TestGeneratorRun_MissingDatasetIsFatal(t *testing.T) {
	cfg := testConfig(t, "client_name\nAcme\n")
	cfg.Data.File = filepath.Join(t.TempDir(), "nope.csv")

	gen := NewGenerator(cfg, utils.NewTestLogger(io.Discard))
	_, err := gen.Run(models.NewRunStats())
	assert.Error(t, err)
}

func TestGeneratorRun_EmptyDatasetIsFatal(t *testing.T) {
	cfg := testConfig(t, "client_name,website,category\n")

	stats := models.NewRunStats()
	gen := NewGenerator(cfg, utils.NewTestLogger(io.Discard))
	_, err := gen.Run(stats)
	require.Error(t, err, "a header-only dataset yields zero entities and must fail the run")
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Successful)
}

func TestGeneratorRun_ZeroSuccessesIsFatal(t *testing.T) {
	cfg := testConfig(t, "client_name,website\n"+
		"Only Name,\n"+
		"Lonely Row,\n")

	stats := models.NewRunStats()
	gen := NewGenerator(cfg, utils.NewTestLogger(io.Discard))
	_, err := gen.Run(stats)
	require.Error(t, err)
	assert.Equal(t, 0, stats.Successful)
	assert.Equal(t, 2, stats.Skipped)
}
