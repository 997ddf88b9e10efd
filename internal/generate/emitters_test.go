package generate

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/clientforge/schemagen/internal/models"
)

var emitTime = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func sampleEntity() *models.Entity {
	return &models.Entity{
		Slug:  "acme_corp",
		Title: "Acme Corp",
		Fields: []models.Field{
			{Name: "client_name", Value: "Acme Corp"},
			{Name: "website", Value: "https://acme.com"},
			{Name: "category", Value: "Tech"},
		},
	}
}

func TestRenderJSON_RoundTrip(t *testing.T) {
	content, err := RenderJSON(sampleEntity())
	require.NoError(t, err)

	var parsed map[string]string
	require.NoError(t, json.Unmarshal(content, &parsed))
	assert.Equal(t, map[string]string{
		"client_name": "Acme Corp",
		"website":     "https://acme.com",
		"category":    "Tech",
	}, parsed)
}

func TestRenderJSON_PreservesKeyOrder(t *testing.T) {
	content, err := RenderJSON(sampleEntity())
	require.NoError(t, err)

	s := string(content)
	assert.Less(t, strings.Index(s, `"client_name"`), strings.Index(s, `"website"`))
	assert.Less(t, strings.Index(s, `"website"`), strings.Index(s, `"category"`))
}

func TestRenderJSON_UnicodeLiteral(t *testing.T) {
	entity := &models.Entity{
		Slug:  "intl",
		Title: "Intl",
		Fields: []models.Field{
			{Name: "city", Value: "北京"},
			{Name: "motto", Value: "é and Ω & more"},
		},
	}
	content, err := RenderJSON(entity)
	require.NoError(t, err)

	s := string(content)
	assert.Contains(t, s, "北京")
	assert.Contains(t, s, "é and Ω & more")
	assert.NotContains(t, s, `\u`, "non-ASCII must not be escaped")
}

func TestRenderJSON_EmptyEntity(t *testing.T) {
	content, err := RenderJSON(&models.Entity{Slug: "x", Title: "x"})
	require.NoError(t, err)
	assert.Nil(t, content)
}

func TestRenderYAML_BlockStyleOrdered(t *testing.T) {
	content, err := RenderYAML(sampleEntity())
	require.NoError(t, err)

	s := string(content)
	assert.NotContains(t, s, "{", "mapping must be block style, not flow")
	assert.Less(t, strings.Index(s, "client_name:"), strings.Index(s, "website:"))

	var parsed map[string]string
	require.NoError(t, yaml.Unmarshal(content, &parsed))
	assert.Equal(t, "Acme Corp", parsed["client_name"])
}

func TestRenderYAML_UnicodeLiteral(t *testing.T) {
	entity := &models.Entity{
		Slug:   "intl",
		Title:  "Intl",
		Fields: []models.Field{{Name: "city", Value: "北京"}},
	}
	content, err := RenderYAML(entity)
	require.NoError(t, err)
	assert.Contains(t, string(content), "北京")
}

func TestRenderMarkdown(t *testing.T) {
	content := RenderMarkdown(sampleEntity(), emitTime)

	s := string(content)
	assert.True(t, strings.HasPrefix(s, "# Acme Corp\n"))
	assert.Contains(t, s, "_Generated: 2025-03-14T09:26:53Z_")
	assert.Contains(t, s, "**Client Name:** Acme Corp")
	assert.Contains(t, s, "**Website:** https://acme.com")
	assert.Contains(t, s, "**Category:** Tech")
}

func TestRenderLLM(t *testing.T) {
	content := RenderLLM(sampleEntity(), emitTime)

	lines := strings.Split(string(content), "\n")
	require.GreaterOrEqual(t, len(lines), 6)
	assert.Equal(t, "Acme Corp", lines[0])
	assert.Equal(t, strings.Repeat("=", 9), lines[1])
	assert.Contains(t, lines, "client_name: Acme Corp")
	assert.Contains(t, lines, "Generated: 2025-03-14T09:26:53Z")
}

func TestRenderLLM_UnderlineMatchesRuneCount(t *testing.T) {
	entity := &models.Entity{
		Slug:   "cafe",
		Title:  "Café 北京",
		Fields: []models.Field{{Name: "a", Value: "b"}},
	}
	content := RenderLLM(entity, emitTime)
	lines := strings.Split(string(content), "\n")
	// 4 runes + space + 2 runes, not byte length.
	assert.Equal(t, strings.Repeat("=", 7), lines[1])
}

func TestFieldLabel(t *testing.T) {
	assert.Equal(t, "Client Name", fieldLabel("client_name"))
	assert.Equal(t, "Website", fieldLabel("website"))
	assert.Equal(t, "Main Office Address", fieldLabel("main_office_address"))
}
