package generate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/clientforge/schemagen/internal/models"
)

const timestampLayout = "2006-01-02T15:04:05Z"

// RenderJSON serializes the entity's fields as a pretty-printed JSON
// object. Key order follows the source column order and non-ASCII
// characters are written literally, matching the spreadsheet content.
func RenderJSON(entity *models.Entity) ([]byte, error) {
	if len(entity.Fields) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, field := range entity.Fields {
		buf.WriteString("  ")
		if err := writeJSONString(&buf, field.Name); err != nil {
			return nil, err
		}
		buf.WriteString(": ")
		if err := writeJSONString(&buf, field.Value); err != nil {
			return nil, err
		}
		if i < len(entity.Fields)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// writeJSONString encodes one string without HTML escaping, so unicode
// and characters like & survive as-is.
func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode json string: %w", err)
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// RenderYAML serializes the entity's fields as a block-style YAML
// mapping, preserving source column order.
func RenderYAML(entity *models.Entity) ([]byte, error) {
	if len(entity.Fields) == 0 {
		return nil, nil
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, field := range entity.Fields {
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: field.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: field.Value},
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(mapping); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to close yaml encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderMarkdown produces the human-readable card for an entity.
func RenderMarkdown(entity *models.Entity, now time.Time) []byte {
	if len(entity.Fields) == 0 {
		return nil
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", entity.Title)
	fmt.Fprintf(&buf, "_Generated: %s_\n\n", now.UTC().Format(timestampLayout))
	for _, field := range entity.Fields {
		fmt.Fprintf(&buf, "**%s:** %s\n\n", fieldLabel(field.Name), field.Value)
	}
	return buf.Bytes()
}

// RenderLLM produces the plaintext variant consumed by language models:
// an underlined title, key: value lines, then the generation stamp.
func RenderLLM(entity *models.Entity, now time.Time) []byte {
	if len(entity.Fields) == 0 {
		return nil
	}

	var buf bytes.Buffer
	buf.WriteString(entity.Title)
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat("=", utf8.RuneCountInString(entity.Title)))
	buf.WriteString("\n\n")
	for _, field := range entity.Fields {
		fmt.Fprintf(&buf, "%s: %s\n", field.Name, field.Value)
	}
	fmt.Fprintf(&buf, "\nGenerated: %s\n", now.UTC().Format(timestampLayout))
	return buf.Bytes()
}

// fieldLabel turns a column name like "client_name" into "Client Name".
func fieldLabel(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = strings.ToUpper(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
