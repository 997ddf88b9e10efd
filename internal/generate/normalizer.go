package generate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/clientforge/schemagen/internal/models"
)

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// Normalizer derives the Entity for a Record: slug, title, and the
// filtered field list.
type Normalizer struct {
	slugFields  []string
	titleFields []string
	filterEmpty bool
	minFields   int
}

func NewNormalizer(slugFields, titleFields []string, filterEmpty bool, minFields int) *Normalizer {
	return &Normalizer{
		slugFields:  slugFields,
		titleFields: titleFields,
		filterEmpty: filterEmpty,
		minFields:   minFields,
	}
}

// SkipError marks a row that was rejected rather than failed.
type SkipError struct {
	Slug   string
	Reason string
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("skipping %s: %s", e.Slug, e.Reason)
}

// Normalize builds the Entity for one record. A *SkipError return means
// the row should be logged as skipped, not treated as a failure.
func (n *Normalizer) Normalize(record *models.Record) (*models.Entity, error) {
	slug := n.deriveSlug(record)
	fields := n.filterFields(record)

	if len(fields) < n.minFields {
		return nil, &SkipError{
			Slug:   slug,
			Reason: fmt.Sprintf("insufficient data (%d fields)", len(fields)),
		}
	}

	return &models.Entity{
		Slug:   slug,
		Title:  n.deriveTitle(record, slug),
		Fields: fields,
	}, nil
}

func (n *Normalizer) deriveSlug(record *models.Record) string {
	for _, field := range n.slugFields {
		if v := record.Get(field); v.Usable() {
			if slug := Slugify(v.String()); slug != "" {
				return slug
			}
		}
	}
	return fmt.Sprintf("client_%d", record.Index)
}

func (n *Normalizer) deriveTitle(record *models.Record, slug string) string {
	for _, field := range n.titleFields {
		if v := record.Get(field); v.Usable() {
			return v.String()
		}
	}
	return slug
}

func (n *Normalizer) filterFields(record *models.Record) []models.Field {
	fields := make([]models.Field, 0, len(record.Columns))
	for _, column := range record.Columns {
		if column == "" {
			continue
		}
		v := record.Get(column)
		if n.filterEmpty && !v.Usable() {
			continue
		}
		if !v.Present {
			continue
		}
		fields = append(fields, models.Field{Name: column, Value: v.String()})
	}
	return fields
}

// Slugify lowers the input and collapses every run of non-alphanumeric
// characters into a single underscore.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugCleaner.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
