package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Value is one cell from the source table. Missing cells are represented
// explicitly instead of leaning on sentinel strings like "nan".
type Value struct {
	Raw     string
	Present bool
}

func Present(raw string) Value {
	return Value{Raw: raw, Present: true}
}

func Missing() Value {
	return Value{}
}

// Usable reports whether the value carries real content: present, non-blank
// after trimming, and not a spreadsheet NaN artifact.
func (v Value) Usable() bool {
	if !v.Present {
		return false
	}
	trimmed := strings.TrimSpace(v.Raw)
	return trimmed != "" && !strings.EqualFold(trimmed, "nan")
}

// String returns the trimmed cell content, or "" for missing values.
func (v Value) String() string {
	if !v.Present {
		return ""
	}
	return strings.TrimSpace(v.Raw)
}

// Record is one row from the source table: an ordered column -> value
// mapping. Columns preserves the source sheet's header order.
type Record struct {
	Index   int
	Columns []string
	Values  map[string]Value
}

func NewRecord(index int, columns []string) *Record {
	return &Record{
		Index:   index,
		Columns: columns,
		Values:  make(map[string]Value, len(columns)),
	}
}

func (r *Record) Set(column string, v Value) {
	r.Values[column] = v
}

// Get returns the value for a column, Missing if the column is absent.
func (r *Record) Get(column string) Value {
	if v, ok := r.Values[column]; ok {
		return v
	}
	return Missing()
}

// Field is one retained column/value pair of an Entity, in source order.
type Field struct {
	Name  string
	Value string
}

// Entity is the business unit derived from a Record: a filesystem-safe
// slug, a display title, and the filtered field list.
type Entity struct {
	Slug   string
	Title  string
	Fields []Field
}

// FieldValue returns the value for a field name, "" if not retained.
func (e *Entity) FieldValue(name string) string {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// RowStatus classifies the outcome of processing one row or one domain.
type RowStatus string

const (
	StatusCreated RowStatus = "created"
	StatusSkipped RowStatus = "skipped"
	StatusError   RowStatus = "error"
)

// RowOutcome is one line of the run report.
type RowOutcome struct {
	Label     string
	Status    RowStatus
	Detail    string
	FileCount int
}

// RunStats aggregates a full generation pass for report and exit-code
// decisions.
type RunStats struct {
	RunID       uuid.UUID
	StartedAt   time.Time
	Total       int
	Successful  int
	Skipped     int
	Errors      int
	SitemapsOut int
	Outcomes    []RowOutcome
}

func NewRunStats() *RunStats {
	return &RunStats{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
	}
}

func (s *RunStats) Add(outcome RowOutcome) {
	s.Outcomes = append(s.Outcomes, outcome)
	switch outcome.Status {
	case StatusCreated:
		s.Successful++
	case StatusSkipped:
		s.Skipped++
	case StatusError:
		s.Errors++
	}
}

// AddDomain records a sitemap-phase outcome as a report line without
// touching the per-entity counters; written sitemaps are tallied in
// SitemapsOut instead.
func (s *RunStats) AddDomain(outcome RowOutcome) {
	s.Outcomes = append(s.Outcomes, outcome)
	if outcome.Status == StatusCreated {
		s.SitemapsOut++
	}
}
