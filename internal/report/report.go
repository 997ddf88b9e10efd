package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/clientforge/schemagen/internal/models"
)

// Render builds the human-readable run report. CI gates on the literal
// token "error", so only genuine failures may produce lines containing it.
func Render(stats *models.RunStats) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Run %s started %s\n\n", stats.RunID, stats.StartedAt.Format("2006-01-02T15:04:05Z"))

	for _, outcome := range stats.Outcomes {
		switch outcome.Status {
		case models.StatusCreated:
			fmt.Fprintf(&buf, "Created %s: %s\n", outcome.Label, outcome.Detail)
		case models.StatusSkipped:
			fmt.Fprintf(&buf, "Skipping %s: %s\n", outcome.Label, outcome.Detail)
		case models.StatusError:
			fmt.Fprintf(&buf, "Error %s: %s\n", outcome.Label, outcome.Detail)
		}
	}

	fmt.Fprintf(&buf, "\nSummary: %d total, %d created, %d skipped, %d errors, %d sitemaps\n",
		stats.Total, stats.Successful, stats.Skipped, stats.Errors, stats.SitemapsOut)
	return buf.Bytes()
}

// Write persists the report to path, creating parent directories as
// needed. Called on every run, including failed ones, so CI always has
// something to display.
func Write(stats *models.RunStats, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, Render(stats), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
