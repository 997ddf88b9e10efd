package generate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/clientforge/schemagen/internal/models"
	"github.com/clientforge/schemagen/internal/utils"
)

// Formats toggles the individual emitters.
type Formats struct {
	JSON     bool
	YAML     bool
	Markdown bool
	LLM      bool
}

// EntityWriter turns one Record into the entity's on-disk file set.
type EntityWriter struct {
	outputDir  string
	formats    Formats
	normalizer *Normalizer
	logger     *utils.RunLogger
	seenSlugs  map[string]int
}

func NewEntityWriter(outputDir string, formats Formats, normalizer *Normalizer, logger *utils.RunLogger) *EntityWriter {
	return &EntityWriter{
		outputDir:  outputDir,
		formats:    formats,
		normalizer: normalizer,
		logger:     logger,
		seenSlugs:  make(map[string]int),
	}
}

// Write processes one record: normalize, create the entity directory,
// render and write each enabled format. A failing format is logged and
// the remaining formats still run; the entity counts as created when at
// least one file was written.
func (w *EntityWriter) Write(record *models.Record) models.RowOutcome {
	entity, err := w.normalizer.Normalize(record)
	if err != nil {
		var skip *SkipError
		if errors.As(err, &skip) {
			w.logger.LogInfo("Skipping %s: %s", skip.Slug, skip.Reason)
			return models.RowOutcome{
				Label:  skip.Slug,
				Status: models.StatusSkipped,
				Detail: skip.Reason,
			}
		}
		w.logger.LogError("Row %d: %v", record.Index, err)
		return models.RowOutcome{
			Label:  fmt.Sprintf("client_%d", record.Index),
			Status: models.StatusError,
			Detail: err.Error(),
		}
	}

	slug := w.uniqueSlug(entity.Slug)
	if slug != entity.Slug {
		w.logger.LogWarn("Slug collision for %s, using %s", entity.Slug, slug)
		entity.Slug = slug
	}

	entityDir := filepath.Join(w.outputDir, entity.Slug)
	if err := os.MkdirAll(entityDir, 0755); err != nil {
		w.logger.LogError("Failed to create directory for %s: %v", entity.Slug, err)
		return models.RowOutcome{
			Label:  entity.Slug,
			Status: models.StatusError,
			Detail: fmt.Sprintf("directory creation failed: %v", err),
		}
	}

	now := time.Now()
	written := 0
	failures := 0

	for _, out := range w.renderAll(entity, now) {
		if out.err != nil {
			w.logger.LogError("Failed to render %s for %s: %v", out.ext, entity.Slug, out.err)
			failures++
			continue
		}
		if out.content == nil {
			continue
		}
		path := filepath.Join(entityDir, entity.Slug+out.ext)
		if err := os.WriteFile(path, out.content, 0644); err != nil {
			w.logger.LogError("Failed to write %s for %s: %v", out.ext, entity.Slug, err)
			failures++
			continue
		}
		written++
	}

	if written == 0 {
		return models.RowOutcome{
			Label:  entity.Slug,
			Status: models.StatusError,
			Detail: "no files written",
		}
	}

	detail := fmt.Sprintf("%d files", written)
	if failures > 0 {
		detail = fmt.Sprintf("%d files, %d formats failed", written, failures)
	}
	return models.RowOutcome{
		Label:     entity.Slug,
		Status:    models.StatusCreated,
		Detail:    detail,
		FileCount: written,
	}
}

type rendered struct {
	ext     string
	content []byte
	err     error
}

func (w *EntityWriter) renderAll(entity *models.Entity, now time.Time) []rendered {
	var outs []rendered
	if w.formats.JSON {
		content, err := RenderJSON(entity)
		outs = append(outs, rendered{ext: ".json", content: content, err: err})
	}
	if w.formats.YAML {
		content, err := RenderYAML(entity)
		outs = append(outs, rendered{ext: ".yaml", content: content, err: err})
	}
	if w.formats.Markdown {
		outs = append(outs, rendered{ext: ".md", content: RenderMarkdown(entity, now)})
	}
	if w.formats.LLM {
		outs = append(outs, rendered{ext: ".llm", content: RenderLLM(entity, now)})
	}
	return outs
}

// uniqueSlug disambiguates colliding slugs within a run by appending
// _2, _3, ... in row order, so distinct rows never overwrite each other.
func (w *EntityWriter) uniqueSlug(slug string) string {
	w.seenSlugs[slug]++
	if n := w.seenSlugs[slug]; n > 1 {
		return fmt.Sprintf("%s_%d", slug, n)
	}
	return slug
}
