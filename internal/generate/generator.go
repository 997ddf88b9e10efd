package generate

import (
	"fmt"
	"os"

	"github.com/clientforge/schemagen/config"
	"github.com/clientforge/schemagen/internal/dataset"
	"github.com/clientforge/schemagen/internal/models"
	"github.com/clientforge/schemagen/internal/utils"
)

// Generator drives one full generation pass over the dataset.
type Generator struct {
	cfg    *config.Config
	logger *utils.RunLogger
}

func NewGenerator(cfg *config.Config, logger *utils.RunLogger) *Generator {
	return &Generator{cfg: cfg, logger: logger}
}

// Run loads the dataset and writes every entity's file set, collecting
// per-row outcomes into stats. A dataset that cannot be loaded, or a run
// with zero successful entities, is fatal and returns an error.
func (g *Generator) Run(stats *models.RunStats) ([]*models.Record, error) {
	records, err := dataset.Load(g.cfg.Data.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	g.logger.LogInfo("Loaded %d rows from %s", len(records), g.cfg.Data.File)

	if err := os.MkdirAll(g.cfg.Output.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	normalizer := NewNormalizer(
		g.cfg.SlugSourceFields(),
		g.cfg.TitleSourceFields(),
		g.cfg.Filter.Enabled,
		g.cfg.Filter.MinFields,
	)
	writer := NewEntityWriter(g.cfg.Output.Dir, Formats{
		JSON:     g.cfg.Formats.JSON,
		YAML:     g.cfg.Formats.YAML,
		Markdown: g.cfg.Formats.Markdown,
		LLM:      g.cfg.Formats.LLM,
	}, normalizer, g.logger)

	for i, record := range records {
		stats.Add(writer.Write(record))
		stats.Total++
		if (i+1)%10 == 0 {
			g.logger.LogInfo("Processed %d/%d rows", i+1, len(records))
		}
	}

	g.logger.LogInfo("Generation complete: %d/%d entities successful", stats.Successful, stats.Total)
	if stats.Successful == 0 {
		return records, fmt.Errorf("no entities were generated successfully")
	}

	return records, nil
}
