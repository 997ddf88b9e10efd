package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/clientforge/schemagen/config"
	"github.com/clientforge/schemagen/internal/generate"
	"github.com/clientforge/schemagen/internal/models"
	"github.com/clientforge/schemagen/internal/notify"
	"github.com/clientforge/schemagen/internal/report"
	"github.com/clientforge/schemagen/internal/sitemap"
	"github.com/clientforge/schemagen/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewRunLogger("schemagen")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	os.Exit(run(cfg, logger))
}

func run(cfg *config.Config, logger *utils.RunLogger) int {
	stats := models.NewRunStats()
	reportPath := filepath.Join(cfg.Sitemap.Dir, cfg.Report.File)

	// The report is written even when the run fails, so CI can show it.
	defer func() {
		if err := report.Write(stats, reportPath); err != nil {
			logger.LogError("Failed to write report: %v", err)
		}
	}()

	logger.LogInfo("Starting run %s", stats.RunID)

	generator := generate.NewGenerator(cfg, logger)
	records, err := generator.Run(stats)
	if err != nil {
		logger.LogError("Generation failed: %v", err)
		stats.Add(models.RowOutcome{
			Label:  "dataset",
			Status: models.StatusError,
			Detail: err.Error(),
		})
		return 1
	}

	if cfg.Sitemap.Enabled {
		if err := buildSitemaps(cfg, logger, stats, records); err != nil {
			logger.LogError("Sitemap build failed: %v", err)
			stats.Add(models.RowOutcome{
				Label:  "sitemaps",
				Status: models.StatusError,
				Detail: err.Error(),
			})
		}
	}

	logger.LogInfo("Run complete: %d created, %d skipped, %d errors, %d sitemaps",
		stats.Successful, stats.Skipped, stats.Errors, stats.SitemapsOut)
	return 0
}

// buildSitemaps produces the master sitemap over the whole output tree,
// one sitemap per entity domain, and the aggregating index.
func buildSitemaps(cfg *config.Config, logger *utils.RunLogger, stats *models.RunStats, records []*models.Record) error {
	if err := os.MkdirAll(cfg.Sitemap.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create sitemap directory: %w", err)
	}

	builder := sitemap.NewBuilder(
		cfg.Sitemap.PlaceholderDomains,
		cfg.Sitemap.MinURLs,
		cfg.Sitemap.MaxURLs,
		logger,
	)

	// Master sitemap for the base site across every generated file.
	allFiles, err := sitemap.CollectFiles(cfg.Output.Dir)
	if err != nil {
		return err
	}
	master, err := builder.Build(cfg.Output.Dir, cfg.Site.BaseURL, allFiles, cfg.Sitemap.MasterFile)
	if err != nil {
		return err
	}
	recordSitemapOutcome(stats, "master sitemap", master)

	// One sitemap per entity, named after its domain row. Outcomes run
	// parallel to records for the generation phase, so index i pairs the
	// row with its slug.
	var persisted []string
	if master.Written {
		persisted = append(persisted, cfg.Sitemap.MasterFile)
	}
	for i, rec := range records {
		if i >= len(stats.Outcomes) {
			break
		}
		outcome := stats.Outcomes[i]
		if outcome.Status != models.StatusCreated {
			continue
		}
		slug := outcome.Label
		domain := rec.Get(cfg.Sitemap.DomainField).String()

		entityFiles, err := sitemap.CollectFiles(filepath.Join(cfg.Output.Dir, slug))
		if err != nil {
			logger.LogError("Failed to scan files for %s: %v", slug, err)
			continue
		}
		for j := range entityFiles {
			entityFiles[j] = slug + "/" + entityFiles[j]
		}

		outPath := filepath.Join(cfg.Sitemap.Dir, slug+"_sitemap.xml")
		result, err := builder.Build(cfg.Output.Dir, domain, entityFiles, outPath)
		if err != nil {
			logger.LogError("Failed to build sitemap for %s: %v", slug, err)
			continue
		}
		recordSitemapOutcome(stats, slug+" sitemap", result)
		if result.Written {
			persisted = append(persisted, outPath)
		}
	}

	if cfg.Sitemap.GenerateIndex {
		indexPath := filepath.Join(cfg.Sitemap.Dir, "sitemap-index.xml")
		written, err := sitemap.BuildIndex(cfg.Site.BaseURL, persisted, indexPath)
		if err != nil {
			return err
		}
		if written {
			logger.LogInfo("Sitemap index written with %d entries", len(persisted))
		}
	}

	if cfg.Notify.Enabled && master.Written {
		pinger := notify.NewPinger(cfg.Notify.Endpoints, logger)
		pinger.Ping(sitemap.NormalizeDomain(cfg.Site.BaseURL) + "/" + filepath.Base(cfg.Sitemap.MasterFile))
	}

	return nil
}

func recordSitemapOutcome(stats *models.RunStats, label string, result sitemap.Result) {
	switch {
	case result.Written:
		stats.AddDomain(models.RowOutcome{
			Label:     label,
			Status:    models.StatusCreated,
			Detail:    fmt.Sprintf("%d URLs", result.Entries),
			FileCount: 1,
		})
	default:
		stats.AddDomain(models.RowOutcome{
			Label:  label,
			Status: models.StatusSkipped,
			Detail: result.SkipReason,
		})
	}
}
