package sitemap

import (
	"encoding/xml"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/clientforge/schemagen/internal/models"
	"github.com/clientforge/schemagen/internal/utils"
)

const lastModLayout = "2006-01-02T15:04:05Z"

var generatedExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".md":   true,
	".llm":  true,
}

// Builder produces one sitemap document per domain from the generated
// file tree.
type Builder struct {
	placeholders []string
	minURLs      int
	maxURLs      int
	logger       *utils.RunLogger
}

func NewBuilder(placeholders []string, minURLs, maxURLs int, logger *utils.RunLogger) *Builder {
	return &Builder{
		placeholders: placeholders,
		minURLs:      minURLs,
		maxURLs:      maxURLs,
		logger:       logger,
	}
}

// Result reports what happened for one domain's sitemap.
type Result struct {
	Written    bool
	Entries    int
	SkipReason string
}

// NormalizeDomain coerces a bare host to https:// and strips the
// trailing slash.
func NormalizeDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return ""
	}
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	return strings.TrimRight(domain, "/")
}

// IsPlaceholder reports whether the domain matches any configured
// placeholder token, case-insensitively, by substring.
func (b *Builder) IsPlaceholder(domain string) bool {
	lower := strings.ToLower(domain)
	for _, token := range b.placeholders {
		if token != "" && strings.Contains(lower, strings.ToLower(token)) {
			return true
		}
	}
	return false
}

// CollectFiles walks root and returns the relative slash paths of all
// non-empty generated files, deduplicated in first-seen order.
func CollectFiles(root string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !generatedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() == 0 {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = strings.TrimPrefix(filepath.ToSlash(rel), "./")
		if seen[rel] {
			return nil
		}
		seen[rel] = true
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

// Build assembles and writes the sitemap for one domain from relative
// file paths under root. The file at outPath is only written when the
// domain passes the placeholder check and the entry count reaches the
// configured minimum; below-minimum sitemaps are skipped entirely rather
// than written empty.
func (b *Builder) Build(root, domain string, files []string, outPath string) (Result, error) {
	normalized := NormalizeDomain(domain)
	if normalized == "" {
		return Result{SkipReason: "no domain configured"}, nil
	}
	if b.IsPlaceholder(normalized) {
		b.logger.LogInfo("Skipped — placeholder domain: %s", normalized)
		return Result{SkipReason: fmt.Sprintf("placeholder domain: %s", normalized)}, nil
	}

	urls := b.assembleURLs(root, normalized, files)
	if len(urls) < b.minURLs {
		b.logger.LogInfo("Skipping sitemap for %s: %d entries below minimum %d", normalized, len(urls), b.minURLs)
		return Result{SkipReason: fmt.Sprintf("%d entries below minimum", len(urls))}, nil
	}

	sm := &models.Sitemap{
		Xmlns: models.SitemapNamespace,
		URLs:  urls,
	}
	if err := writeXML(outPath, sm); err != nil {
		return Result{}, err
	}
	return Result{Written: true, Entries: len(urls)}, nil
}

func (b *Builder) assembleURLs(root, domain string, files []string) []models.URL {
	urls := make([]models.URL, 0, len(files))
	for _, rel := range files {
		if len(urls) >= b.maxURLs {
			b.logger.LogWarn("Sitemap for %s capped at %d URLs", domain, b.maxURLs)
			break
		}
		rel = strings.TrimPrefix(filepath.ToSlash(rel), "./")
		urls = append(urls, models.URL{
			Loc:     domain + "/" + rel,
			LastMod: fileLastMod(filepath.Join(root, filepath.FromSlash(rel))),
		})
	}
	return urls
}

// fileLastMod returns the file's mtime in UTC, falling back to now when
// the file cannot be stat'd.
func fileLastMod(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return time.Now().UTC().Format(lastModLayout)
	}
	return info.ModTime().UTC().Format(lastModLayout)
}

func writeXML(path string, doc interface{}) error {
	content, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sitemap xml: %w", err)
	}
	payload := append([]byte(xml.Header), content...)
	payload = append(payload, '\n')
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
