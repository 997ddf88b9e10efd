package sitemap

import (
	"path/filepath"

	"github.com/clientforge/schemagen/internal/models"
)

// BuildIndex writes a <sitemapindex> document referencing every persisted
// sitemap. The canonical URL for each entry is the base domain plus the
// sitemap's filename. Returns false without writing when the input list
// is empty.
func BuildIndex(baseURL string, sitemapPaths []string, outPath string) (bool, error) {
	if len(sitemapPaths) == 0 {
		return false, nil
	}

	base := NormalizeDomain(baseURL)
	index := &models.SitemapIndex{
		Xmlns: models.SitemapNamespace,
	}
	for _, path := range sitemapPaths {
		index.Sitemaps = append(index.Sitemaps, models.SitemapIndexRef{
			Loc:     base + "/" + filepath.Base(path),
			LastMod: fileLastMod(path),
		})
	}

	if err := writeXML(outPath, index); err != nil {
		return false, err
	}
	return true, nil
}
