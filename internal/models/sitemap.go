// internal/models/sitemap.go
package models

import "encoding/xml"

const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Sitemap represents the structure of an XML sitemap.
type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL represents a single URL entry in the sitemap.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// SitemapIndex represents a <sitemapindex> document referencing the
// individual per-domain sitemaps.
type SitemapIndex struct {
	XMLName  xml.Name          `xml:"sitemapindex"`
	Xmlns    string            `xml:"xmlns,attr"`
	Sitemaps []SitemapIndexRef `xml:"sitemap"`
}

// SitemapIndexRef represents a <sitemap> entry in a sitemap index file.
type SitemapIndexRef struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}
