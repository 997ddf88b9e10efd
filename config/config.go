package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Data struct {
		File string
	}
	Output struct {
		Dir string
	}
	Site struct {
		BaseURL string
	}
	Formats struct {
		JSON     bool
		YAML     bool
		Markdown bool
		LLM      bool
	}
	Filter struct {
		Enabled   bool
		MinFields int
	}
	Slug struct {
		SourceFields string
	}
	Title struct {
		SourceFields string
	}
	Sitemap struct {
		Enabled            bool
		Dir                string
		MasterFile         string
		GenerateIndex      bool
		DomainField        string
		PlaceholderDomains []string
		MinURLs            int
		MaxURLs            int
	}
	Notify struct {
		Enabled   bool
		Endpoints []string
	}
	Report struct {
		File string
	}
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix("schemagen")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Default values
	viper.SetDefault("data.file", "templates/client-data.xlsx")
	viper.SetDefault("output.dir", "schema-files")
	viper.SetDefault("site.baseurl", "https://example.com")
	viper.SetDefault("formats.json", true)
	viper.SetDefault("formats.yaml", true)
	viper.SetDefault("formats.markdown", true)
	viper.SetDefault("formats.llm", true)
	viper.SetDefault("filter.enabled", true)
	viper.SetDefault("filter.minfields", 2)
	viper.SetDefault("slug.sourcefields", "slug,client_name,name")
	viper.SetDefault("title.sourcefields", "client_name,name")
	viper.SetDefault("sitemap.enabled", true)
	viper.SetDefault("sitemap.dir", "sitemaps")
	viper.SetDefault("sitemap.masterfile", "ai-sitemap.xml")
	viper.SetDefault("sitemap.generateindex", true)
	viper.SetDefault("sitemap.domainfield", "website")
	viper.SetDefault("sitemap.placeholderdomains", []string{"example.com", "yourdomain.com", "localhost", "test.com"})
	viper.SetDefault("sitemap.minurls", 1)
	viper.SetDefault("sitemap.maxurls", 50000)
	viper.SetDefault("notify.enabled", false)
	viper.SetDefault("notify.endpoints", []string{
		"https://www.google.com/ping?sitemap=",
		"https://www.bing.com/ping?sitemap=",
	})
	viper.SetDefault("report.file", "_report.txt")

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional; defaults and env vars cover every key.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// SlugSourceFields returns the ordered candidate columns for slug derivation.
func (c *Config) SlugSourceFields() []string {
	return splitFieldList(c.Slug.SourceFields)
}

// TitleSourceFields returns the ordered candidate columns for title derivation.
func (c *Config) TitleSourceFields() []string {
	return splitFieldList(c.Title.SourceFields)
}

func splitFieldList(s string) []string {
	var fields []string
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
