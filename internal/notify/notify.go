package notify

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/clientforge/schemagen/internal/utils"
)

// Pinger tells search engines about an updated sitemap. Failures are
// logged and never affect the run's exit status.
type Pinger struct {
	endpoints []string
	client    *http.Client
	logger    *utils.RunLogger
}

func NewPinger(endpoints []string, logger *utils.RunLogger) *Pinger {
	return &Pinger{
		endpoints: endpoints,
		client:    &http.Client{Timeout: 15 * time.Second},
		logger:    logger,
	}
}

// Ping notifies every configured endpoint with the sitemap URL appended
// as a query value.
func (p *Pinger) Ping(sitemapURL string) {
	for _, endpoint := range p.endpoints {
		target := endpoint + url.QueryEscape(sitemapURL)
		if err := p.ping(target); err != nil {
			p.logger.LogWarn("Search engine ping failed: %v", err)
			continue
		}
		p.logger.LogInfo("Pinged %s", endpoint)
	}
}

func (p *Pinger) ping(target string) error {
	resp, err := p.client.Get(target)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("ping %s returned status %d", target, resp.StatusCode)
	}
	return nil
}
