// Package crawler drives the per-domain pipeline: resolve the domain, fetch
// its landing page, extract links, then classify and enrich every link.
package crawler

import (
	"log/slog"
	"strings"

	"github.com/dtnitsch/linkscout/models"
	"github.com/dtnitsch/linkscout/pkg/classifier"
	"github.com/dtnitsch/linkscout/pkg/fetcher"
	"github.com/dtnitsch/linkscout/pkg/parser"
	"github.com/dtnitsch/linkscout/pkg/resolver"
)

// Client is the network capability the crawler needs. *fetcher.Fetcher
// satisfies it.
type Client interface {
	Get(url string) (*fetcher.Response, error)
	FetchMetadata(url string) models.PageMetadata
}

// DomainHook is called after each domain with that domain's records.
type DomainHook func(domain string, records []models.LinkRecord)

type Crawler struct {
	client      Client
	resolver    *resolver.Resolver
	workerCount int
	logger      *slog.Logger
	onDomain    DomainHook
}

func NewCrawler(client Client, workerCount int, logger *slog.Logger) *Crawler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if workerCount < 1 {
		workerCount = models.DefaultWorkerCount
	}
	return &Crawler{
		client:      client,
		resolver:    resolver.NewResolver(client, logger),
		workerCount: workerCount,
		logger:      logger,
	}
}

// OnDomain registers a hook run after every domain, in input order.
func (c *Crawler) OnDomain(hook DomainHook) {
	c.onDomain = hook
}

// Crawl processes domains one at a time, in order, and returns every
// domain's records concatenated. A domain that cannot be fetched yields
// exactly one failed record; a landing page without links yields none.
func (c *Crawler) Crawl(domains []string) []models.LinkRecord {
	var records []models.LinkRecord
	for i, raw := range domains {
		c.logger.Info("Crawling domain", "index", i+1, "total", len(domains), "domain", raw)
		domainRecords := c.CrawlDomain(raw)
		if c.onDomain != nil {
			c.onDomain(raw, domainRecords)
		}
		records = append(records, domainRecords...)
	}
	return records
}

// CrawlDomain runs the pipeline for a single input domain.
func (c *Crawler) CrawlDomain(raw string) []models.LinkRecord {
	domain := strings.TrimSpace(raw)

	baseURL := domain
	if resolved, ok := c.resolver.Resolve(domain); ok {
		baseURL = resolved
	}

	// The landing page is parsed whatever its status code; only a
	// transport failure counts as a failed domain.
	resp, err := c.client.Get(baseURL)
	if err != nil {
		c.logger.Error("Failed to fetch landing page", "domain", domain, "url", baseURL, "error", err)
		return []models.LinkRecord{models.FailedRecord(baseURL)}
	}

	links := parser.ExtractLinks(resp.Body, baseURL)
	c.logger.Info("Extracted links", "domain", domain, "url", baseURL, "status_code", resp.StatusCode, "links", len(links))

	metas := c.fetchAll(links)

	records := make([]models.LinkRecord, 0, len(links))
	for i, link := range links {
		records = append(records, models.NewLinkRecord(baseURL, link, classifier.Categorize(link), metas[i]))
	}
	return records
}
