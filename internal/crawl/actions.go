package crawl

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dtnitsch/linkscout/internal/common"
	"github.com/dtnitsch/linkscout/models"
	"github.com/dtnitsch/linkscout/pkg/caching"
	"github.com/dtnitsch/linkscout/pkg/crawler"
	"github.com/dtnitsch/linkscout/pkg/db"
	"github.com/dtnitsch/linkscout/pkg/fetcher"
	"github.com/dtnitsch/linkscout/pkg/mapreduce"
	"github.com/dtnitsch/linkscout/pkg/table"
	"github.com/urfave/cli/v2"
)

// Stats summarizes a finished crawl.
type Stats struct {
	TotalDomains     int
	FailedDomains    int
	TotalRecords     int
	TotalTimeSeconds float64
	TopCategories    []string
}

func CrawlAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	startTime := time.Now()

	config, err := loadConfig(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return cli.Exit(err.Error(), 2)
	}

	domains, source, err := collectDomains(c, config)
	if err != nil {
		logger.Error("failed to read domains", "error", err)
		return cli.Exit(err.Error(), 2)
	}
	if len(domains) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No domains provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  linkscout crawl --input domains.csv --output links.xlsx`)
		fmt.Fprintln(os.Stderr, `  linkscout crawl example.com example.org`)
		return cli.Exit("", 1)
	}

	stdoutFormat := table.FormatCSV
	if c.String("output") == "" {
		if stdoutFormat, err = common.StdoutFormat(c); err != nil {
			return err
		}
	}

	opts := []fetcher.Option{fetcher.WithLogger(logger)}
	if config.CacheDir != "" {
		cache, err := caching.NewCache(config.CacheDir, config.CacheTTL)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		opts = append(opts, fetcher.WithCache(cache))
	}
	f := fetcher.NewFetcher(config, opts...)
	cr := crawler.NewCrawler(f, config.WorkerCount, logger)

	var intermediate []map[string]int
	failedDomains := 0
	cr.OnDomain(func(domain string, records []models.LinkRecord) {
		intermediate = append(intermediate, mapreduce.Map(records))
		if len(records) == 1 && records[0].Failed() {
			failedDomains++
		}
	})

	logger.Info("Starting crawl", "domains", len(domains), "workers", config.WorkerCount, "timeout", config.Timeout.String())
	records := cr.Crawl(domains)
	logger.Info("Crawl finished", "domains", len(domains), "records", len(records), "failed_domains", failedDomains)

	if out := c.String("output"); out != "" {
		if err := table.WriteRecords(out, records); err != nil {
			logger.Error("failed to write output", "path", out, "error", err)
			return cli.Exit(err.Error(), 2)
		}
		logger.Info("Wrote output", "path", out, "records", len(records))
	} else if err := table.Encode(os.Stdout, stdoutFormat, records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}

	if !c.Bool("no-db") {
		saveRun(logger, c.String("db"), source, len(domains), records)
	}

	categoryCounts := mapreduce.Reduce(intermediate)
	stats := Stats{
		TotalDomains:     len(domains),
		FailedDomains:    failedDomains,
		TotalRecords:     len(records),
		TotalTimeSeconds: time.Since(startTime).Seconds(),
		TopCategories:    mapreduce.TopCategories(categoryCounts, 10),
	}
	if !c.Bool("quiet") {
		printStats(stats, categoryCounts)
	}

	if stats.FailedDomains == stats.TotalDomains {
		return cli.Exit("every domain failed to fetch", 1)
	}
	return nil
}

// loadConfig applies CLI flags on top of the config file (or defaults).
func loadConfig(c *cli.Context) (*models.CrawlConfig, error) {
	config := models.DefaultCrawlConfig()
	if path := c.String("config"); path != "" {
		var err error
		if config, err = models.LoadConfig(path); err != nil {
			return nil, err
		}
	}

	if c.IsSet("workers") {
		config.WorkerCount = c.Int("workers")
	}
	if c.IsSet("timeout") {
		config.Timeout = c.Duration("timeout")
	}
	if c.IsSet("user-agent") {
		config.UserAgent = c.String("user-agent")
	}
	if c.IsSet("cache-dir") {
		config.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("cache-ttl") {
		config.CacheTTL = c.Duration("cache-ttl")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// collectDomains returns the domains to crawl and a label for the run.
// Positional arguments win over --input, which wins over the config file.
func collectDomains(c *cli.Context, config *models.CrawlConfig) ([]string, string, error) {
	if c.NArg() > 0 {
		return c.Args().Slice(), "args", nil
	}
	if input := c.String("input"); input != "" {
		domains, err := table.ReadDomains(input)
		return domains, input, err
	}
	return config.Domains, c.String("config"), nil
}

func saveRun(logger *slog.Logger, dbPath, source string, domainCount int, records []models.LinkRecord) {
	database, err := db.Open(dbPath)
	if err != nil {
		logger.Warn("Failed to open database, run not saved", "error", err)
		return
	}
	defer database.Close()

	runID, err := database.SaveRun(source, domainCount, records)
	if err != nil {
		logger.Warn("Failed to save run", "error", err)
		return
	}
	logger.Info("Saved run", "run_id", runID, "db", database.Path())
}

func printStats(stats Stats, categoryCounts map[string]int) {
	fmt.Fprintf(os.Stderr, "\nCrawled %d domains in %.1fs: %d records, %d domains failed\n",
		stats.TotalDomains, stats.TotalTimeSeconds, stats.TotalRecords, stats.FailedDomains)
	if len(categoryCounts) == 0 {
		return
	}
	fmt.Fprintln(os.Stderr, "\n--- Top Categories ---")
	mapreduce.PrintTopCategories(os.Stderr, categoryCounts, len(stats.TopCategories))
}
