package inspect

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/linkscout/internal/common"
	"github.com/dtnitsch/linkscout/models"
	"github.com/dtnitsch/linkscout/pkg/detector"
	"github.com/dtnitsch/linkscout/pkg/fetcher"
	"github.com/dtnitsch/linkscout/pkg/resolver"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// InspectAction fetches one page and prints everything linkscout knows
// about it as YAML.
func InspectAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: linkscout inspect <url-or-domain>", 1)
	}
	logger := common.NewLogger(c)

	config := models.DefaultCrawlConfig()
	if c.IsSet("timeout") {
		config.Timeout = c.Duration("timeout")
	}
	if err := config.Validate(); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	f := fetcher.NewFetcher(config, fetcher.WithLogger(logger))

	target := strings.TrimSpace(c.Args().First())
	if resolved, ok := resolver.NewResolver(f, logger).Resolve(target); ok {
		target = resolved
	}

	resp, err := f.Get(target)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", target, err)
	}

	insight := detector.Analyze(target, resp)

	yamlBytes, err := yaml.Marshal(insight)
	if err != nil {
		return fmt.Errorf("failed to marshal insight: %w", err)
	}
	fmt.Print(string(yamlBytes))
	return nil
}
