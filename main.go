package main

import (
	"log"
	"os"

	"github.com/dtnitsch/linkscout/internal/categories"
	"github.com/dtnitsch/linkscout/internal/crawl"
	"github.com/dtnitsch/linkscout/internal/db"
	"github.com/dtnitsch/linkscout/internal/inspect"
	"github.com/dtnitsch/linkscout/models"
	"github.com/urfave/cli/v2"
)

var (
	dbFlag = &cli.StringFlag{
		Name:  "db",
		Usage: "SQLite database path (default: linkscout.db next to the executable)",
	}
	formatFlag = &cli.StringFlag{
		Name:  "format",
		Value: "csv",
		Usage: "stdout format: csv, json or yaml",
	}
	quietFlag = &cli.BoolFlag{
		Name:  "quiet",
		Usage: "only log errors",
	}
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "log every request",
	}
	timeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Value: models.DefaultTimeout,
		Usage: "per-request timeout",
	}
)

func main() {
	app := &cli.App{
		Name:  "linkscout",
		Usage: "Crawl domains, collect their links and categorize them",
		Commands: []*cli.Command{
			{
				Name:      "crawl",
				Usage:     "Crawl domains and classify every link on their landing pages",
				ArgsUsage: "[domain...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "domain list (.csv, .xlsx or .txt), first column",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "write records to a file (.csv, .xlsx, .json or .yaml)",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "YAML config file",
					},
					&cli.IntFlag{
						Name:  "workers",
						Value: models.DefaultWorkerCount,
						Usage: "concurrent link fetches per domain",
					},
					timeoutFlag,
					&cli.StringFlag{
						Name:  "user-agent",
						Value: models.DefaultUserAgent,
						Usage: "User-Agent header sent with every request",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Usage: "cache link metadata in this directory between runs",
					},
					&cli.DurationFlag{
						Name:  "cache-ttl",
						Value: models.DefaultCacheTTL,
						Usage: "how long cached metadata stays fresh",
					},
					dbFlag,
					&cli.BoolFlag{
						Name:  "no-db",
						Usage: "do not record the run in the database",
					},
					formatFlag,
					quietFlag,
					verboseFlag,
				},
				Action: crawl.CrawlAction,
			},
			{
				Name:      "inspect",
				Usage:     "Fetch one page and print its category, metadata and language",
				ArgsUsage: "<url-or-domain>",
				Flags:     []cli.Flag{timeoutFlag, quietFlag, verboseFlag},
				Action:    inspect.InspectAction,
			},
			{
				Name:      "categories",
				Usage:     "List classifier rules, or categorize the given URLs",
				ArgsUsage: "[url...]",
				Action:    categories.CategoriesAction,
			},
			{
				Name:  "runs",
				Usage: "List recorded crawl runs",
				Flags: []cli.Flag{
					dbFlag,
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "maximum runs to show",
					},
				},
				Action: db.RunsAction,
			},
			{
				Name:      "run",
				Usage:     "Print or export the records of a run (latest if no ID)",
				ArgsUsage: "[run-id]",
				Flags: []cli.Flag{
					dbFlag,
					formatFlag,
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "write records to a file instead of stdout",
					},
				},
				Action: db.RunAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
