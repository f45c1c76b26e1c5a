package db

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dtnitsch/linkscout/internal/common"
	dbpkg "github.com/dtnitsch/linkscout/pkg/db"
	"github.com/dtnitsch/linkscout/pkg/table"
	"github.com/urfave/cli/v2"
)

func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-8s %-8s %-8s %-30s\n",
		"ID", "Created", "Domains", "Records", "Failed", "Source")
	fmt.Println(strings.Repeat("-", 90))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-8d %-8d %-8d %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.DomainCount,
			r.RecordCount,
			r.FailedCount,
			r.Source,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'linkscout run <id>' to export a run's records\n")

	return nil
}

// RunAction prints or exports the records of one run.
func RunAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRun(runID)
	if errors.Is(err, dbpkg.ErrRunNotFound) {
		return cli.Exit(fmt.Sprintf("run %d not found", runID), 1)
	}
	if err != nil {
		return err
	}

	records, err := database.GetRunRecords(runID)
	if err != nil {
		return err
	}

	if out := c.String("output"); out != "" {
		if err := table.WriteRecords(out, records); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Run %d: wrote %d records to %s\n", run.RunID, len(records), out)
		return nil
	}

	format, err := common.StdoutFormat(c)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Run %d (%s, %s): %d domains, %d records, %d failed\n",
		run.RunID, run.CreatedAt.Format("2006-01-02 15:04:05"), run.Source,
		run.DomainCount, run.RecordCount, run.FailedCount)
	return table.Encode(os.Stdout, format, records)
}
