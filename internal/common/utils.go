package common

import (
	"log/slog"
	"os"
	"strings"

	"github.com/dtnitsch/linkscout/pkg/table"
	"github.com/urfave/cli/v2"
)

// NewLogger builds the JSON stderr logger shared by all commands.
// --quiet keeps errors only; --verbose adds per-request debug lines.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// StdoutFormat parses the --format flag used when records go to stdout.
func StdoutFormat(c *cli.Context) (table.Format, error) {
	format := table.Format(strings.ToLower(c.String("format")))
	switch format {
	case table.FormatCSV, table.FormatJSON, table.FormatYAML:
		return format, nil
	case "yml":
		return table.FormatYAML, nil
	}
	return "", cli.Exit("invalid --format "+c.String("format")+" (want csv, json or yaml)", 2)
}
