// Package table reads the input domain list and writes crawl output in the
// format implied by the file extension.
package table

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/linkscout/models"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Format is a supported table file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "txt"
)

const sheetName = "Sheet1"

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unsupported file extension %q (want .csv, .xlsx, .json, .yaml or .txt)", filepath.Ext(path))
}

// ReadDomains returns the non-empty cells of the first column, in row
// order. The first row of .csv and .xlsx files is a header and is skipped;
// .txt files hold one domain per line with no header.
func ReadDomains(path string) ([]string, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	switch format {
	case FormatCSV:
		rows, err = readCSVRows(path)
	case FormatXLSX:
		rows, err = readXLSXRows(path)
	case FormatText:
		rows, err = readTextRows(path)
	default:
		return nil, fmt.Errorf("cannot read domains from %s files", format)
	}
	if err != nil {
		return nil, err
	}

	if format != FormatText && len(rows) > 0 {
		rows = rows[1:]
	}
	return firstColumn(rows), nil
}

func firstColumn(rows [][]string) []string {
	domains := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if cell == "" {
			continue
		}
		domains = append(domains, cell)
	}
	return domains
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv %s: %w", path, err)
	}
	return rows, nil
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func readTextRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	var rows [][]string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		rows = append(rows, []string{scanner.Text()})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rows, nil
}

// WriteRecords writes records to path with the models.Columns header.
func WriteRecords(path string, records []models.LinkRecord) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatXLSX:
		return writeXLSX(path, records)
	case FormatText:
		return fmt.Errorf("cannot write records as %s", format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := Encode(f, format, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Encode writes records to w in a text format (csv, json or yaml).
func Encode(w io.Writer, format Format, records []models.LinkRecord) error {
	switch format {
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(models.Columns); err != nil {
			return fmt.Errorf("failed to write csv header: %w", err)
		}
		for _, r := range records {
			if err := cw.Write(r.Row()); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
		cw.Flush()
		return cw.Error()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(nonNil(records))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(nonNil(records)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("cannot encode records as %s", format)
}

func nonNil(records []models.LinkRecord) []models.LinkRecord {
	if records == nil {
		return []models.LinkRecord{}
	}
	return records
}

func writeXLSX(path string, records []models.LinkRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(models.Columns))
	for i, c := range models.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := r.Row()
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
