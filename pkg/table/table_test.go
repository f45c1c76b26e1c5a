package table

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dtnitsch/linkscout/models"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

func sampleRecords() []models.LinkRecord {
	meta := models.PageMetadata{Title: "Contact", Description: "Reach us"}
	return []models.LinkRecord{
		models.NewLinkRecord("https://acme.test", "https://acme.test/contact", "Contact Us", meta),
		models.FailedRecord("nowhere.test"),
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestReadDomains_CSV(t *testing.T) {
	path := writeFile(t, "in.csv", "Website,Owner\n acme.test ,Ann\n,Bob\nhttps://beta.test,\nlonely\n")

	got, err := ReadDomains(path)
	if err != nil {
		t.Fatalf("ReadDomains() error = %v", err)
	}
	want := []string{"acme.test", "https://beta.test", "lonely"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadDomains() = %v, want %v", got, want)
	}
}

func TestReadDomains_Text(t *testing.T) {
	path := writeFile(t, "in.txt", "acme.test\n\n  beta.test\n")

	got, err := ReadDomains(path)
	if err != nil {
		t.Fatalf("ReadDomains() error = %v", err)
	}
	want := []string{"acme.test", "beta.test"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadDomains() = %v, want %v", got, want)
	}
}

func TestReadDomains_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{{"Domain"}, {"acme.test"}, {""}, {"beta.test"}}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow() error = %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	f.Close()

	got, err := ReadDomains(path)
	if err != nil {
		t.Fatalf("ReadDomains() error = %v", err)
	}
	want := []string{"acme.test", "beta.test"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadDomains() = %v, want %v", got, want)
	}
}

func TestReadDomains_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "in.parquet", "")
	if _, err := ReadDomains(path); err == nil {
		t.Error("ReadDomains() expected error for .parquet")
	}
}

func TestEncode_CSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, FormatCSV, sampleRecords()); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := strings.Join([]string{
		"Input URL,Extracted URL,Category,Title,Metadata",
		"https://acme.test,https://acme.test/contact,Contact Us,Contact,Reach us",
		"nowhere.test,,Failed to fetch,N/A,N/A",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestEncode_YAMLAbsentURLIsNull(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, FormatYAML, sampleRecords()); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var decoded []map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d records, want 2", len(decoded))
	}
	if decoded[1]["extracted_url"] != nil {
		t.Errorf("failed record extracted_url = %v, want null", decoded[1]["extracted_url"])
	}
	if decoded[0]["category"] != "Contact Us" {
		t.Errorf("category = %v, want Contact Us", decoded[0]["category"])
	}
}

func TestEncode_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, FormatJSON, nil); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("Encode(nil) = %q, want []", buf.String())
	}
}

func TestWriteRecords_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := WriteRecords(path, sampleRecords()); err != nil {
		t.Fatalf("WriteRecords() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if !reflect.DeepEqual(rows[0], models.Columns) {
		t.Errorf("header = %v, want %v", rows[0], models.Columns)
	}
	if rows[1][2] != "Contact Us" {
		t.Errorf("row 1 category = %q", rows[1][2])
	}
	if rows[2][0] != "nowhere.test" || rows[2][2] != "Failed to fetch" {
		t.Errorf("row 2 = %v", rows[2])
	}
}

func TestWriteRecords_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteRecords(path, sampleRecords()); err != nil {
		t.Fatalf("WriteRecords() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "Input URL,Extracted URL,Category,Title,Metadata\n") {
		t.Errorf("unexpected header in %q", string(data))
	}
}
