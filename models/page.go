package models

const (
	CategoryMiscellaneous = "Miscellaneous"
	CategoryFailedToFetch = "Failed to fetch"
)

// Columns is the fixed header of the output table.
var Columns = []string{"Input URL", "Extracted URL", "Category", "Title", "Metadata"}

// LinkRecord is one output row: a link discovered on a domain's landing page.
// ExtractedURL is nil only for the single record emitted when the landing
// page itself could not be fetched.
type LinkRecord struct {
	InputURL     string  `json:"input_url" yaml:"input_url"`
	ExtractedURL *string `json:"extracted_url" yaml:"extracted_url"`
	Category     string  `json:"category" yaml:"category"`
	Title        string  `json:"title" yaml:"title"`
	Metadata     string  `json:"metadata" yaml:"metadata"`
}

// NewLinkRecord builds the record for a discovered link.
func NewLinkRecord(inputURL, extractedURL, category string, meta PageMetadata) LinkRecord {
	return LinkRecord{
		InputURL:     inputURL,
		ExtractedURL: &extractedURL,
		Category:     category,
		Title:        meta.Title,
		Metadata:     meta.Description,
	}
}

// FailedRecord builds the single record emitted for a domain whose landing
// page could not be fetched.
func FailedRecord(inputURL string) LinkRecord {
	return LinkRecord{
		InputURL: inputURL,
		Category: CategoryFailedToFetch,
		Title:    NotAvailable,
		Metadata: NotAvailable,
	}
}

// Failed reports whether the record stands for a domain-level fetch failure.
func (r LinkRecord) Failed() bool {
	return r.ExtractedURL == nil
}

// ExtractedURLString returns the extracted URL, or "" when absent.
func (r LinkRecord) ExtractedURLString() string {
	if r.ExtractedURL == nil {
		return ""
	}
	return *r.ExtractedURL
}

// Row returns the record's cells in Columns order.
func (r LinkRecord) Row() []string {
	return []string{r.InputURL, r.ExtractedURLString(), r.Category, r.Title, r.Metadata}
}
