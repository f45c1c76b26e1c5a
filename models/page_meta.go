package models

// NotAvailable is the sentinel written when a value could not be fetched or parsed.
const NotAvailable = "N/A"

// PageMetadata is the title and meta description of a single fetched page.
type PageMetadata struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// UnavailableMetadata is returned whenever a page cannot be fetched.
func UnavailableMetadata() PageMetadata {
	return PageMetadata{Title: NotAvailable, Description: NotAvailable}
}
