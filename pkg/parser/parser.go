package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/linkscout/models"
)

// Document is a parsed HTML page that can be queried for the pieces a
// crawl needs.
type Document struct {
	doc *goquery.Document
}

// Parse parses an HTML body. goquery is lenient, so an error here means the
// body could not be read at all.
func Parse(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Title returns the trimmed text of the first <title> element.
func (d *Document) Title() (string, bool) {
	sel := d.doc.Find("title").First()
	if sel.Length() == 0 {
		return "", false
	}
	title := strings.TrimSpace(sel.Text())
	return title, title != ""
}

// MetaDescription returns the trimmed content of <meta name="description">.
// An empty content attribute still counts as present.
func (d *Document) MetaDescription() (string, bool) {
	content, exists := d.doc.Find(`meta[name="description"]`).First().Attr("content")
	if !exists {
		return "", false
	}
	return strings.TrimSpace(content), true
}

// AnchorHrefs returns the trimmed href of every <a> that has one, in
// document order.
func (d *Document) AnchorHrefs() []string {
	var hrefs []string
	d.doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		hrefs = append(hrefs, strings.TrimSpace(href))
	})
	return hrefs
}

// Metadata collapses the document's title and description into a
// PageMetadata, substituting models.NotAvailable for missing values.
func (d *Document) Metadata() models.PageMetadata {
	meta := models.UnavailableMetadata()
	if title, ok := d.Title(); ok {
		meta.Title = title
	}
	if desc, ok := d.MetaDescription(); ok {
		meta.Description = desc
	}
	return meta
}

// Links returns the document's anchor targets with root-relative hrefs
// made absolute against baseURL. Duplicates are dropped, keeping the
// first occurrence.
func (d *Document) Links(baseURL string) []string {
	hrefs := d.AnchorHrefs()
	seen := make(map[string]struct{}, len(hrefs))
	links := make([]string, 0, len(hrefs))

	for _, href := range hrefs {
		link := Absolutize(href, baseURL)
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}
	return links
}

// ExtractLinks parses htmlBody and returns its deduplicated links.
// Unparseable input yields no links.
func ExtractLinks(htmlBody, baseURL string) []string {
	doc, err := Parse(htmlBody)
	if err != nil {
		return nil
	}
	return doc.Links(baseURL)
}

// Absolutize prefixes a root-relative href ("/about") with baseURL.
// Protocol-relative ("//cdn.example.com"), absolute, fragment, mailto:,
// javascript: and path-relative hrefs are returned unchanged.
func Absolutize(href, baseURL string) string {
	if strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//") {
		return baseURL + href
	}
	return href
}
