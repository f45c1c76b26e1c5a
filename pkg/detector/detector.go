// Package detector enriches a single fetched page for the inspect command.
package detector

import (
	"net/url"
	"strings"
	"sync"

	"github.com/dtnitsch/linkscout/models"
	"github.com/dtnitsch/linkscout/pkg/classifier"
	"github.com/dtnitsch/linkscout/pkg/fetcher"
	"github.com/dtnitsch/linkscout/pkg/parser"
	"github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"
)

// Insight describes one inspected page.
type Insight struct {
	URL         string `yaml:"url"`
	StatusCode  int    `yaml:"status_code"`
	Category    string `yaml:"category"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`

	// Readability enrichment
	SiteName string `yaml:"site_name,omitempty"`
	Byline   string `yaml:"byline,omitempty"`
	Excerpt  string `yaml:"excerpt,omitempty"`

	DomainType string `yaml:"domain_type"` // gov, edu, mobile, commercial
	Country    string `yaml:"country"`     // TLD-based: uk, de, jp, etc
	Language   string `yaml:"language"`    // ISO-639-1, or "unknown"

	LinkCount int `yaml:"link_count"`
}

// detectedLanguages keeps the lingua model set small; loading every
// language costs hundreds of megabytes.
var detectedLanguages = []lingua.Language{
	lingua.English, lingua.French, lingua.German, lingua.Spanish,
	lingua.Portuguese, lingua.Italian, lingua.Dutch, lingua.Swedish,
	lingua.Polish, lingua.Russian, lingua.Japanese, lingua.Chinese,
}

var (
	languageDetector     lingua.LanguageDetector
	languageDetectorOnce sync.Once
)

func getLanguageDetector() lingua.LanguageDetector {
	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectedLanguages...).
			WithLowAccuracyMode().
			Build()
	})
	return languageDetector
}

// Analyze builds an Insight from a fetched page. Failures inside the
// enrichment steps leave the corresponding fields empty.
func Analyze(rawURL string, resp *fetcher.Response) *Insight {
	in := &Insight{
		URL:         rawURL,
		StatusCode:  resp.StatusCode,
		Category:    classifier.Categorize(rawURL),
		Title:       models.NotAvailable,
		Description: models.NotAvailable,
		DomainType:  "unknown",
		Country:     "unknown",
		Language:    "unknown",
	}

	parsedURL, err := url.Parse(rawURL)
	if err == nil {
		in.DomainType = detectDomainType(parsedURL)
		in.Country = detectCountry(parsedURL)
	}

	if doc, err := parser.Parse(resp.Body); err == nil {
		meta := doc.Metadata()
		in.Title = meta.Title
		in.Description = meta.Description
		in.LinkCount = len(doc.Links(rawURL))
	}

	var text []string
	if parsedURL != nil {
		readabilityParser := readability.NewParser()
		article, err := readabilityParser.Parse(strings.NewReader(resp.Body), parsedURL)
		if err == nil {
			in.SiteName = strings.TrimSpace(article.SiteName)
			in.Byline = strings.TrimSpace(article.Byline)
			in.Excerpt = strings.TrimSpace(article.Excerpt)
			text = append(text, article.Excerpt)
		}
	}

	for _, s := range []string{in.Title, in.Description} {
		if s != models.NotAvailable {
			text = append(text, s)
		}
	}
	in.Language = DetectLanguage(strings.Join(text, " "))

	return in
}

// DetectLanguage returns the lowercase ISO-639-1 code of text's language,
// or "unknown".
func DetectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return "unknown"
	}
	language, exists := getLanguageDetector().DetectLanguageOf(text)
	if !exists {
		return "unknown"
	}
	return strings.ToLower(language.IsoCode639_1().String())
}

// detectDomainType identifies domain classification
func detectDomainType(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "unknown"
	}

	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".mil") {
		return "gov"
	}
	if strings.HasSuffix(host, ".edu") {
		return "edu"
	}
	if strings.HasPrefix(host, "m.") || strings.HasPrefix(host, "mobile.") {
		return "mobile"
	}
	return "commercial"
}

// detectCountry extracts country from TLD
func detectCountry(u *url.URL) string {
	parts := strings.Split(strings.ToLower(u.Hostname()), ".")
	if len(parts) < 2 {
		return "unknown"
	}

	tld := parts[len(parts)-1]

	countries := map[string]string{
		"uk": "uk", "de": "de", "fr": "fr", "jp": "jp", "cn": "cn",
		"au": "au", "ca": "ca", "in": "in", "br": "br", "ru": "ru",
		"it": "it", "es": "es", "nl": "nl", "se": "se", "ch": "ch",
	}
	if country, ok := countries[tld]; ok {
		return country
	}

	// US implied for .gov, .edu, .mil
	if tld == "gov" || tld == "edu" || tld == "mil" {
		return "us"
	}

	return "unknown"
}
