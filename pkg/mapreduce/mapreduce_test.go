package mapreduce

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/dtnitsch/linkscout/models"
)

func TestMapReduce(t *testing.T) {
	na := models.UnavailableMetadata()
	domainA := []models.LinkRecord{
		models.NewLinkRecord("https://a.test", "https://a.test/contact", "Contact Us", na),
		models.NewLinkRecord("https://a.test", "https://a.test/blog", "Blog and Articles", na),
		models.NewLinkRecord("https://a.test", "https://a.test/blog/2", "Blog and Articles", na),
	}
	domainB := []models.LinkRecord{
		models.FailedRecord("b.test"),
	}

	got := Reduce([]map[string]int{Map(domainA), Map(domainB)})
	want := map[string]int{
		"Contact Us":        1,
		"Blog and Articles": 2,
		"Failed to fetch":   1,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce(Map...) = %v, want %v", got, want)
	}
}

func TestTopCategories(t *testing.T) {
	counts := map[string]int{"FAQ": 2, "Home": 5, "About Us": 2, "Pricing": 1}

	tests := []struct {
		n    int
		want []string
	}{
		{n: 2, want: []string{"Home:5", "About Us:2"}},
		{n: 10, want: []string{"Home:5", "About Us:2", "FAQ:2", "Pricing:1"}},
		{n: 0, want: []string{}},
	}

	for _, tt := range tests {
		if got := TopCategories(counts, tt.n); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("TopCategories(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestPrintTopCategories(t *testing.T) {
	var buf bytes.Buffer
	PrintTopCategories(&buf, map[string]int{"Home": 3, "FAQ": 1}, 5)

	want := "1. Home: 3\n2. FAQ: 1\n"
	if buf.String() != want {
		t.Errorf("PrintTopCategories() = %q, want %q", buf.String(), want)
	}
}
