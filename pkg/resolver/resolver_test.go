package resolver

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dtnitsch/linkscout/pkg/fetcher"
)

// fakeGetter answers from a fixed table and records every URL requested.
type fakeGetter struct {
	status map[string]int
	calls  []string
}

func (g *fakeGetter) Get(url string) (*fetcher.Response, error) {
	g.calls = append(g.calls, url)
	code, ok := g.status[url]
	if !ok {
		return nil, errors.New("connection refused")
	}
	return &fetcher.Response{URL: url, StatusCode: code}, nil
}

func TestResolve_ProbesInOrder(t *testing.T) {
	g := &fakeGetter{status: map[string]int{"http://www.acme.test": 200}}
	r := NewResolver(g, nil)

	got, ok := r.Resolve("acme.test")
	if !ok || got != "http://www.acme.test" {
		t.Fatalf("Resolve() = (%q, %v), want (%q, true)", got, ok, "http://www.acme.test")
	}

	want := []string{"https://acme.test", "https://www.acme.test", "http://acme.test", "http://www.acme.test"}
	if !reflect.DeepEqual(g.calls, want) {
		t.Errorf("probe order = %v, want %v", g.calls, want)
	}
}

func TestResolve_StopsAtFirstSuccess(t *testing.T) {
	g := &fakeGetter{status: map[string]int{
		"https://acme.test":     301,
		"https://www.acme.test": 200,
	}}
	r := NewResolver(g, nil)

	got, ok := r.Resolve("acme.test")
	if !ok || got != "https://acme.test" {
		t.Fatalf("Resolve() = (%q, %v), want (%q, true)", got, ok, "https://acme.test")
	}
	if len(g.calls) != 1 {
		t.Errorf("made %d probes, want 1", len(g.calls))
	}
}

func TestResolve_SkipsErrorStatus(t *testing.T) {
	g := &fakeGetter{status: map[string]int{
		"https://acme.test":     500,
		"https://www.acme.test": 404,
		"http://acme.test":      204,
	}}
	r := NewResolver(g, nil)

	got, ok := r.Resolve("acme.test")
	if !ok || got != "http://acme.test" {
		t.Errorf("Resolve() = (%q, %v), want (%q, true)", got, ok, "http://acme.test")
	}
}

func TestResolve_AllFail(t *testing.T) {
	g := &fakeGetter{}
	r := NewResolver(g, nil)

	got, ok := r.Resolve("nowhere.test")
	if ok || got != "" {
		t.Errorf("Resolve() = (%q, %v), want (\"\", false)", got, ok)
	}
	if len(g.calls) != len(Prefixes) {
		t.Errorf("made %d probes, want %d", len(g.calls), len(Prefixes))
	}
}

func TestResolve_SchemeSkipsProbing(t *testing.T) {
	g := &fakeGetter{}
	r := NewResolver(g, nil)

	for _, raw := range []string{"https://acme.test", "http://acme.test/path", "ftp://files.acme.test"} {
		got, ok := r.Resolve(raw)
		if !ok || got != raw {
			t.Errorf("Resolve(%q) = (%q, %v), want unchanged", raw, got, ok)
		}
	}
	if len(g.calls) != 0 {
		t.Errorf("made %d probes for URLs with a scheme, want 0", len(g.calls))
	}
}

func TestHasScheme(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{raw: "https://acme.test", want: true},
		{raw: "acme.test", want: false},
		{raw: "www.acme.test/about", want: false},
		// host:port parses with "acme.test" as the scheme
		{raw: "acme.test:8080", want: true},
		{raw: "", want: false},
	}

	for _, tt := range tests {
		if got := HasScheme(tt.raw); got != tt.want {
			t.Errorf("HasScheme(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
