package fetcher

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dtnitsch/linkscout/models"
	"github.com/dtnitsch/linkscout/pkg/caching"
)

func newTestFetcher(timeout time.Duration) *Fetcher {
	config := models.DefaultCrawlConfig()
	config.Timeout = timeout
	return NewFetcher(config)
}

func TestFetchMetadata(t *testing.T) {
	var gotUA atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(`<html><head><title> Pricing </title><meta name="description" content="Plans for teams"></head></html>`))
		case "/bare":
			w.Write([]byte(`<html><body>nothing here</body></html>`))
		case "/latin1":
			w.Header().Set("Content-Type", "text/html; charset=windows-1252")
			w.Write([]byte("<html><head><title>Caf\xe9</title></head></html>"))
		default:
			http.Error(w, `<title>Not Found</title>`, http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := newTestFetcher(time.Second)

	tests := []struct {
		name string
		path string
		want models.PageMetadata
	}{
		{name: "title and description", path: "/ok", want: models.PageMetadata{Title: "Pricing", Description: "Plans for teams"}},
		{name: "no tags", path: "/bare", want: models.UnavailableMetadata()},
		{name: "non-utf8 charset", path: "/latin1", want: models.PageMetadata{Title: "Café", Description: models.NotAvailable}},
		{name: "404 is not parsed", path: "/missing", want: models.UnavailableMetadata()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FetchMetadata(srv.URL + tt.path); got != tt.want {
				t.Errorf("FetchMetadata() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if ua, _ := gotUA.Load().(string); ua != models.DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", ua, models.DefaultUserAgent)
	}
}

func TestFetchMetadata_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	f := newTestFetcher(time.Second)
	if got := f.FetchMetadata(url); got != models.UnavailableMetadata() {
		t.Errorf("FetchMetadata(unreachable) = %+v, want N/A pair", got)
	}
}

func TestFetchMetadata_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	f := newTestFetcher(50 * time.Millisecond)
	if got := f.FetchMetadata(srv.URL); got != models.UnavailableMetadata() {
		t.Errorf("FetchMetadata(slow) = %+v, want N/A pair", got)
	}
}

func TestFetchMetadata_MalformedURL(t *testing.T) {
	f := newTestFetcher(time.Second)
	for _, url := range []string{"", "mailto:a@b.c", "javascript:void(0)", "#top", "no-scheme.test"} {
		if got := f.FetchMetadata(url); got != models.UnavailableMetadata() {
			t.Errorf("FetchMetadata(%q) = %+v, want N/A pair", url, got)
		}
	}
}

func TestGet_ReturnsErrorStatusWithBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<a href="/x">x</a>`))
	}))
	defer srv.Close()

	resp, err := newTestFetcher(time.Second).Get(srv.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.OK() {
		t.Error("OK() = true for 500")
	}
	if resp.Body != `<a href="/x">x</a>` {
		t.Errorf("Body = %q", resp.Body)
	}
}

func TestFetchMetadata_Cache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/down" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`<title>Cached</title>`))
	}))
	defer srv.Close()

	cache, err := caching.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	config := models.DefaultCrawlConfig()
	config.Timeout = time.Second
	f := NewFetcher(config, WithCache(cache))

	want := models.PageMetadata{Title: "Cached", Description: models.NotAvailable}
	for i := 0; i < 3; i++ {
		if got := f.FetchMetadata(srv.URL + "/page"); got != want {
			t.Fatalf("FetchMetadata() = %+v, want %+v", got, want)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}

	f.FetchMetadata(srv.URL + "/down")
	f.FetchMetadata(srv.URL + "/down")
	if n := hits.Load(); n != 3 {
		t.Errorf("server hit %d times, want 3; failures must not be cached", n)
	}
}

func TestGet_BodyIsCapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(strings.Repeat("a", MaxBodyBytes+1024)))
	}))
	defer srv.Close()

	resp, err := newTestFetcher(5 * time.Second).Get(srv.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(resp.Body) != MaxBodyBytes {
		t.Errorf("len(Body) = %d, want %d", len(resp.Body), MaxBodyBytes)
	}
}
