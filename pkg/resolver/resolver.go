// Package resolver turns bare domains into reachable base URLs.
package resolver

import (
	"log/slog"
	"net/url"

	"github.com/dtnitsch/linkscout/pkg/fetcher"
)

// Prefixes are tried in this order; the first one that answers wins.
var Prefixes = []string{"https://", "https://www.", "http://", "http://www."}

// Getter issues a single GET. *fetcher.Fetcher satisfies it.
type Getter interface {
	Get(url string) (*fetcher.Response, error)
}

type Resolver struct {
	getter Getter
	logger *slog.Logger
}

func NewResolver(getter Getter, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{getter: getter, logger: logger}
}

// HasScheme reports whether rawDomain already parses as a URL with a scheme.
func HasScheme(rawDomain string) bool {
	parsed, err := url.Parse(rawDomain)
	return err == nil && parsed.Scheme != ""
}

// Resolve returns rawDomain unchanged when it already has a scheme.
// Otherwise it probes each prefix in order and returns the first candidate
// that responds with a 2xx or 3xx status. ok is false when every probe
// fails; callers then fall back to rawDomain as-is.
func (r *Resolver) Resolve(rawDomain string) (string, bool) {
	if HasScheme(rawDomain) {
		return rawDomain, true
	}

	for _, prefix := range Prefixes {
		candidate := prefix + rawDomain
		resp, err := r.getter.Get(candidate)
		if err != nil {
			r.logger.Debug("Probe failed", "domain", rawDomain, "url", candidate, "error", err)
			continue
		}
		if !resp.OK() {
			r.logger.Debug("Probe returned non-success status", "domain", rawDomain, "url", candidate, "status_code", resp.StatusCode)
			continue
		}
		r.logger.Info("Resolved domain", "domain", rawDomain, "url", candidate)
		return candidate, true
	}

	r.logger.Warn("No prefix resolved, falling back to raw domain", "domain", rawDomain)
	return "", false
}
