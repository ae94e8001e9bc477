package usecase

import (
	"errors"
	"net/url"
	"strings"
)

const (
	// DefaultMaxLinks is used when a request leaves max_links unset.
	DefaultMaxLinks = 10
	// MaxLinksCeiling is the hard upper bound on max_links.
	MaxLinksCeiling = 50
)

// ErrInvalidMaxLinks is returned when max_links falls outside [1, 50]. It is
// raised before any network activity.
var ErrInvalidMaxLinks = errors.New("max_links must be between 1 and 50")

// Discover selects a bounded, deduplicated candidate set from a seed page's
// outbound links. Each link is resolved against the seed, fragment-stripped
// and trailing-slash normalized; non-http(s) schemes and self links are
// filtered out. The first maxLinks survivors are kept in first-seen order.
//
// This is a deterministic cap, not a relevance ranker; any scoring of links
// happens inside the external crawler, never here.
func Discover(seedURL string, links []string, maxLinks int) ([]string, error) {
	if maxLinks < 1 || maxLinks > MaxLinksCeiling {
		return nil, ErrInvalidMaxLinks
	}

	base, err := url.Parse(seedURL)
	if err != nil {
		return nil, err
	}
	seed, _ := normalizeURL(base, seedURL)

	seen := make(map[string]struct{})
	var candidates []string
	for _, link := range links {
		normalized, ok := normalizeURL(base, link)
		if !ok || normalized == seed {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		candidates = append(candidates, normalized)
		if len(candidates) == maxLinks {
			break
		}
	}
	return candidates, nil
}

// normalizeURL resolves href against base and canonicalizes it: fragment
// stripped, trailing slash trimmed. The bare root path collapses to the
// empty path, so "https://host/" and "https://host" share one form. ok is
// false for unparsable links and non-http(s) schemes.
func normalizeURL(base *url.URL, href string) (normalized string, ok bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	resolved, err := base.Parse(href)
	if err != nil {
		return "", false
	}
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	resolved.Fragment = ""
	resolved.Path = strings.TrimSuffix(resolved.Path, "/")
	return resolved.String(), true
}
