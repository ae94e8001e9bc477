package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// HashURL creates a SHA256 hash of a URL string.
// This is useful for creating consistent, safe keys for Redis.
func HashURL(rawURL string) string {
	h := sha256.New()
	h.Write([]byte(rawURL))
	return hex.EncodeToString(h.Sum(nil))
}

// TitleFromURL derives a human-readable fallback title from a URL: the last
// path segment with dashes and underscores replaced by spaces, title-cased,
// or the host when the path is empty.
func TitleFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		segments := strings.Split(path, "/")
		last := segments[len(segments)-1]
		if idx := strings.LastIndex(last, "."); idx > 0 {
			last = last[:idx]
		}
		last = strings.NewReplacer("-", " ", "_", " ").Replace(last)
		return titleCase(last)
	}
	return titleCase(strings.TrimPrefix(parsed.Host, "www."))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
