// Package videoid extracts YouTube video identifiers from URLs.
package videoid

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/exp/slices"
)

// Hosts serving the long-form watch page, addressed by the `v` query parameter.
var watchHosts = []string{"www.youtube.com", "youtube.com"}

// Host of the shortened links, addressed by the first path segment.
const shortHost = "youtu.be"

var idRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Extract returns the video identifier carried by the given URL.
// It reports false for malformed URLs, unknown hosts and URLs without an identifier.
func Extract(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	host := strings.ToLower(u.Host)
	switch {
	case slices.Contains(watchHosts, host):
		id := u.Query().Get("v")
		return id, id != ""
	case host == shortHost:
		id, _, _ := strings.Cut(strings.Trim(u.Path, "/"), "/")
		return id, id != ""
	}
	return "", false
}

// Valid reports whether the identifier only holds the characters YouTube
// uses, which makes it safe to embed in file paths and storage keys.
func Valid(id string) bool {
	return idRE.MatchString(id)
}
