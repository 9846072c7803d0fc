// Package imageurl rewrites image references from the feed into URLs that
// can be embedded directly in a page.
package imageurl

import (
	"regexp"
	"strings"
)

var (
	filePathID = regexp.MustCompile(`(?i)/file/d/([^/]+)`)
	queryID    = regexp.MustCompile(`(?i)[?&]id=([^&]+)`)
)

// DirectDriveURL turns a Google Drive share link into a direct image link.
// Links already served from googleusercontent.com and links without a
// recognizable file id are returned unchanged.
func DirectDriveURL(url string) string {
	if url == "" {
		return ""
	}
	if strings.Contains(url, "googleusercontent.com") {
		return url
	}

	id := ""
	if m := filePathID.FindStringSubmatch(url); m != nil {
		id = m[1]
	} else if m := queryID.FindStringSubmatch(url); m != nil {
		id = m[1]
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return url
	}
	return "https://lh3.googleusercontent.com/d/" + id + "=w1000"
}
