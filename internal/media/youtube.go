// Package media extracts video references from the URL dialects editors paste into the CMS.
package media

import (
	"net/url"
	"regexp"
	"strings"
)

const youTubeIDLength = 11

var (
	youTubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	youTubeScan      = regexp.MustCompile(`(youtu\.be/|youtube\.com/(watch\?(.*&)?v=|embed/|shorts/))([A-Za-z0-9_-]{11})`)
)

// YouTubeID returns the 11-character video id referenced by raw, or "" when none can be
// found. Short links, watch URLs, embed and shorts paths are understood; anything else
// falls back to a single pattern scan of the raw text.
func YouTubeID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		host := strings.ToLower(u.Host)
		switch {
		case strings.Contains(host, "youtu.be"):
			segments := pathSegments(u.Path)
			if len(segments) > 0 && validID(segments[0]) {
				return segments[0]
			}
			return ""
		case strings.Contains(host, "youtube.com"):
			if v := u.Query().Get("v"); validID(v) {
				return v
			}
			segments := pathSegments(u.Path)
			// embed/<id> and shorts/<id> keep the id in the second segment.
			if len(segments) > 1 && validID(segments[1]) {
				return segments[1]
			}
			if len(segments) > 0 && validID(segments[0]) {
				return segments[0]
			}
			return ""
		}
	}
	if m := youTubeScan.FindStringSubmatch(raw); m != nil {
		return m[len(m)-1]
	}
	return ""
}

// EmbedURL returns the privacy-friendly embed URL for id, or "" for an invalid id.
func EmbedURL(id string) string {
	if !validID(id) {
		return ""
	}
	return "https://www.youtube-nocookie.com/embed/" + id
}

// ThumbnailURL returns the high-quality preview image for id, or "" for an invalid id.
func ThumbnailURL(id string) string {
	if !validID(id) {
		return ""
	}
	return "https://i.ytimg.com/vi/" + id + "/hqdefault.jpg"
}

// ValidYouTubeID reports whether id has the shape of a YouTube video id.
func ValidYouTubeID(id string) bool {
	return validID(id)
}

func validID(id string) bool {
	return len(id) == youTubeIDLength && youTubeIDPattern.MatchString(id)
}

func pathSegments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
