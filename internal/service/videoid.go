package service

import (
	"net/url"
	"strings"
)

// extractVideoID derives a YouTube video ID from a shareable URL. It
// handles short links (youtu.be/<id>), live links
// (youtube.com/live/<id>), and watch links (youtube.com/watch?v=<id>).
// Every input maps to either an ID or ""; it never fails.
func extractVideoID(videoURL string) string {
	if videoURL == "" {
		return ""
	}
	u, err := url.Parse(videoURL)
	if err != nil {
		return ""
	}
	if strings.Contains(u.Host, "youtu.be") {
		return strings.Trim(u.Path, "/")
	}
	if strings.Contains(u.Host, "youtube.com") {
		if rest, ok := strings.CutPrefix(u.Path, "/live/"); ok {
			id, _, _ := strings.Cut(rest, "/")
			return id
		}
		return u.Query().Get("v")
	}
	return ""
}
