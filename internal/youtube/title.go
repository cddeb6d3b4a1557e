package youtube

import (
	"regexp"
	"strings"

	"github.com/handiism/djassist/internal/model"
)

// trailer matches an optional "(...)" then an optional "[...]" at the end of
// a title, e.g. "(Official Video) [HD]".
const trailer = `(?:\s*\([^)]*\))?(?:\s*\[[^\]]*\])?$`

// titlePatterns are tried in order. The last one has title and artist
// reversed ("Title by Artist").
var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(.+?)\s*-\s*(.+?)` + trailer),
	regexp.MustCompile(`(?i)^(.+?)\s*:\s*(.+?)` + trailer),
	regexp.MustCompile(`(?i)^(.+?)\s*\|\s*(.+?)` + trailer),
	regexp.MustCompile(`(?i)^(.+?)\s+by\s+(.+?)` + trailer),
}

// ParseTitle splits a video title into artist and title.
//
// Recognized forms are "Artist - Title", "Artist : Title", "Artist | Title"
// and "Title by Artist". A trailing "(...)" and "[...]" are dropped from the
// title. Anything else returns "Unknown Artist" and the whole title.
//
// Example:
//
//	ParseTitle("Daft Punk - One More Time (Official Video)")
//	// "Daft Punk", "One More Time"
func ParseTitle(raw string) (artist, title string) {
	raw = strings.TrimSpace(raw)
	for i, re := range titlePatterns {
		m := re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		first, second := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if i == len(titlePatterns)-1 {
			return second, first
		}
		return first, second
	}
	return model.UnknownArtist, raw
}
