package model

import (
	"fmt"
	"strings"
)

// Defaults applied when a song is created from a raw list line, and again by
// the playlist JSON writer for songs whose card lacks a numeric field.
const (
	DefaultBPM    = 120
	DefaultKey    = "A"
	DefaultEnergy = 5
	DefaultGenre  = "Pop"

	// UnclassifiedGenre is assigned to cards whose genre list is missing.
	UnclassifiedGenre = "Non classé"

	// UnknownArtist is used when a line carries no recognizable artist.
	UnknownArtist = "Unknown Artist"

	// NewTag marks songs freshly created from a list line.
	NewTag = "nouveau"
)

// Song is the metadata record for one track of the library.
//
// Song is created either by the line parser (from a raw "Artist - Title"
// hint) or by the card parser (from a persisted card). Once classified it is
// treated as immutable.
//
// Numeric fields are pointers: nil means the value was absent or did not
// parse as an integer. The line parser always fills them; cards written by
// hand may not.
//
// Example:
//
//	song := &Song{Title: "One More Time", Artist: "Daft Punk"}
//	song.SourceIdentifier() // "Daft Punk - One More Time"
type Song struct {
	// Title is the song title.
	Title string

	// Artist is the performing artist. Never empty for parsed lines.
	Artist string

	// BPM is the tempo in beats per minute.
	BPM *int

	// Key is the musical key (free text, e.g. "A", "8A", "F#m").
	Key string

	// Energy is a 1-10 energy score.
	Energy *int

	// Genres is ordered; the first entry is the primary genre.
	Genres []string

	// Tags are free labels, kept in insertion order.
	Tags []string

	// DateAdded is an ISO date (YYYY-MM-DD).
	DateAdded string

	// AudioFile is a relative path to the audio asset. It is not checked
	// for existence.
	AudioFile string

	// SourcePath is the card file the song was read from, if any.
	SourcePath string
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// BPMOr returns the BPM, or def when it is unknown.
func (s *Song) BPMOr(def int) int {
	if s.BPM == nil {
		return def
	}
	return *s.BPM
}

// EnergyOr returns the energy score, or def when it is unknown.
func (s *Song) EnergyOr(def int) int {
	if s.Energy == nil {
		return def
	}
	return *s.Energy
}

// PrimaryGenre returns the first genre, or "" when the song has none.
func (s *Song) PrimaryGenre() string {
	if len(s.Genres) == 0 {
		return ""
	}
	return s.Genres[0]
}

// DisplayName returns "artist - title".
func (s *Song) DisplayName() string {
	return fmt.Sprintf("%s - %s", s.Artist, s.Title)
}

// SourceIdentifier returns the filesystem-safe identifier of the song,
// derived from "artist - title".
func (s *Song) SourceIdentifier() string {
	return sanitizeFileName(s.DisplayName())
}

// sanitizeFileName replaces characters that are invalid in file names.
//
// Only < > : " / \ | ? * are replaced (with underscore); surrounding
// whitespace is trimmed. Anything else, including non-ASCII text, is kept as is.
func sanitizeFileName(name string) string {
	name = invalidFileChars.Replace(name)
	return strings.TrimSpace(name)
}

var invalidFileChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_",
	"/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
)
