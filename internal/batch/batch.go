// Package batch assembles cards into a batch document and splits batch
// documents back into per-song card files.
package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/handiism/djassist/internal/card"
	ioutils "github.com/handiism/djassist/internal/io"
	"github.com/handiism/djassist/internal/model"
)

// Separator is the line that joins cards in a batch document.
var Separator = strings.Repeat("=", 50)

// Banner markers. The French ones are recognized for documents written by
// earlier versions.
var bannerMarkers = []string{
	"Generated on",
	"Total processed",
	"Généré le",
	"Total des morceaux traités",
}

// Assemble joins rendered cards into a batch document with a two-line banner.
//
// Example output:
//
//	# DJ Tracks - Generated on 2024-03-01 10:00:00
//
//	Total processed: 2
//
//	==================================================
//
//	<card 1>
//
//	==================================================
//	...
func Assemble(cards []string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# DJ Tracks - Generated on %s\n\n", now.Format(time.DateTime))
	fmt.Fprintf(&b, "Total processed: %d\n\n", len(cards))
	b.WriteString(Separator + "\n\n")
	for _, c := range cards {
		b.WriteString(c)
		b.WriteString("\n\n" + Separator + "\n\n")
	}
	return b.String()
}

// Segment is one card text cut out of a batch document.
type Segment struct {
	// Index is 1-based and counts every segment after the banner, including
	// blank ones, so positional names stay stable.
	Index int

	// Text is the trimmed segment.
	Text string
}

// Split cuts a batch document on Separator. The first segment is dropped when
// it holds the banner; blank segments are skipped.
func Split(doc string) []Segment {
	sections := strings.Split(doc, Separator)
	if len(sections) > 0 && isBanner(sections[0]) {
		sections = sections[1:]
	}

	segments := make([]Segment, 0, len(sections))
	for i, s := range sections {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		segments = append(segments, Segment{Index: i + 1, Text: s})
	}
	return segments
}

func isBanner(section string) bool {
	for _, m := range bannerMarkers {
		if strings.Contains(section, m) {
			return true
		}
	}
	return false
}

// FileName returns the base name (without extension) of the card file for a
// segment: "artist - title" when both fields are present, the single field
// when only one is present, and chanson_NNN otherwise.
func FileName(seg Segment) string {
	song := card.Parse(seg.Text)
	var name string
	switch {
	case song.Title != "" && song.Artist != "":
		name = song.Artist + " - " + song.Title
	case song.Title != "":
		name = song.Title
	case song.Artist != "":
		name = song.Artist
	}
	name = ioutils.SanitizeFileName(name)
	if name == "" {
		name = fmt.Sprintf("chanson_%03d", seg.Index)
	}
	return name
}

// Extractor writes each segment of a batch document to its own card file.
type Extractor struct {
	namer *ioutils.Namer

	// OnSkip, when set, is called for every segment that could not be
	// written under a unique name.
	OnSkip func(seg Segment, err error)
}

// NewExtractor creates an Extractor with a fresh Namer.
func NewExtractor() *Extractor {
	return &Extractor{namer: ioutils.NewNamer()}
}

// Extract splits doc and writes every card verbatim into dir. It returns the
// written paths in document order.
//
// Example:
//
//	paths, err := batch.NewExtractor().Extract(doc, "library/chansons")
func (e *Extractor) Extract(doc, dir string) ([]string, error) {
	if err := ioutils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create card directory: %w", err)
	}

	var paths []string
	for _, seg := range Split(doc) {
		name, err := e.namer.Claim(dir, FileName(seg), ".md")
		if err != nil {
			if e.OnSkip != nil {
				e.OnSkip(seg, err)
			}
			continue
		}
		path := filepath.Join(dir, name)
		if err := ioutils.WriteFile(path, []byte(seg.Text)); err != nil {
			return paths, fmt.Errorf("write card %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ExtractFile reads a batch document from disk and extracts it into dir.
// A missing document is ErrInputMissing; invalid UTF-8 is ErrEncoding.
func (e *Extractor) ExtractFile(path, dir string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, model.Wrap(model.ErrInputMissing, "extract", "read "+path, err)
	}
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, model.Wrap(model.ErrEncoding, "extract", path+" is not valid UTF-8", nil)
	}
	return e.Extract(string(data), dir)
}
