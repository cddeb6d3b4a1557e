// Package lineparse turns raw song hints ("Artist - Title") into songs.
package lineparse

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/handiism/djassist/internal/model"
)

const (
	dashDelimiter = " - "
	parDelimiter  = " par "
	commentPrefix = "#"
)

// Parse turns one line into a song skeleton.
//
// It returns false for blank lines and lines starting with "#". The line is
// split on the first " - " (artist, then title). Without it, the first " par "
// splits title, then artist. Otherwise the whole line is the title and the
// artist is "Unknown Artist". The song gets the creation defaults and today's
// date.
//
// Example:
//
//	song, ok := lineparse.Parse("Daft Punk - One More Time", time.Now())
//	// song.Artist == "Daft Punk", song.Title == "One More Time"
func Parse(line string, today time.Time) (*model.Song, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, commentPrefix) {
		return nil, false
	}

	var title, artist string
	if left, right, ok := strings.Cut(line, dashDelimiter); ok {
		artist, title = strings.TrimSpace(left), strings.TrimSpace(right)
	} else if left, right, ok := strings.Cut(line, parDelimiter); ok {
		title, artist = strings.TrimSpace(left), strings.TrimSpace(right)
	} else {
		title, artist = line, model.UnknownArtist
	}
	if artist == "" {
		artist = model.UnknownArtist
	}

	return &model.Song{
		Title:     title,
		Artist:    artist,
		BPM:       model.IntPtr(model.DefaultBPM),
		Key:       model.DefaultKey,
		Energy:    model.IntPtr(model.DefaultEnergy),
		Genres:    []string{model.DefaultGenre},
		Tags:      []string{model.NewTag},
		DateAdded: today.Format(time.DateOnly),
	}, true
}

// ParseFile reads a list file and parses every line.
//
// A missing file is ErrInputMissing. A file that is not valid UTF-8 is
// ErrEncoding.
func ParseFile(path string, today time.Time) ([]*model.Song, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, model.Wrap(model.ErrInputMissing, "lineparse", "read "+path, err)
	}
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, model.Wrap(model.ErrEncoding, "lineparse", path+" is not valid UTF-8", nil)
	}

	var songs []*model.Song
	scanner := bufio.NewScanner(bytes.NewReader(bytes.TrimPrefix(data, []byte("\ufeff"))))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if song, ok := Parse(scanner.Text(), today); ok {
			songs = append(songs, song)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return songs, nil
}
