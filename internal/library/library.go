// Package library reads a directory of card files into songs.
package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/handiism/djassist/internal/card"
	"github.com/handiism/djassist/internal/model"
)

// CardExt is the extension of card files.
const CardExt = ".md"

// SkipFunc receives cards that were excluded from a scan. err wraps
// model.ErrParseSkipped.
type SkipFunc func(path string, err error)

// Scan parses every card file in dir, in file name order.
//
// A missing directory, or one without cards, is ErrInputMissing. A card that
// cannot be read or is not valid UTF-8 is reported to onSkip (which may be
// nil) and left out; it never fails the scan.
//
// Example:
//
//	songs, err := library.Scan("library/chansons", func(path string, err error) {
//		logger.Warn("card skipped", "path", path, "error", err)
//	})
func Scan(dir string, onSkip SkipFunc) ([]*model.Song, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, model.Wrap(model.ErrInputMissing, "scan", "card directory "+dir, err)
	}
	if err != nil {
		return nil, fmt.Errorf("read card directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), CardExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, model.Wrap(model.ErrInputMissing, "scan", "no cards found in "+dir, nil)
	}
	sort.Strings(paths)

	songs := make([]*model.Song, 0, len(paths))
	for _, path := range paths {
		song, err := ReadCard(path)
		if err != nil {
			if onSkip != nil {
				onSkip(path, err)
			}
			continue
		}
		songs = append(songs, song)
	}
	return songs, nil
}

// ReadCard parses a single card file. Any failure wraps ErrParseSkipped.
func ReadCard(path string) (*model.Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.Wrap(model.ErrParseSkipped, "scan", "read "+filepath.Base(path), err)
	}
	if !utf8.Valid(data) {
		return nil, model.Wrap(model.ErrParseSkipped, "scan", filepath.Base(path), model.ErrEncoding)
	}
	song := card.Parse(string(data))
	song.SourcePath = path
	return song, nil
}
