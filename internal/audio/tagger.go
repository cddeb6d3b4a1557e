package audio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/handiism/djassist/internal/model"
)

// TagEditAction defines how to handle individual ID3 tags.
//
// Each tag field can be configured independently to determine whether
// it should be modified, cleared, or left unchanged.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value from the card.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// ParseTagEditAction maps "empty", "modify" or "keep" to a TagEditAction.
func ParseTagEditAction(s string) (TagEditAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empty":
		return TagEmpty, nil
	case "modify", "":
		return TagModify, nil
	case "keep":
		return TagDoNotModify, nil
	default:
		return 0, fmt.Errorf("unknown tag action %q", s)
	}
}

// CommentDescription identifies the COMM frame written by the tagger.
const CommentDescription = "djassist"

// TagConfig holds tagging configuration for each ID3 field.
//
// Example:
//
//	cfg := &TagConfig{
//	    ModifyTags: true,
//	    Title:      TagModify,
//	    Artist:     TagModify,
//	    Genre:      TagModify,
//	    BPM:        TagModify,
//	    Key:        TagModify,
//	    Date:       TagDoNotModify, // keep the release date already in the file
//	    Comments:   TagModify,      // energy and tags
//	}
type TagConfig struct {
	// ModifyTags is a master switch. If false, nothing is written.
	ModifyTags bool

	// Title controls the TIT2 (Title) frame.
	Title TagEditAction

	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// Genre controls the TCON (Content type) frame.
	Genre TagEditAction

	// BPM controls the TBPM (Beats per minute) frame.
	BPM TagEditAction

	// Key controls the TKEY (Initial key) frame.
	Key TagEditAction

	// Date controls the TDRC (Recording time) frame, filled with the date
	// the song was added.
	Date TagEditAction

	// Comments controls the djassist COMM frame holding energy and tags.
	Comments TagEditAction
}

// DefaultTagConfig returns the default tag configuration.
//
// Everything is written except the date, which usually already holds the
// release date.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags: true,
		Title:      TagModify,
		Artist:     TagModify,
		Genre:      TagModify,
		BPM:        TagModify,
		Key:        TagModify,
		Date:       TagDoNotModify,
		Comments:   TagModify,
	}
}

// Tagger writes card metadata into the ID3 tags of MP3 files.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	if err := tagger.SaveTags(song, "library/mp3/Daft Punk - One More Time.mp3"); err != nil {
//	    logger.Warn("tagging failed", "error", err)
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes the song's metadata to the MP3 file at path.
//
// Existing frames the configuration leaves alone are preserved. The file
// must exist.
func (t *Tagger) SaveTags(song *model.Song, path string) error {
	if !t.config.ModifyTags {
		return nil
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer tag.Close()

	t.updateTextFrames(tag, song)
	t.updateComment(tag, song)

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags %s: %w", path, err)
	}
	return nil
}

func (t *Tagger) updateTextFrames(tag *id3v2.Tag, song *model.Song) {
	frames := []struct {
		id     string
		action TagEditAction
		value  string
	}{
		{"TIT2", t.config.Title, song.Title},
		{"TPE1", t.config.Artist, song.Artist},
		{"TCON", t.config.Genre, strings.Join(song.Genres, ", ")},
		{"TBPM", t.config.BPM, intString(song.BPM)},
		{"TKEY", t.config.Key, song.Key},
		{"TDRC", t.config.Date, song.DateAdded},
	}

	for _, f := range frames {
		switch f.action {
		case TagEmpty:
			tag.DeleteFrames(f.id)
		case TagModify:
			// An empty card value leaves the frame as is.
			if f.value != "" {
				tag.DeleteFrames(f.id)
				tag.AddTextFrame(f.id, id3v2.EncodingUTF8, f.value)
			}
		}
	}
}

func (t *Tagger) updateComment(tag *id3v2.Tag, song *model.Song) {
	if t.config.Comments == TagDoNotModify {
		return
	}

	const commID = "COMM"
	kept := make([]id3v2.CommentFrame, 0)
	for _, f := range tag.GetFrames(commID) {
		if cf, ok := f.(id3v2.CommentFrame); ok && cf.Description != CommentDescription {
			kept = append(kept, cf)
		}
	}
	tag.DeleteFrames(commID)
	for _, cf := range kept {
		tag.AddCommentFrame(cf)
	}

	if t.config.Comments == TagEmpty {
		return
	}
	tag.AddCommentFrame(id3v2.CommentFrame{
		Encoding:    id3v2.EncodingUTF8,
		Language:    "eng",
		Description: CommentDescription,
		Text:        CommentText(song),
	})
}

// CommentText renders the energy and tags of a song for the COMM frame, e.g.
// "energy=8; tags=youtube, extrait".
func CommentText(song *model.Song) string {
	parts := make([]string, 0, 2)
	if song.Energy != nil {
		parts = append(parts, "energy="+strconv.Itoa(*song.Energy))
	}
	if len(song.Tags) > 0 {
		parts = append(parts, "tags="+strings.Join(song.Tags, ", "))
	}
	return strings.Join(parts, "; ")
}

func intString(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
