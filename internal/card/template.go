package card

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/handiism/djassist/internal/model"
)

//go:embed chanson_template.md
var defaultTemplateText string

// Slots recognized by the card template. Any other {name} in a template is
// a configuration error.
var Slots = []string{
	"titre", "artiste", "bpm", "key", "genre_list", "energie", "date_ajout",
	"tags_list", "filename", "notes_personnelles", "idees_mix", "liens",
	"notes_personnelles_detaillees", "idees_mix_detaillees",
}

// Notes holds the free-text placeholder values of a card.
type Notes struct {
	// Personal fills the "notes_personnelles" bullet slot.
	Personal string

	// MixIdeas fills the "idees_mix" bullet slot.
	MixIdeas string

	// Links fills the "liens" bullet slot.
	Links string

	// PersonalDetail fills the "notes_personnelles_detaillees" section.
	PersonalDetail string

	// MixIdeasDetail fills the "idees_mix_detaillees" section.
	MixIdeasDetail string
}

// DefaultNotes returns the placeholders written for songs created from a list.
func DefaultNotes() Notes {
	return Notes{
		Personal:       "  - À compléter...",
		MixIdeas:       "  - À définir...",
		Links:          "  - À ajouter...",
		PersonalDetail: "À compléter selon vos impressions...",
		MixIdeasDetail: "À définir selon vos expériences de mix...",
	}
}

// YouTubeNotes returns the placeholders written for songs imported from a
// video. videoTitle is the raw video title.
func YouTubeNotes(videoTitle string) Notes {
	return Notes{
		Personal:       "  - Extrait depuis YouTube",
		MixIdeas:       "  - À définir après écoute",
		Links:          "  - À ajouter après analyse",
		PersonalDetail: "Extrait depuis YouTube: " + videoTitle,
		MixIdeasDetail: "À définir après écoute et analyse du BPM/clé",
	}
}

// Template is a parsed card template.
//
// Slots are written {name}. {{ and }} produce literal braces. A Template is
// immutable and safe for concurrent use.
type Template struct {
	parts []part
}

// part is either literal text or a slot reference.
type part struct {
	text string
	slot string
}

// LoadTemplate reads and parses the template at path. A missing or
// unreadable file is a configuration error.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.Wrap(model.ErrConfiguration, "card", "load template "+path, err)
	}
	return ParseTemplate(string(data))
}

// DefaultTemplate returns the built-in template.
func DefaultTemplate() *Template {
	tmpl, err := ParseTemplate(defaultTemplateText)
	if err != nil {
		panic(fmt.Sprintf("card: built-in template: %v", err))
	}
	return tmpl
}

// ParseTemplate parses template text.
//
// Example:
//
//	tmpl, err := card.ParseTemplate("titre: {titre}\nartiste: {artiste}\n")
func ParseTemplate(text string) (*Template, error) {
	known := make(map[string]bool, len(Slots))
	for _, s := range Slots {
		known[s] = true
	}

	var (
		parts []part
		lit   strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, part{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '{' && i+1 < len(text) && text[i+1] == '{':
			lit.WriteByte('{')
			i++
		case c == '}' && i+1 < len(text) && text[i+1] == '}':
			lit.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(text[i+1:], '}')
			if end < 0 {
				return nil, model.Wrap(model.ErrConfiguration, "card", "parse template",
					errors.New("unclosed '{'"))
			}
			name := text[i+1 : i+1+end]
			if !known[name] {
				return nil, model.Wrap(model.ErrConfiguration, "card", "parse template",
					fmt.Errorf("unknown slot %q", name))
			}
			flush()
			parts = append(parts, part{slot: name})
			i += end + 1
		default:
			lit.WriteByte(c)
		}
	}
	flush()

	return &Template{parts: parts}, nil
}

// Render fills the template with song fields and notes.
//
// List fields are rendered as "  - item" lines. The filename slot receives
// the song's source identifier. Unknown numeric fields render empty.
func (t *Template) Render(song *model.Song, notes Notes) string {
	values := map[string]string{
		"titre":                         song.Title,
		"artiste":                       song.Artist,
		"bpm":                           formatInt(song.BPM),
		"key":                           song.Key,
		"genre_list":                    bulletList(song.Genres),
		"energie":                       formatInt(song.Energy),
		"date_ajout":                    song.DateAdded,
		"tags_list":                     bulletList(song.Tags),
		"filename":                      song.SourceIdentifier(),
		"notes_personnelles":            notes.Personal,
		"idees_mix":                     notes.MixIdeas,
		"liens":                         notes.Links,
		"notes_personnelles_detaillees": notes.PersonalDetail,
		"idees_mix_detaillees":          notes.MixIdeasDetail,
	}

	var b strings.Builder
	for _, p := range t.parts {
		if p.slot == "" {
			b.WriteString(p.text)
			continue
		}
		b.WriteString(values[p.slot])
	}
	return b.String()
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "  - " + item
	}
	return strings.Join(lines, "\n")
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
