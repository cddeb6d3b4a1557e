package card

import (
	"strconv"
	"strings"

	"github.com/handiism/djassist/internal/model"
)

// Card field names.
const (
	FieldTitle     = "titre"
	FieldArtist    = "artiste"
	FieldBPM       = "bpm"
	FieldKey       = "key"
	FieldGenre     = "genre"
	FieldEnergy    = "energie"
	FieldDateAdded = "date_ajout"
	FieldTags      = "tags"
	FieldAudioFile = "fichier_mp3"
)

var (
	scalarFields  = []string{FieldTitle, FieldArtist, FieldBPM, FieldKey, FieldEnergy, FieldDateAdded, FieldAudioFile}
	numericFields = map[string]bool{FieldBPM: true, FieldEnergy: true}
)

// Parse reads a card back into a Song.
//
// The text is scanned once, line by line. A scalar field is taken from the
// first line of the form "name: value"; later lines for the same field are
// ignored. bpm and energie only match when the value starts with an integer.
// A list field is a "name:" line followed by "- item" bullets; blank lines
// inside the block are allowed and the first other line closes it.
//
// Missing fields stay empty (or nil) except genres, which default to
// ["Non classé"], and tags, which default to an empty list.
//
// Example:
//
//	song := card.Parse("titre: Intro\nartiste: The xx\ngenre:\n  - Indie\n")
//	song.Genres // ["Indie"]
func Parse(text string) *model.Song {
	scalars := make(map[string]string, len(scalarFields))
	lists := make(map[string][]string, 2)

	var (
		block string
		items []string
	)
	closeBlock := func() {
		if block != "" && len(items) > 0 {
			if _, seen := lists[block]; !seen {
				lists[block] = items
			}
		}
		block, items = "", nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if block != "" {
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, "- ") {
				items = append(items, strings.TrimSpace(trimmed[2:]))
				continue
			}
			closeBlock()
		}

		if name, ok := listHeader(trimmed); ok {
			if _, seen := lists[name]; !seen {
				block = name
			}
			continue
		}

		for _, name := range scalarFields {
			if _, seen := scalars[name]; seen {
				continue
			}
			if value, ok := scalarValue(trimmed, name); ok {
				scalars[name] = value
				break
			}
		}
	}
	closeBlock()

	song := &model.Song{
		Title:     scalars[FieldTitle],
		Artist:    scalars[FieldArtist],
		Key:       scalars[FieldKey],
		DateAdded: scalars[FieldDateAdded],
		AudioFile: unwrapLink(scalars[FieldAudioFile]),
		Genres:    lists[FieldGenre],
		Tags:      lists[FieldTags],
	}
	if v, ok := scalars[FieldBPM]; ok {
		song.BPM = atoiPtr(v)
	}
	if v, ok := scalars[FieldEnergy]; ok {
		song.Energy = atoiPtr(v)
	}
	if song.Genres == nil {
		song.Genres = []string{model.UnclassifiedGenre}
	}
	if song.Tags == nil {
		song.Tags = []string{}
	}
	return song
}

// listHeader reports whether line is a bare "genre:" or "tags:" header.
func listHeader(line string) (string, bool) {
	for _, name := range []string{FieldGenre, FieldTags} {
		if rest, ok := strings.CutPrefix(line, name+":"); ok && strings.TrimSpace(rest) == "" {
			return name, true
		}
	}
	return "", false
}

// scalarValue returns the value of a "name: value" line. Numeric fields
// yield only their leading digits.
func scalarValue(line, name string) (string, bool) {
	rest, ok := strings.CutPrefix(line, name+":")
	if !ok {
		return "", false
	}
	value := strings.TrimSpace(rest)
	if value == "" {
		return "", false
	}
	if numericFields[name] {
		end := 0
		for end < len(value) && value[end] >= '0' && value[end] <= '9' {
			end++
		}
		if end == 0 {
			return "", false
		}
		value = value[:end]
	}
	return value, true
}

func atoiPtr(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// unwrapLink strips the [[...]] wiki-link wrapper from a path.
func unwrapLink(s string) string {
	if strings.HasPrefix(s, "[[") && strings.HasSuffix(s, "]]") {
		return strings.TrimSpace(s[2 : len(s)-2])
	}
	return s
}
