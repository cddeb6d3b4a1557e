package youtube

import (
	"strings"

	"golang.org/x/text/cases"
)

// genreKeywords is searched in declaration order; the first genre with a
// matching keyword wins.
var genreKeywords = []struct {
	genre    string
	keywords []string
}{
	{"Disco", []string{"disco", "boogie", "funk", "groove"}},
	{"Pop", []string{"pop", "hit", "chart", "mainstream"}},
	{"Rock", []string{"rock", "metal", "guitar", "band"}},
	{"Electronic", []string{"electronic", "edm", "techno", "house", "trance", "dance"}},
	{"Hip-Hop", []string{"hip hop", "rap", "beats", "urban"}},
	{"R&B", []string{"r&b", "rnb", "soul", "smooth"}},
	{"Jazz", []string{"jazz", "swing", "blues"}},
	{"Classical", []string{"classical", "orchestra", "symphony"}},
	{"Reggae", []string{"reggae", "jamaica", "dub"}},
	{"Country", []string{"country", "folk", "acoustic"}},
}

// FallbackGenre is returned by GuessGenre when no keyword matches.
const FallbackGenre = "Pop"

// Estimates used for imported videos.
const (
	ShortBPM      = 140
	LongBPM       = 100
	DefaultBPM    = 120
	ShortDuration = 180
	LongDuration  = 300

	HighEnergy    = 8
	LowEnergy     = 3
	DefaultEnergy = 5
)

// fold lower-cases text for keyword matching.
func fold(s string) string {
	return cases.Fold().String(s)
}

// GuessGenre guesses a genre from keywords in the title and description.
// Keywords match anywhere, including inside words.
func GuessGenre(title, description string) string {
	content := fold(title + " " + description)
	for _, entry := range genreKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(content, kw) {
				return entry.genre
			}
		}
	}
	return FallbackGenre
}

// EstimateBPM derives a rough tempo from the video duration in seconds:
// short videos are 140, long ones 100, everything else (including an unknown
// duration) 120.
func EstimateBPM(duration float64) int {
	switch {
	case duration <= 0:
		return DefaultBPM
	case duration < ShortDuration:
		return ShortBPM
	case duration > LongDuration:
		return LongBPM
	default:
		return DefaultBPM
	}
}

// EstimateEnergy derives an energy score from title keywords.
func EstimateEnergy(title string) int {
	t := fold(title)
	switch {
	case strings.Contains(t, "party") || strings.Contains(t, "dance"):
		return HighEnergy
	case strings.Contains(t, "chill") || strings.Contains(t, "slow"):
		return LowEnergy
	default:
		return DefaultEnergy
	}
}
