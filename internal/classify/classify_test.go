package classify_test

import (
	"strings"
	"testing"
	"time"

	"github.com/handiism/djassist/internal/classify"
	"github.com/handiism/djassist/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mk(title string, bpm, energy *int, genres ...string) *model.Song {
	return &model.Song{Title: title, Artist: "A", BPM: bpm, Energy: energy, Genres: genres, Key: "A"}
}

func titles(g *model.PlaylistGroup) []string {
	out := make([]string, 0, g.Len())
	for _, s := range g.Songs {
		out = append(out, s.Title)
	}
	return out
}

func keys(groups []*model.PlaylistGroup) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Key)
	}
	return out
}

var p = model.IntPtr

func TestByGenre_MultiMembership(t *testing.T) {
	song := mk("Both", p(120), p(5), "Rock", "Pop")
	genres := classify.ByGenre([]*model.Song{song})

	require.Equal(t, []string{"Pop", "Rock"}, keys(genres))
	for _, g := range genres {
		assert.Equal(t, []string{"Both"}, titles(g))
	}
	assert.Len(t, classify.ByEnergy([]*model.Song{song}), 1)
}

func TestByGenre_Order(t *testing.T) {
	songs := []*model.Song{
		mk("fast", p(128), p(5), "House"),
		mk("unknown bpm", nil, p(9), "House"),
		mk("slow", p(100), p(5), "House"),
		mk("same bpm low energy", p(120), p(2), "House"),
		mk("disco", p(118), p(6), "Disco"),
	}

	genres := classify.ByGenre(songs)
	require.Equal(t, []string{"Disco", "House"}, keys(genres))
	assert.Equal(t, "Playlist_House", genres[1].Name)
	assert.Equal(t,
		[]string{"slow", "same bpm low energy", "unknown bpm", "fast"},
		titles(genres[1]))
}

func TestByEnergy(t *testing.T) {
	songs := []*model.Song{
		mk("e3", p(120), p(3), "Pop"),
		mk("e4", p(120), p(4), "Pop"),
		mk("e6", p(120), p(6), "Jazz"),
		mk("e7", p(120), p(7), "Pop"),
		mk("none", p(120), nil, "Pop"),
		mk("e5 disco", p(130), p(5), "Disco"),
		mk("e5 disco slow", p(90), p(5), "Disco"),
		mk("e2 no genre", p(100), p(2)),
	}

	tiers := classify.ByEnergy(songs)
	require.Equal(t, []string{"Low", "Medium", "High", "Unknown"}, keys(tiers))

	assert.Equal(t, []string{"e2 no genre", "e3"}, titles(tiers[0]))
	assert.Equal(t, []string{"e5 disco slow", "e5 disco", "e6", "e4"}, titles(tiers[1]))
	assert.Equal(t, []string{"e7"}, titles(tiers[2]))
	assert.Equal(t, []string{"none"}, titles(tiers[3]))
	assert.Equal(t, "Playlist_Unknown_Energy", tiers[3].Name)

	total := 0
	for _, g := range tiers {
		total += g.Len()
	}
	assert.Equal(t, len(songs), total)
}

func TestByEnergy_SkipsEmptyTiers(t *testing.T) {
	tiers := classify.ByEnergy([]*model.Song{mk("x", p(120), p(9), "Pop")})
	assert.Equal(t, []string{"High"}, keys(tiers))
	assert.Nil(t, classify.Tier(tiers, model.TierLow))
}

func TestRenderSetReport(t *testing.T) {
	songs := []*model.Song{
		mk("Chill", p(90), p(2), "House"),
		mk("Groove", p(120), p(5), "House"),
		mk("Peak", p(128), p(9), "House"),
		mk("Solo", nil, nil, "Jazz"),
	}
	songs[0].SourcePath = "/lib/chansons/A - Chill.md"

	doc := classify.RenderSetReport(songs, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	assert.Contains(t, doc, "# Classified DJ Set - Generated on 2024-03-01 10:00:00")
	assert.Contains(t, doc, "Total songs: 4\nGenres found: 2\n")
	assert.Contains(t, doc, "### House (3 songs)")
	assert.Contains(t, doc, "  - BPM: N/A | Key: A | Energy: N/A\n")
	assert.Contains(t, doc, "  - File: `A - Chill.md`\n")
	assert.Contains(t, doc, "### Unknown (n/a) (1 songs)")
	assert.Contains(t, doc, "**Warm-up (low energy):**\n- A - Chill\n")
	assert.Contains(t, doc, "**House set:**\n- A - Chill\n- A - Groove\n- A - Peak\n")
	assert.False(t, strings.Contains(doc, "**Jazz set:**"))
}
