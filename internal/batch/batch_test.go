package batch_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/handiism/djassist/internal/batch"
	"github.com/handiism/djassist/internal/card"
	"github.com/handiism/djassist/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func song(artist, title string) *model.Song {
	return &model.Song{
		Title: title, Artist: artist,
		BPM: model.IntPtr(120), Key: "A", Energy: model.IntPtr(5),
		Genres: []string{"Pop"}, Tags: []string{"nouveau"}, DateAdded: "2024-03-01",
	}
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestAssemble(t *testing.T) {
	doc := batch.Assemble([]string{"card one", "card two"}, now)

	assert.True(t, strings.HasPrefix(doc, "# DJ Tracks - Generated on 2024-03-01 10:00:00\n\nTotal processed: 2\n\n"))
	assert.Equal(t, 3, strings.Count(doc, batch.Separator))
	assert.True(t, strings.HasSuffix(doc, "card two\n\n"+batch.Separator+"\n\n"))
}

func TestSplit(t *testing.T) {
	tmpl := card.DefaultTemplate()
	doc := batch.Assemble([]string{
		tmpl.Render(song("Daft Punk", "One More Time"), card.DefaultNotes()),
		tmpl.Render(song("Stromae", "Alors on danse"), card.DefaultNotes()),
	}, now)

	segments := batch.Split(doc)
	require.Len(t, segments, 2)
	assert.Equal(t, 1, segments[0].Index)
	assert.Equal(t, 2, segments[1].Index)
	assert.True(t, strings.HasPrefix(segments[0].Text, "titre: One More Time"))
}

func TestSplit_LegacyBanner(t *testing.T) {
	sep := batch.Separator
	doc := "# Morceaux DJ - Généré le 2023-01-01 00:00:00\n\nTotal des morceaux traités: 1\n\n" +
		sep + "\n\ntitre: Intro\nartiste: The xx\n\n" + sep + "\n\n"

	segments := batch.Split(doc)
	require.Len(t, segments, 1)
	assert.Equal(t, "titre: Intro\nartiste: The xx", segments[0].Text)
}

func TestSplit_NoBanner(t *testing.T) {
	sep := batch.Separator
	doc := "titre: A\n" + sep + "\n   \n" + sep + "titre: B"

	segments := batch.Split(doc)
	require.Len(t, segments, 2)
	assert.Equal(t, 1, segments[0].Index)
	assert.Equal(t, 3, segments[1].Index)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		seg  batch.Segment
		want string
	}{
		{"artist and title", batch.Segment{Index: 1, Text: "titre: Back In Black\nartiste: AC/DC"}, "AC_DC - Back In Black"},
		{"title only", batch.Segment{Index: 2, Text: "titre: Sandstorm"}, "Sandstorm"},
		{"artist only", batch.Segment{Index: 3, Text: "artiste: Nobody"}, "Nobody"},
		{"no fields", batch.Segment{Index: 12, Text: "just notes"}, "chanson_012"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, batch.FileName(tt.seg))
		})
	}
}

func TestExtract_BannerAndTwoCards(t *testing.T) {
	dir := t.TempDir()
	tmpl := card.DefaultTemplate()
	doc := batch.Assemble([]string{
		tmpl.Render(song("Daft Punk", "One More Time"), card.DefaultNotes()),
		tmpl.Render(song("Stromae", "Alors on danse"), card.DefaultNotes()),
	}, now)

	paths, err := batch.NewExtractor().Extract(doc, dir)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
	assert.ElementsMatch(t, []string{"Daft Punk - One More Time.md", "Stromae - Alors on danse.md"}, listFiles(t, dir))

	data, err := os.ReadFile(filepath.Join(dir, "Daft Punk - One More Time.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "titre: One More Time\n"))
	assert.False(t, strings.Contains(string(data), batch.Separator))
}

func TestExtract_Dedup(t *testing.T) {
	dir := t.TempDir()
	tmpl := card.DefaultTemplate()

	cards := make([]string, 4)
	for i := range cards {
		cards[i] = tmpl.Render(song(model.UnknownArtist, "Unknown Title"), card.DefaultNotes())
	}

	paths, err := batch.NewExtractor().Extract(batch.Assemble(cards, now), dir)
	require.NoError(t, err)
	assert.Len(t, paths, 4)
	assert.ElementsMatch(t, []string{
		"Unknown Artist - Unknown Title.md",
		"Unknown Artist - Unknown Title_01.md",
		"Unknown Artist - Unknown Title_02.md",
		"Unknown Artist - Unknown Title_03.md",
	}, listFiles(t, dir))
}

func TestExtractFile_Missing(t *testing.T) {
	_, err := batch.NewExtractor().ExtractFile(filepath.Join(t.TempDir(), "morceaux.md"), t.TempDir())
	assert.True(t, errors.Is(err, model.ErrInputMissing))
}
