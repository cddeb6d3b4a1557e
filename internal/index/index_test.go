package index_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/djassist/internal/index"
	"github.com/handiism/djassist/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *index.DB {
	t.Helper()
	db, err := index.Open(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func titles(songs []*model.Song) []string {
	out := make([]string, len(songs))
	for i, s := range songs {
		out[i] = s.Title
	}
	return out
}

func TestUpsertAndQuery(t *testing.T) {
	db := openTestDB(t)

	songs := []*model.Song{
		{Title: "Fast", Artist: "A", BPM: model.IntPtr(128), Energy: model.IntPtr(8), Genres: []string{"House", "Disco"}, Tags: []string{"x", "y"}},
		{Title: "Slow", Artist: "B", BPM: model.IntPtr(100), Energy: model.IntPtr(7), Genres: []string{"House"}},
		{Title: "Unknown", Artist: "C", Genres: []string{"Jazz"}, Tags: []string{}},
	}
	require.NoError(t, db.Upsert(songs))

	n, err := db.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	house, err := db.ByGenre("House")
	require.NoError(t, err)
	assert.Equal(t, []string{"Slow", "Fast"}, titles(house))
	assert.Equal(t, []string{"House", "Disco"}, house[1].Genres)
	assert.Equal(t, []string{"x", "y"}, house[1].Tags)

	high, err := db.ByTier(model.TierHigh)
	require.NoError(t, err)
	assert.Equal(t, []string{"Slow", "Fast"}, titles(high))

	unknown, err := db.ByTier(model.TierUnknown)
	require.NoError(t, err)
	require.Len(t, unknown, 1)
	assert.Nil(t, unknown[0].Energy)

	genres, err := db.Genres()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"House": 2, "Disco": 1, "Jazz": 1}, genres)
}

func TestUpsertReplaces(t *testing.T) {
	db := openTestDB(t)

	song := &model.Song{Title: "Song", Artist: "A", Energy: model.IntPtr(2), Genres: []string{"Pop", "Rock"}}
	require.NoError(t, db.Upsert([]*model.Song{song}))

	song.Energy = model.IntPtr(9)
	song.Genres = []string{"Rock"}
	require.NoError(t, db.Upsert([]*model.Song{song}))

	n, err := db.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	pop, err := db.ByGenre("Pop")
	require.NoError(t, err)
	assert.Empty(t, pop)

	low, err := db.ByTier(model.TierLow)
	require.NoError(t, err)
	assert.Empty(t, low)

	high, err := db.ByTier(model.TierHigh)
	require.NoError(t, err)
	assert.Equal(t, []string{"Song"}, titles(high))
}

func TestUpsertKeysOnCardFile(t *testing.T) {
	db := openTestDB(t)

	first := &model.Song{Title: "Intro", Artist: "Unknown Artist", Genres: []string{"Ambient"}, SourcePath: "cards/Unknown Artist - Intro.md"}
	second := &model.Song{Title: "Intro", Artist: "Unknown Artist", Genres: []string{"Techno"}, SourcePath: "cards/Unknown Artist - Intro_01.md"}
	require.NoError(t, db.Upsert([]*model.Song{first, second}))

	n, err := db.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	genres, err := db.Genres()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Ambient": 1, "Techno": 1}, genres)

	techno, err := db.ByGenre("Techno")
	require.NoError(t, err)
	require.Len(t, techno, 1)
	assert.Equal(t, second.SourcePath, techno[0].SourcePath)
}

func TestCardID(t *testing.T) {
	assert.Equal(t, "Unknown Artist - Intro_01", index.CardID(&model.Song{Title: "Intro", Artist: "Unknown Artist", SourcePath: "/lib/cards/Unknown Artist - Intro_01.md"}))
	assert.Equal(t, "Daft Punk - One More Time", index.CardID(&model.Song{Title: "One More Time", Artist: "Daft Punk"}))
}

func TestOpen_NotADatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")
	require.NoError(t, os.WriteFile(path, []byte("this is not a sqlite database, just some plain text bytes"), 0644))

	db, err := index.Open(path)
	assert.Error(t, err)
	assert.Nil(t, db)
}
