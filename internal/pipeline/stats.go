package pipeline

import (
	"errors"
	"fmt"
	"os"

	"github.com/handiism/djassist/internal/index"
	ioutils "github.com/handiism/djassist/internal/io"
	"github.com/handiism/djassist/internal/model"
)

// Stat describes one pipeline output.
type Stat struct {
	Name   string
	Path   string
	Exists bool
	IsDir  bool

	// Size is the file size in bytes. Zero for directories.
	Size int64

	// Files counts the regular files of a directory.
	Files int
}

// IndexStat reports the library index, when it exists.
type IndexStat struct {
	Exists bool
	Songs  int64
	Genres map[string]int64
}

// Stats reports the state of every pipeline output. Missing outputs are
// listed with Exists false. It does not take the library lock.
func (m *Manager) Stats() []Stat {
	outputs := []struct{ name, path string }{
		{"Batch document", m.paths.BatchFile},
		{"Set report", m.paths.SetReport},
		{"Cards", m.paths.CardsDir},
		{"Playlists", m.paths.PlaylistsDir},
	}

	stats := make([]Stat, 0, len(outputs))
	for _, o := range outputs {
		stats = append(stats, statPath(o.name, o.path))
	}
	return stats
}

// IndexStats opens the library index read side and reports its contents.
func (m *Manager) IndexStats() (IndexStat, error) {
	if !ioutils.FileExists(m.paths.IndexDB) {
		return IndexStat{}, nil
	}
	db, err := index.Open(m.paths.IndexDB)
	if err != nil {
		return IndexStat{}, err
	}
	defer db.Close()

	n, err := db.Count()
	if err != nil {
		return IndexStat{}, err
	}
	genres, err := db.Genres()
	if err != nil {
		return IndexStat{}, err
	}
	return IndexStat{Exists: true, Songs: n, Genres: genres}, nil
}

// IndexQuery selects songs from the library index. Exactly one of Genre and
// Tier is set.
type IndexQuery struct {
	Genre string
	Tier  string
}

// QueryIndex returns the indexed songs of a genre, ordered by BPM then
// energy, or of an energy tier, ordered by BPM. It does not take the
// library lock.
func (m *Manager) QueryIndex(q IndexQuery) ([]*model.Song, error) {
	if (q.Genre == "") == (q.Tier == "") {
		return nil, errors.New("index query needs exactly one of genre and tier")
	}
	if !ioutils.FileExists(m.paths.IndexDB) {
		return nil, model.Wrap(model.ErrInputMissing, StageIndex, "query index",
			fmt.Errorf("%s not found, run the index stage first", m.paths.IndexDB))
	}

	db, err := index.Open(m.paths.IndexDB)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if q.Genre != "" {
		return db.ByGenre(q.Genre)
	}
	tier, err := model.ParseTier(q.Tier)
	if err != nil {
		return nil, model.Wrap(model.ErrConfiguration, StageIndex, "query index", err)
	}
	return db.ByTier(tier)
}

func statPath(name, path string) Stat {
	s := Stat{Name: name, Path: path}
	info, err := os.Stat(path)
	if err != nil {
		return s
	}
	s.Exists = true
	if !info.IsDir() {
		s.Size = info.Size()
		return s
	}

	s.IsDir = true
	entries, err := os.ReadDir(path)
	if err != nil {
		return s
	}
	for _, e := range entries {
		if e.Type().IsRegular() {
			s.Files++
		}
	}
	return s
}
