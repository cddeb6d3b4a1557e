package audio

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/handiism/djassist/internal/classify"
	ioutils "github.com/handiism/djassist/internal/io"
	"github.com/handiism/djassist/internal/model"
)

// DefaultMinGroupSize is the smallest genre or energy group that gets a
// playlist.
const DefaultMinGroupSize = 2

// Emitter writes a playlist group to disk in several formats sharing the
// group's base name.
//
// Example:
//
//	e := audio.NewEmitter("mp3", audio.FormatPLS)
//	paths, err := e.Emit(group, "library/playlists")
//	// library/playlists/Playlist_House.m3u, .json, .md and .pls
type Emitter struct {
	formats  []PlaylistFormat
	audioDir string

	// Now returns the creation timestamp written into playlists.
	Now func() time.Time
}

// NewEmitter creates an Emitter writing DefaultFormats plus extra formats.
// audioDir is used for placeholder audio paths.
func NewEmitter(audioDir string, extra ...PlaylistFormat) *Emitter {
	formats := slices.Clone(DefaultFormats)
	for _, f := range extra {
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	return &Emitter{formats: formats, audioDir: audioDir, Now: time.Now}
}

// Formats returns the formats written by Emit, in order.
func (e *Emitter) Formats() []PlaylistFormat {
	return slices.Clone(e.formats)
}

// Emit writes one file per format into dir and returns their paths. Files
// of the same name are overwritten.
func (e *Emitter) Emit(group *model.PlaylistGroup, dir string) ([]string, error) {
	if err := ioutils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create playlist directory: %w", err)
	}

	created := e.Now()
	paths := make([]string, 0, len(e.formats))
	for _, f := range e.formats {
		data, err := NewPlaylistCreator(f, e.audioDir).CreatePlaylist(group, created)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, group.Name+f.Ext())
		if err := ioutils.WriteFile(path, data); err != nil {
			return paths, fmt.Errorf("write playlist %s: %w", filepath.Base(path), err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Planner decides which playlists to materialize.
type Planner struct {
	// MinGroupSize drops genre and energy groups smaller than this.
	MinGroupSize int
}

// NewPlanner creates a Planner with DefaultMinGroupSize.
func NewPlanner() *Planner {
	return &Planner{MinGroupSize: DefaultMinGroupSize}
}

// Plan returns the genre playlists, then the energy playlists, that reach
// MinGroupSize, followed by the complete playlist. The complete playlist is
// always present and sorted by artist, then title.
//
// Tier and complete playlist names are reserved. A genre playlist whose name
// is reserved or already used by an earlier genre, ignoring case, gets a
// _01, _02, ... suffix.
func (p *Planner) Plan(songs []*model.Song) []*model.PlaylistGroup {
	taken := map[string]struct{}{strings.ToLower(model.CompletePlaylistName): {}}
	for _, t := range model.Tiers {
		taken[strings.ToLower(t.PlaylistName())] = struct{}{}
	}

	var groups []*model.PlaylistGroup
	for _, g := range classify.ByGenre(songs) {
		if g.Len() >= p.MinGroupSize {
			g.Name = claimName(taken, g.Name)
			groups = append(groups, g)
		}
	}
	for _, g := range classify.ByEnergy(songs) {
		if g.Len() >= p.MinGroupSize {
			groups = append(groups, g)
		}
	}
	return append(groups, Complete(songs))
}

func claimName(taken map[string]struct{}, base string) string {
	name := base
	for i := 1; ; i++ {
		if _, ok := taken[strings.ToLower(name)]; !ok {
			taken[strings.ToLower(name)] = struct{}{}
			return name
		}
		name = fmt.Sprintf("%s_%02d", base, i)
	}
}

// Complete returns the group holding every song, sorted by artist, then
// title.
func Complete(songs []*model.Song) *model.PlaylistGroup {
	all := slices.Clone(songs)
	slices.SortStableFunc(all, func(a, b *model.Song) int {
		return cmp.Or(cmp.Compare(a.Artist, b.Artist), cmp.Compare(a.Title, b.Title))
	})
	return &model.PlaylistGroup{
		Key:   "complete",
		Name:  model.CompletePlaylistName,
		Songs: all,
	}
}
