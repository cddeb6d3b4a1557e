package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/handiism/djassist/internal/audio"
	"github.com/handiism/djassist/internal/batch"
	"github.com/handiism/djassist/internal/card"
	"github.com/handiism/djassist/internal/classify"
	"github.com/handiism/djassist/internal/config"
	"github.com/handiism/djassist/internal/index"
	ioutils "github.com/handiism/djassist/internal/io"
	"github.com/handiism/djassist/internal/library"
	"github.com/handiism/djassist/internal/lineparse"
	"github.com/handiism/djassist/internal/model"
	"github.com/handiism/djassist/internal/youtube"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

func (l ProgressLevel) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "info"
	}
}

// ProgressEvent represents a stage progress update.
type ProgressEvent struct {
	Stage   string
	Message string
	Level   ProgressLevel
}

// Stage names carried by progress events and wrapped errors.
const (
	StageGenerate  = "generate"
	StageExtract   = "extract"
	StageClassify  = "classify"
	StagePlaylists = "playlists"
	StageYouTube   = "youtube"
	StageTag       = "tag"
	StageIndex     = "index"
)

// LockFile is created in the library root while a stage runs.
const LockFile = ".djassist.lock"

// ErrLocked is returned when another run holds the library lock.
var ErrLocked = errors.New("library is locked by another djassist run")

// Manager runs the pipeline stages against one library root.
//
// Each public stage takes an exclusive file lock on the root for its
// duration. Per-record problems are reported as LevelWarning events and
// skipped; the returned error is reserved for failures that stop the stage.
type Manager struct {
	settings *config.Settings
	paths    config.Paths

	// Now stamps generated cards, batch documents and playlists.
	Now func() time.Time

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewManager creates a new Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	return &Manager{
		settings:   settings,
		paths:      settings.Resolved(),
		Now:        time.Now,
		onProgress: onProgress,
	}
}

// Paths returns the resolved library paths.
func (m *Manager) Paths() config.Paths {
	return m.paths
}

// Generate parses the song list and writes the batch document. It returns
// the number of songs written.
func (m *Manager) Generate(ctx context.Context) (int, error) {
	var n int
	err := m.withLock(func() (err error) {
		n, err = m.generate(ctx)
		return err
	})
	return n, err
}

// Extract splits the batch document into card files and returns their paths.
func (m *Manager) Extract(ctx context.Context) ([]string, error) {
	var paths []string
	err := m.withLock(func() (err error) {
		paths, err = m.extract(ctx)
		return err
	})
	return paths, err
}

// Classify reads every card and writes the classified set report. It
// returns the songs read.
func (m *Manager) Classify(ctx context.Context) ([]*model.Song, error) {
	var songs []*model.Song
	err := m.withLock(func() (err error) {
		songs, err = m.classify(ctx)
		return err
	})
	return songs, err
}

// Playlists reads every card and writes the playlists. It returns the
// written file paths.
func (m *Manager) Playlists(ctx context.Context) ([]string, error) {
	var paths []string
	err := m.withLock(func() (err error) {
		paths, err = m.playlists(ctx)
		return err
	})
	return paths, err
}

// ImportYouTube writes one card per video listed by src for target and
// returns the card paths.
func (m *Manager) ImportYouTube(ctx context.Context, src youtube.Source, target string) ([]string, error) {
	var paths []string
	err := m.withLock(func() (err error) {
		paths, err = m.importYouTube(ctx, src, target)
		return err
	})
	return paths, err
}

// Tag writes card metadata into the audio files of the library and returns
// the number of files tagged.
func (m *Manager) Tag(ctx context.Context) (int, error) {
	var n int
	err := m.withLock(func() (err error) {
		n, err = m.tag(ctx)
		return err
	})
	return n, err
}

// Index stores every card in the library index and returns the number of
// indexed songs.
func (m *Manager) Index(ctx context.Context) (int64, error) {
	var n int64
	err := m.withLock(func() (err error) {
		n, err = m.index(ctx)
		return err
	})
	return n, err
}

// RunAll runs generate, extract, classify and playlists in order. The first
// failing stage stops the run.
func (m *Manager) RunAll(ctx context.Context) error {
	return m.withLock(func() error {
		if _, err := m.generate(ctx); err != nil {
			return err
		}
		if _, err := m.extract(ctx); err != nil {
			return err
		}
		if _, err := m.classify(ctx); err != nil {
			return err
		}
		if _, err := m.playlists(ctx); err != nil {
			return err
		}
		m.progress(ProgressEvent{Message: "Workflow complete", Level: LevelSuccess})
		return nil
	})
}

// NewYouTubeSource builds a yt-dlp source from the [youtube] settings.
// Failed per-video lookups are reported as warnings.
func (m *Manager) NewYouTubeSource() *youtube.ExecSource {
	yt := m.settings.YouTube
	src := youtube.NewExecSource(yt.Binary)
	src.Concurrency = yt.Concurrency
	src.MaxRetries = yt.MaxRetries
	src.RetryCooldown = yt.RetryCooldown
	src.RetryExponent = yt.RetryExponent
	src.OnLookupError = func(id string, err error) {
		m.warn(StageYouTube, fmt.Sprintf("Keeping flat data for %s: %v", id, err))
	}
	return src
}

func (m *Manager) generate(ctx context.Context) (int, error) {
	m.stage(StageGenerate, "Reading "+m.paths.InputList)

	now := m.Now()
	songs, err := lineparse.ParseFile(m.paths.InputList, now)
	if err != nil {
		return 0, err
	}
	if len(songs) == 0 {
		m.warn(StageGenerate, "No songs found in "+m.paths.InputList)
	}

	tmpl, err := card.LoadTemplate(m.paths.Template)
	if err != nil {
		return 0, err
	}

	cards := make([]string, 0, len(songs))
	for _, song := range songs {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		cards = append(cards, tmpl.Render(song, card.DefaultNotes()))
		m.verbose(StageGenerate, "Card: "+song.DisplayName())
	}

	doc := batch.Assemble(cards, now)
	if err := ioutils.EnsureDir(filepath.Dir(m.paths.BatchFile)); err != nil {
		return 0, err
	}
	if err := ioutils.WriteFile(m.paths.BatchFile, []byte(doc)); err != nil {
		return 0, fmt.Errorf("write batch document: %w", err)
	}

	m.success(StageGenerate, fmt.Sprintf("Wrote %d songs to %s", len(songs), m.paths.BatchFile))
	return len(songs), nil
}

func (m *Manager) extract(ctx context.Context) ([]string, error) {
	m.stage(StageExtract, "Reading "+m.paths.BatchFile)

	ex := batch.NewExtractor()
	ex.OnSkip = func(seg batch.Segment, err error) {
		m.warn(StageExtract, fmt.Sprintf("Skipping card %d: %v", seg.Index, err))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	paths, err := ex.ExtractFile(m.paths.BatchFile, m.paths.CardsDir)
	if err != nil {
		return paths, err
	}

	m.success(StageExtract, fmt.Sprintf("Extracted %d cards to %s", len(paths), m.paths.CardsDir))
	return paths, nil
}

func (m *Manager) classify(ctx context.Context) ([]*model.Song, error) {
	songs, err := m.scan(ctx, StageClassify)
	if err != nil {
		return nil, err
	}

	report := classify.RenderSetReport(songs, m.Now())
	if err := ioutils.EnsureDir(filepath.Dir(m.paths.SetReport)); err != nil {
		return nil, err
	}
	if err := ioutils.WriteFile(m.paths.SetReport, []byte(report)); err != nil {
		return nil, err
	}

	m.success(StageClassify, fmt.Sprintf("Classified %d songs into %s", len(songs), m.paths.SetReport))
	return songs, nil
}

func (m *Manager) playlists(ctx context.Context) ([]string, error) {
	songs, err := m.scan(ctx, StagePlaylists)
	if err != nil {
		return nil, err
	}

	planner := &audio.Planner{MinGroupSize: m.settings.Playlists.MinGroupSize}
	emitter := audio.NewEmitter(filepath.ToSlash(m.settings.Paths.AudioDir), m.settings.PlaylistFormats()...)
	emitter.Now = m.Now

	var written []string
	groups := planner.Plan(songs)
	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		paths, err := emitter.Emit(group, m.paths.PlaylistsDir)
		written = append(written, paths...)
		if err != nil {
			return written, err
		}
		m.verbose(StagePlaylists, fmt.Sprintf("%s: %d tracks", group.Name, group.Len()))
	}

	m.success(StagePlaylists, fmt.Sprintf("Wrote %d playlists (%d files) to %s", len(groups), len(written), m.paths.PlaylistsDir))
	return written, nil
}

func (m *Manager) importYouTube(ctx context.Context, src youtube.Source, target string) ([]string, error) {
	m.stage(StageYouTube, "Listing "+target)

	videos, err := src.Videos(ctx, target)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, model.Wrap(model.ErrInputMissing, StageYouTube, "no videos found for "+target, nil)
	}

	tmpl := card.DefaultTemplate()
	if ioutils.FileExists(m.paths.Template) {
		if tmpl, err = card.LoadTemplate(m.paths.Template); err != nil {
			return nil, err
		}
	}
	if err := ioutils.EnsureDir(m.paths.CardsDir); err != nil {
		return nil, err
	}

	now := m.Now()
	namer := ioutils.NewNamer()
	var paths []string
	for _, v := range videos {
		if err := ctx.Err(); err != nil {
			return paths, err
		}

		song := youtube.ToSong(v, now)
		name, err := namer.Claim(m.paths.CardsDir, song.SourceIdentifier(), library.CardExt)
		if err != nil {
			m.warn(StageYouTube, fmt.Sprintf("Skipping %q: %v", v.Title, err))
			continue
		}
		path := filepath.Join(m.paths.CardsDir, name)
		if err := ioutils.WriteFile(path, []byte(tmpl.Render(song, card.YouTubeNotes(v.Title)))); err != nil {
			return paths, err
		}
		paths = append(paths, path)
		m.verbose(StageYouTube, "Card: "+name)
	}

	m.success(StageYouTube, fmt.Sprintf("Imported %d videos into %s", len(paths), m.paths.CardsDir))
	return paths, nil
}

func (m *Manager) tag(ctx context.Context) (int, error) {
	tagCfg, err := m.settings.TagConfig()
	if err != nil {
		return 0, model.Wrap(model.ErrConfiguration, StageTag, "tagging.actions", err)
	}
	if !tagCfg.ModifyTags {
		m.stage(StageTag, "Tagging is disabled")
		return 0, nil
	}

	songs, err := m.scan(ctx, StageTag)
	if err != nil {
		return 0, err
	}

	tagger := audio.NewTagger(tagCfg)
	tagged := 0
	for _, song := range songs {
		if err := ctx.Err(); err != nil {
			return tagged, err
		}
		path := m.audioPath(song)
		if !ioutils.FileExists(path) {
			m.warn(StageTag, "Audio file not found: "+path)
			continue
		}
		if err := tagger.SaveTags(song, path); err != nil {
			m.warn(StageTag, fmt.Sprintf("Error tagging %s: %v", filepath.Base(path), err))
			continue
		}
		tagged++
		m.verbose(StageTag, "Tagged: "+filepath.Base(path))
	}

	m.success(StageTag, fmt.Sprintf("Tagged %d of %d songs", tagged, len(songs)))
	return tagged, nil
}

func (m *Manager) index(ctx context.Context) (int64, error) {
	songs, err := m.scan(ctx, StageIndex)
	if err != nil {
		return 0, err
	}

	if err := ioutils.EnsureDir(filepath.Dir(m.paths.IndexDB)); err != nil {
		return 0, err
	}
	db, err := index.Open(m.paths.IndexDB)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if err := db.Upsert(songs); err != nil {
		return 0, err
	}
	n, err := db.Count()
	if err != nil {
		return 0, err
	}

	m.success(StageIndex, fmt.Sprintf("Indexed %d songs (%d total) in %s", len(songs), n, m.paths.IndexDB))
	return n, nil
}

// scan reads the card library, reporting unreadable cards as warnings.
func (m *Manager) scan(ctx context.Context, stage string) ([]*model.Song, error) {
	m.stage(stage, "Reading cards from "+m.paths.CardsDir)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return library.Scan(m.paths.CardsDir, func(path string, err error) {
		m.warn(stage, fmt.Sprintf("Skipping %s: %v", filepath.Base(path), err))
	})
}

// audioPath locates the audio file of a song: the card's fichier_mp3 link,
// relative to the root, or "<audio dir>/<source identifier>.mp3".
func (m *Manager) audioPath(song *model.Song) string {
	if song.AudioFile != "" {
		if filepath.IsAbs(song.AudioFile) {
			return song.AudioFile
		}
		return filepath.Join(m.paths.Root, filepath.FromSlash(song.AudioFile))
	}
	return filepath.Join(m.paths.AudioDir, song.SourceIdentifier()+".mp3")
}

func (m *Manager) withLock(fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.paths.Root, 0755); err != nil {
		return fmt.Errorf("create library root: %w", err)
	}
	lock := flock.New(filepath.Join(m.paths.Root, LockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock library: %w", err)
	}
	if !locked {
		return ErrLocked
	}
	defer lock.Unlock()

	return fn()
}

func (m *Manager) stage(stage, msg string) {
	m.progress(ProgressEvent{Stage: stage, Message: msg, Level: LevelInfo})
}

func (m *Manager) verbose(stage, msg string) {
	m.progress(ProgressEvent{Stage: stage, Message: msg, Level: LevelVerbose})
}

func (m *Manager) warn(stage, msg string) {
	m.progress(ProgressEvent{Stage: stage, Message: msg, Level: LevelWarning})
}

func (m *Manager) success(stage, msg string) {
	m.progress(ProgressEvent{Stage: stage, Message: msg, Level: LevelSuccess})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
