package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/djassist/internal/audio"
	"github.com/handiism/djassist/internal/model"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the settings file looked up in the library root.
const FileName = "djassist.toml"

// Paths locates every input and output of the pipeline. Relative paths are
// resolved against the library root.
type Paths struct {
	Root         string `toml:"root"`
	InputList    string `toml:"input_list"`
	Template     string `toml:"template"`
	BatchFile    string `toml:"batch_file"`
	CardsDir     string `toml:"cards_dir"`
	SetReport    string `toml:"set_report"`
	PlaylistsDir string `toml:"playlists_dir"`
	AudioDir     string `toml:"audio_dir"`
	IndexDB      string `toml:"index_db"`
}

// Playlists controls playlist emission.
type Playlists struct {
	// MinGroupSize is the smallest genre or energy group that gets a playlist.
	MinGroupSize int `toml:"min_group_size"`

	// ExtraFormats are written next to m3u, json and md (pls, wpl, zpl).
	ExtraFormats []string `toml:"extra_formats"`
}

// YouTube controls the yt-dlp collaborator.
type YouTube struct {
	Binary        string  `toml:"binary"`
	Concurrency   int     `toml:"concurrency"`
	MaxRetries    int     `toml:"max_retries"`
	RetryCooldown float64 `toml:"retry_cooldown"`
	RetryExponent float64 `toml:"retry_exponent"`
}

// Tagging controls ID3 tag writing. Actions maps a field (title, artist,
// genre, bpm, key, date, comments) to "modify", "empty" or "keep".
type Tagging struct {
	Enabled bool              `toml:"enabled"`
	Actions map[string]string `toml:"actions"`
}

// Logging controls log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Settings holds all configuration options.
type Settings struct {
	Paths     Paths     `toml:"paths"`
	Playlists Playlists `toml:"playlists"`
	YouTube   YouTube   `toml:"youtube"`
	Tagging   Tagging   `toml:"tagging"`
	Logging   Logging   `toml:"logging"`
}

// DefaultSettings returns settings with default values, laid out under the
// current directory.
func DefaultSettings() *Settings {
	return &Settings{
		Paths: Paths{
			Root:         ".",
			InputList:    filepath.Join("data", "input", "exemple_chansons.txt"),
			Template:     filepath.Join("templates", "chanson_template.md"),
			BatchFile:    filepath.Join("data", "output", "morceaux.md"),
			CardsDir:     filepath.Join("data", "output", "chansons"),
			SetReport:    filepath.Join("data", "output", "set_dj_classe.md"),
			PlaylistsDir: filepath.Join("data", "playlists"),
			AudioDir:     "mp3",
			IndexDB:      filepath.Join("data", "djassist.db"),
		},
		Playlists: Playlists{
			MinGroupSize: audio.DefaultMinGroupSize,
			ExtraFormats: []string{},
		},
		YouTube: YouTube{
			Binary:        "yt-dlp",
			Concurrency:   4,
			MaxRetries:    2,
			RetryCooldown: 0.5,
			RetryExponent: 2,
		},
		Tagging: Tagging{
			Enabled: true,
			Actions: map[string]string{
				"title":    "modify",
				"artist":   "modify",
				"genre":    "modify",
				"bpm":      "modify",
				"key":      "modify",
				"date":     "keep",
				"comments": "modify",
			},
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads settings from a TOML file. A missing file yields the defaults.
// Keys absent from the file keep their default values.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return nil, model.Wrap(model.ErrConfiguration, "config", "read "+path, err)
	}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(settings); err != nil {
		return nil, model.Wrap(model.ErrConfiguration, "config", "parse "+path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a TOML file, creating its directory.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate ensures the settings are usable.
func (s *Settings) Validate() error {
	invalid := func(format string, args ...any) error {
		return model.Wrap(model.ErrConfiguration, "config", "validate", fmt.Errorf(format, args...))
	}

	if strings.TrimSpace(s.Paths.Root) == "" {
		return invalid("paths.root must be set")
	}
	if s.Playlists.MinGroupSize < 1 {
		return invalid("playlists.min_group_size must be at least 1")
	}
	for _, f := range s.Playlists.ExtraFormats {
		if _, err := audio.ParseFormat(f); err != nil {
			return invalid("playlists.extra_formats: %w", err)
		}
	}
	if s.YouTube.Concurrency < 1 {
		return invalid("youtube.concurrency must be at least 1")
	}
	if s.YouTube.MaxRetries < 0 {
		return invalid("youtube.max_retries must not be negative")
	}
	if s.YouTube.RetryCooldown < 0 || s.YouTube.RetryExponent < 1 {
		return invalid("youtube.retry_cooldown must be >= 0 and youtube.retry_exponent >= 1")
	}
	if _, err := s.TagConfig(); err != nil {
		return invalid("tagging.actions: %w", err)
	}
	switch strings.ToLower(s.Logging.Format) {
	case "", "console", "json":
	default:
		return invalid("logging.format must be console or json, got %q", s.Logging.Format)
	}
	return nil
}

// WithRoot returns a copy of the settings whose root is replaced by root
// when root is not empty.
func (s *Settings) WithRoot(root string) *Settings {
	out := *s
	if root != "" {
		out.Paths.Root = root
	}
	return &out
}

// Resolved returns the paths with every relative entry joined to the root.
func (s *Settings) Resolved() Paths {
	root := s.Paths.Root
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}

	return Paths{
		Root:         root,
		InputList:    resolve(s.Paths.InputList),
		Template:     resolve(s.Paths.Template),
		BatchFile:    resolve(s.Paths.BatchFile),
		CardsDir:     resolve(s.Paths.CardsDir),
		SetReport:    resolve(s.Paths.SetReport),
		PlaylistsDir: resolve(s.Paths.PlaylistsDir),
		AudioDir:     resolve(s.Paths.AudioDir),
		IndexDB:      resolve(s.Paths.IndexDB),
	}
}

// PlaylistFormats converts the extra formats to audio formats. Invalid
// names are reported by Validate.
func (s *Settings) PlaylistFormats() []audio.PlaylistFormat {
	out := make([]audio.PlaylistFormat, 0, len(s.Playlists.ExtraFormats))
	for _, f := range s.Playlists.ExtraFormats {
		if pf, err := audio.ParseFormat(f); err == nil {
			out = append(out, pf)
		}
	}
	return out
}

// TagConfig converts the tagging section to an audio.TagConfig. Fields
// without an action keep the default.
func (s *Settings) TagConfig() (*audio.TagConfig, error) {
	cfg := audio.DefaultTagConfig()
	cfg.ModifyTags = s.Tagging.Enabled

	fields := map[string]*audio.TagEditAction{
		"title":    &cfg.Title,
		"artist":   &cfg.Artist,
		"genre":    &cfg.Genre,
		"bpm":      &cfg.BPM,
		"key":      &cfg.Key,
		"date":     &cfg.Date,
		"comments": &cfg.Comments,
	}
	for name, value := range s.Tagging.Actions {
		field, ok := fields[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown field %q", name)
		}
		action, err := audio.ParseTagEditAction(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		*field = action
	}
	return cfg, nil
}
