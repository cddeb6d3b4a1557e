package youtube

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/handiism/djassist/internal/model"
	"github.com/handiism/djassist/internal/youtube/dto"
)

func TestParseTitle(t *testing.T) {
	tests := []struct {
		raw        string
		wantArtist string
		wantTitle  string
	}{
		{"Daft Punk - One More Time (Official Video)", "Daft Punk", "One More Time"},
		{"Stromae - Alors on danse [HD]", "Stromae", "Alors on danse"},
		{"Artist - Title (Remix) [4K]", "Artist", "Title"},
		{"Queen : Bohemian Rhapsody", "Queen", "Bohemian Rhapsody"},
		{"Nina Simone | Feeling Good", "Nina Simone", "Feeling Good"},
		{"Take Five by Dave Brubeck", "Dave Brubeck", "Take Five"},
		{"Take Five BY Dave Brubeck (Live)", "Dave Brubeck", "Take Five"},
		{"Baby Shark", model.UnknownArtist, "Baby Shark"},
		{"  Sandstorm  ", model.UnknownArtist, "Sandstorm"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			artist, title := ParseTitle(tt.raw)
			if artist != tt.wantArtist || title != tt.wantTitle {
				t.Errorf("ParseTitle() = (%q, %q), want (%q, %q)", artist, title, tt.wantArtist, tt.wantTitle)
			}
		})
	}
}

func TestGuessGenre(t *testing.T) {
	tests := []struct {
		title, description string
		want               string
	}{
		{"Boogie Wonderland", "", "Disco"},
		{"Funky house groove", "", "Disco"},
		{"Deep HOUSE mix", "", "Electronic"},
		{"Some track", "classic hip hop", "Hip-Hop"},
		{"Smooth operator", "", "R&B"},
		{"Untitled", "", "Pop"},
		{"Symphony No. 5", "", "Classical"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := GuessGenre(tt.title, tt.description); got != tt.want {
				t.Errorf("GuessGenre() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEstimateBPM(t *testing.T) {
	tests := []struct {
		duration float64
		want     int
	}{
		{0, 120},
		{179, 140},
		{180, 120},
		{300, 120},
		{301, 100},
	}
	for _, tt := range tests {
		if got := EstimateBPM(tt.duration); got != tt.want {
			t.Errorf("EstimateBPM(%v) = %d, want %d", tt.duration, got, tt.want)
		}
	}
}

func TestEstimateEnergy(t *testing.T) {
	tests := map[string]int{
		"Party Rock Anthem": 8,
		"Dance Monkey":      8,
		"Chill vibes":       3,
		"Slow Hands":        3,
		"Halo":              5,
	}
	for title, want := range tests {
		if got := EstimateEnergy(title); got != want {
			t.Errorf("EstimateEnergy(%q) = %d, want %d", title, got, want)
		}
	}
}

func TestToSong(t *testing.T) {
	today := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	v := dto.Video{
		ID:          "FGBhQbmPwH8",
		Title:       "Daft Punk - One More Time (Official Video)",
		Duration:    320,
		Description: "French house",
		UploadDate:  "20091002",
	}

	song := ToSong(v, today)
	if song.Artist != "Daft Punk" || song.Title != "One More Time" {
		t.Errorf("artist/title = %q/%q", song.Artist, song.Title)
	}
	if *song.BPM != 100 || *song.Energy != 5 {
		t.Errorf("bpm/energy = %d/%d, want 100/5", *song.BPM, *song.Energy)
	}
	if !reflect.DeepEqual(song.Genres, []string{"Electronic"}) {
		t.Errorf("Genres = %v", song.Genres)
	}
	if !reflect.DeepEqual(song.Tags, []string{"youtube", "extrait"}) {
		t.Errorf("Tags = %v", song.Tags)
	}
	if song.DateAdded != "2009-10-02" {
		t.Errorf("DateAdded = %q", song.DateAdded)
	}

	v.UploadDate = "not a date"
	if got := ToSong(v, today).DateAdded; got != "2024-03-01" {
		t.Errorf("DateAdded fallback = %q, want today", got)
	}
}

func TestDecodeLines(t *testing.T) {
	data := []byte(`{"id":"a","title":"First","duration":200}
not json

{"id":"b","title":"Second","upload_date":"20200101"}
`)
	videos := dto.DecodeLines(data)
	if len(videos) != 2 {
		t.Fatalf("len(videos) = %d, want 2", len(videos))
	}
	if videos[1].Title != "Second" || videos[0].Duration != 200 {
		t.Errorf("unexpected videos: %+v", videos)
	}
}

func TestExecSource_Videos(t *testing.T) {
	var mu sync.Mutex
	var calls [][]string

	src := NewExecSource("yt-dlp")
	src.RetryCooldown = 0
	src.run = func(_ context.Context, name string, args ...string) ([]byte, error) {
		mu.Lock()
		calls = append(calls, append([]string{name}, args...))
		mu.Unlock()

		target := args[len(args)-1]
		switch {
		case strings.Contains(args[len(args)-2], "--flat-playlist"):
			return []byte(`{"id":"a","title":"flat a"}
{"id":"b","title":"flat b"}
{"title":"no id"}
`), nil
		case strings.HasSuffix(target, "v=a"):
			return []byte(`{"id":"a","title":"Artist - Detailed A","duration":150,"description":"disco"}`), nil
		default:
			return nil, errors.New("video unavailable")
		}
	}

	var failed []string
	src.OnLookupError = func(id string, err error) { failed = append(failed, id) }

	videos, err := src.Videos(context.Background(), "https://www.youtube.com/playlist?list=x")
	if err != nil {
		t.Fatalf("Videos() error = %v", err)
	}
	if len(videos) != 3 {
		t.Fatalf("len(videos) = %d, want 3", len(videos))
	}
	if videos[0].Title != "Artist - Detailed A" || videos[0].Duration != 150 {
		t.Errorf("videos[0] not merged: %+v", videos[0])
	}
	if videos[1].Title != "flat b" {
		t.Errorf("videos[1] should keep flat data: %+v", videos[1])
	}
	if !reflect.DeepEqual(failed, []string{"b"}) {
		t.Errorf("failed lookups = %v, want [b]", failed)
	}

	first := calls[0]
	want := []string{"yt-dlp", "--no-download", "--dump-json", "--flat-playlist", "https://www.youtube.com/playlist?list=x"}
	if !reflect.DeepEqual(first, want) {
		t.Errorf("first call = %v, want %v", first, want)
	}
}

func TestExecSource_ListError(t *testing.T) {
	src := NewExecSource("")
	src.run = func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	}
	if _, err := src.Videos(context.Background(), "x"); err == nil {
		t.Error("expected error when listing fails")
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()

	_, err := FileSource{Path: filepath.Join(dir, "missing.jsonl")}.Videos(context.Background(), "")
	if !errors.Is(err, model.ErrInputMissing) {
		t.Errorf("error = %v, want ErrInputMissing", err)
	}

	path := filepath.Join(dir, "videos.jsonl")
	if err := os.WriteFile(path, []byte(`{"id":"a","title":"A - B"}`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	videos, err := FileSource{Path: path}.Videos(context.Background(), "")
	if err != nil || len(videos) != 1 {
		t.Fatalf("Videos() = %v, %v", videos, err)
	}
}
