package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/handiism/djassist/internal/model"
)

func TestTagger_SaveTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.mp3")
	if err := os.WriteFile(path, []byte("not really audio data"), 0644); err != nil {
		t.Fatal(err)
	}

	song := &model.Song{
		Title: "One More Time", Artist: "Daft Punk",
		BPM: model.IntPtr(123), Key: "8A", Energy: model.IntPtr(8),
		Genres: []string{"House", "Disco"}, Tags: []string{"youtube", "extrait"},
		DateAdded: "2024-03-01",
	}
	if err := NewTagger(nil).SaveTags(song, path); err != nil {
		t.Fatalf("SaveTags() error = %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer tag.Close()

	if got := tag.Title(); got != "One More Time" {
		t.Errorf("title = %q", got)
	}
	if got := tag.Artist(); got != "Daft Punk" {
		t.Errorf("artist = %q", got)
	}
	if got := tag.GetTextFrame("TBPM").Text; got != "123" {
		t.Errorf("TBPM = %q, want 123", got)
	}
	if got := tag.GetTextFrame("TKEY").Text; got != "8A" {
		t.Errorf("TKEY = %q, want 8A", got)
	}
	if got := tag.GetTextFrame("TDRC").Text; got != "" {
		t.Errorf("TDRC = %q, want untouched", got)
	}

	comments := tag.GetFrames("COMM")
	if len(comments) != 1 {
		t.Fatalf("got %d comment frames, want 1", len(comments))
	}
	cf, ok := comments[0].(id3v2.CommentFrame)
	if !ok {
		t.Fatalf("unexpected frame type %T", comments[0])
	}
	if cf.Text != "energy=8; tags=youtube, extrait" {
		t.Errorf("comment = %q", cf.Text)
	}
}

func TestTagger_Disabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.mp3")
	tagger := NewTagger(&TagConfig{ModifyTags: false})
	if err := tagger.SaveTags(&model.Song{}, path); err != nil {
		t.Errorf("SaveTags() with tagging disabled should be a no-op, got %v", err)
	}
}

func TestCommentText(t *testing.T) {
	tests := []struct {
		song *model.Song
		want string
	}{
		{&model.Song{Energy: model.IntPtr(3)}, "energy=3"},
		{&model.Song{Tags: []string{"a"}}, "tags=a"},
		{&model.Song{}, ""},
	}
	for _, tt := range tests {
		if got := CommentText(tt.song); got != tt.want {
			t.Errorf("CommentText() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseTagEditAction(t *testing.T) {
	for in, want := range map[string]TagEditAction{"empty": TagEmpty, "modify": TagModify, "keep": TagDoNotModify} {
		got, err := ParseTagEditAction(in)
		if err != nil || got != want {
			t.Errorf("ParseTagEditAction(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseTagEditAction("drop"); err == nil {
		t.Error("expected error for unknown action")
	}
}
