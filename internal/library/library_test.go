package library

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/djassist/internal/model"
)

func writeCard(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeCard(t, dir, "b.md", "titre: B\nartiste: Two\nenergie: 8\n")
	writeCard(t, dir, "a.md", "titre: A\nartiste: One\ngenre:\n  - House\n")
	writeCard(t, dir, "broken.md", "titre: Caf\xe9\n")
	writeCard(t, dir, "notes.txt", "titre: ignored\n")

	var skipped []string
	songs, err := Scan(dir, func(path string, err error) {
		if !errors.Is(err, model.ErrParseSkipped) {
			t.Errorf("skip error = %v, want ErrParseSkipped", err)
		}
		skipped = append(skipped, filepath.Base(path))
	})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(songs) != 2 {
		t.Fatalf("len(songs) = %d, want 2", len(songs))
	}
	if songs[0].Title != "A" || songs[1].Title != "B" {
		t.Errorf("songs out of order: %q, %q", songs[0].Title, songs[1].Title)
	}
	if songs[0].SourcePath != filepath.Join(dir, "a.md") {
		t.Errorf("SourcePath = %q", songs[0].SourcePath)
	}
	if len(skipped) != 1 || skipped[0] != "broken.md" {
		t.Errorf("skipped = %v, want [broken.md]", skipped)
	}
}

func TestScan_Missing(t *testing.T) {
	tests := []struct {
		name string
		dir  func(t *testing.T) string
	}{
		{"no directory", func(t *testing.T) string { return filepath.Join(t.TempDir(), "chansons") }},
		{"empty directory", func(t *testing.T) string { return t.TempDir() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scan(tt.dir(t), nil)
			if !errors.Is(err, model.ErrInputMissing) {
				t.Errorf("Scan() error = %v, want ErrInputMissing", err)
			}
		})
	}
}
