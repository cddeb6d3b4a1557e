package lineparse

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/handiism/djassist/internal/model"
)

var today = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func TestParse(t *testing.T) {
	tests := []struct {
		line       string
		wantOK     bool
		wantArtist string
		wantTitle  string
	}{
		{"Daft Punk - One More Time", true, "Daft Punk", "One More Time"},
		{"  Stromae - Alors on danse  ", true, "Stromae", "Alors on danse"},
		{"Artist - Title - Remix", true, "Artist", "Title - Remix"},
		{"Madonna - Music par Mirwais", true, "Madonna", "Music par Mirwais"},
		{"La Vie en rose par Édith Piaf", true, "Édith Piaf", "La Vie en rose"},
		{"Sandstorm", true, model.UnknownArtist, "Sandstorm"},
		{"AC/DC-Thunderstruck", true, model.UnknownArtist, "AC/DC-Thunderstruck"},
		{"", false, "", ""},
		{"   ", false, "", ""},
		{"# favourites", false, "", ""},
		{"  #indented comment", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			song, ok := Parse(tt.line, today)
			if ok != tt.wantOK {
				t.Fatalf("Parse() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if song.Artist != tt.wantArtist {
				t.Errorf("Artist = %q, want %q", song.Artist, tt.wantArtist)
			}
			if song.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", song.Title, tt.wantTitle)
			}
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	song, ok := Parse("Daft Punk - One More Time", today)
	if !ok {
		t.Fatal("Parse() returned false")
	}

	if song.BPMOr(0) != 120 {
		t.Errorf("BPM = %d, want 120", song.BPMOr(0))
	}
	if song.EnergyOr(0) != 5 {
		t.Errorf("Energy = %d, want 5", song.EnergyOr(0))
	}
	if song.Key != "A" {
		t.Errorf("Key = %q, want A", song.Key)
	}
	if !reflect.DeepEqual(song.Genres, []string{"Pop"}) {
		t.Errorf("Genres = %v, want [Pop]", song.Genres)
	}
	if !reflect.DeepEqual(song.Tags, []string{"nouveau"}) {
		t.Errorf("Tags = %v, want [nouveau]", song.Tags)
	}
	if song.DateAdded != "2024-03-01" {
		t.Errorf("DateAdded = %q, want 2024-03-01", song.DateAdded)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(dir, "nope.txt"), today)
		if !errors.Is(err, model.ErrInputMissing) {
			t.Errorf("error = %v, want ErrInputMissing", err)
		}
	})

	t.Run("invalid utf8", func(t *testing.T) {
		path := filepath.Join(dir, "latin1.txt")
		if err := os.WriteFile(path, []byte("Beyonc\xe9 - Halo\n"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := ParseFile(path, today)
		if !errors.Is(err, model.ErrEncoding) {
			t.Errorf("error = %v, want ErrEncoding", err)
		}
	})

	t.Run("list", func(t *testing.T) {
		path := filepath.Join(dir, "list.txt")
		content := "# party\nDaft Punk - One More Time\n\nSandstorm\r\nLa Vie en rose par Édith Piaf\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		songs, err := ParseFile(path, today)
		if err != nil {
			t.Fatalf("ParseFile() error = %v", err)
		}
		if len(songs) != 3 {
			t.Fatalf("len(songs) = %d, want 3", len(songs))
		}
		if songs[1].Title != "Sandstorm" {
			t.Errorf("songs[1].Title = %q, want Sandstorm", songs[1].Title)
		}
		if songs[2].Artist != "Édith Piaf" {
			t.Errorf("songs[2].Artist = %q, want Édith Piaf", songs[2].Artist)
		}
	})
}
