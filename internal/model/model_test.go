package model

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Daft Punk - One More Time", "Daft Punk - One More Time"},
		{"AC/DC - Back In Black", "AC_DC - Back In Black"},
		{"file:with:colons", "file_with_colons"},
		{"file<with>brackets", "file_with_brackets"},
		{`file/with\slashes`, "file_with_slashes"},
		{"file|with|pipes", "file_with_pipes"},
		{"file?with*wildcards", "file_with_wildcards"},
		{`file"with"quotes`, "file_with_quotes"},
		{"  padded  ", "padded"},
		{"Beyoncé - Halo", "Beyoncé - Halo"},
		{"trailing dots...", "trailing dots..."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := sanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := sanitizeFileName(got); again != got {
				t.Errorf("sanitizeFileName is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestSong_Defaults(t *testing.T) {
	song := &Song{Title: "Intro", Artist: "The xx"}

	if got := song.BPMOr(DefaultBPM); got != 120 {
		t.Errorf("BPMOr() = %d, want 120", got)
	}
	if got := song.EnergyOr(DefaultEnergy); got != 5 {
		t.Errorf("EnergyOr() = %d, want 5", got)
	}
	if got := song.PrimaryGenre(); got != "" {
		t.Errorf("PrimaryGenre() = %q, want empty", got)
	}

	song.BPM = IntPtr(98)
	song.Genres = []string{"Indie", "Pop"}
	if got := song.BPMOr(DefaultBPM); got != 98 {
		t.Errorf("BPMOr() = %d, want 98", got)
	}
	if got := song.PrimaryGenre(); got != "Indie" {
		t.Errorf("PrimaryGenre() = %q, want Indie", got)
	}
}

func TestSong_SourceIdentifier(t *testing.T) {
	song := &Song{Title: "What's Up?", Artist: "4 Non Blondes"}
	if got, want := song.SourceIdentifier(), "4 Non Blondes - What's Up_"; got != want {
		t.Errorf("SourceIdentifier() = %q, want %q", got, want)
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		energy *int
		want   EnergyTier
	}{
		{IntPtr(1), TierLow},
		{IntPtr(3), TierLow},
		{IntPtr(4), TierMedium},
		{IntPtr(6), TierMedium},
		{IntPtr(7), TierHigh},
		{IntPtr(10), TierHigh},
		{IntPtr(0), TierLow},
		{IntPtr(11), TierHigh},
		{nil, TierUnknown},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.energy != nil {
			name = tt.want.String()
		}
		t.Run(name, func(t *testing.T) {
			if got := TierFor(tt.energy); got != tt.want {
				t.Errorf("TierFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnergyTier_PlaylistName(t *testing.T) {
	tests := []struct {
		tier EnergyTier
		want string
	}{
		{TierLow, "Playlist_Low_Energy"},
		{TierMedium, "Playlist_Medium_Energy"},
		{TierHigh, "Playlist_High_Energy"},
		{TierUnknown, "Playlist_Unknown_Energy"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tier.PlaylistName(); got != tt.want {
				t.Errorf("PlaylistName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenrePlaylistName(t *testing.T) {
	if got, want := GenrePlaylistName("Hip Hop"), "Playlist_Hip_Hop"; got != want {
		t.Errorf("GenrePlaylistName() = %q, want %q", got, want)
	}
	if got, want := GenrePlaylistName("Drum/Bass"), "Playlist_Drum_Bass"; got != want {
		t.Errorf("GenrePlaylistName() = %q, want %q", got, want)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ErrConfiguration, "generate", "load template", cause)

	if !errors.Is(err, ErrConfiguration) {
		t.Error("wrapped error should match ErrConfiguration")
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should match its cause")
	}
	if got, want := err.Error(), "configuration error: generate: load template: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseTier(t *testing.T) {
	for _, tier := range Tiers {
		got, err := ParseTier(strings.ToUpper(tier.String()))
		if err != nil || got != tier {
			t.Errorf("ParseTier(%q) = %v, %v, want %v", strings.ToUpper(tier.String()), got, err, tier)
		}
	}
	if _, err := ParseTier("loud"); err == nil {
		t.Error("ParseTier(\"loud\") should fail")
	}
}
