package model

import (
	"fmt"
	"strings"
)

// EnergyTier is the coarse energy bucket of a song.
type EnergyTier int

const (
	// TierLow holds energy scores 1-3.
	TierLow EnergyTier = iota

	// TierMedium holds energy scores 4-6.
	TierMedium

	// TierHigh holds energy scores 7-10.
	TierHigh

	// TierUnknown holds songs without a usable energy score.
	TierUnknown
)

// Tiers lists every tier in emission order.
var Tiers = []EnergyTier{TierLow, TierMedium, TierHigh, TierUnknown}

// TierFor returns the tier for an energy score. A nil score is TierUnknown.
//
// Scores outside 1-10 are clamped to the nearest tier, so 0 is Low and 12 is
// High.
func TierFor(energy *int) EnergyTier {
	if energy == nil {
		return TierUnknown
	}
	switch e := *energy; {
	case e <= 3:
		return TierLow
	case e <= 6:
		return TierMedium
	default:
		return TierHigh
	}
}

// String returns the tier label ("Low", "Medium", "High" or "Unknown").
func (t EnergyTier) String() string {
	switch t {
	case TierLow:
		return "Low"
	case TierMedium:
		return "Medium"
	case TierHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// ParseTier maps a tier label to its EnergyTier, ignoring case.
func ParseTier(label string) (EnergyTier, error) {
	for _, t := range Tiers {
		if strings.EqualFold(label, t.String()) {
			return t, nil
		}
	}
	return TierUnknown, fmt.Errorf("unknown energy tier %q", label)
}

// Range returns a human readable score range for the tier.
func (t EnergyTier) Range() string {
	switch t {
	case TierLow:
		return "1-3"
	case TierMedium:
		return "4-6"
	case TierHigh:
		return "7-10"
	default:
		return "n/a"
	}
}

// PlaylistName returns the playlist base name for the tier, e.g.
// "Playlist_Low_Energy".
func (t EnergyTier) PlaylistName() string {
	return "Playlist_" + t.String() + "_Energy"
}

// PlaylistGroup is a named, ordered selection of songs.
//
// Groups are produced by the classifier for one run. They are never persisted
// themselves; only their rendered playlists are.
type PlaylistGroup struct {
	// Key is the grouping key: a genre name or a tier label.
	Key string

	// Name is the playlist base name used for output files.
	Name string

	// Songs is the ordered member list.
	Songs []*Song
}

// Len returns the number of songs in the group.
func (g *PlaylistGroup) Len() int {
	return len(g.Songs)
}

// GenrePlaylistName returns the playlist base name for a genre, e.g.
// "Playlist_Hip_Hop" for "Hip Hop".
func GenrePlaylistName(genre string) string {
	return "Playlist_" + sanitizeFileName(strings.ReplaceAll(genre, " ", "_"))
}

// CompletePlaylistName is the base name of the playlist holding every song.
const CompletePlaylistName = "Playlist_Complete"
