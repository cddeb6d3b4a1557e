package classify

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/handiism/djassist/internal/model"
)

const (
	// SuggestionSize is the number of songs listed per suggested set.
	SuggestionSize = 5

	// MinGenreSetSize is the smallest genre that gets a suggested set.
	MinGenreSetSize = 3
)

// RenderSetReport renders the classified set document: songs by genre, songs
// by energy tier, and suggested sets (an energy progression plus one set per
// genre with at least MinGenreSetSize songs).
func RenderSetReport(songs []*model.Song, now time.Time) string {
	genres := ByGenre(songs)
	tiers := ByEnergy(songs)

	var b strings.Builder
	fmt.Fprintf(&b, "# Classified DJ Set - Generated on %s\n\n", now.Format(time.DateTime))
	fmt.Fprintf(&b, "Total songs: %d\n", len(songs))
	fmt.Fprintf(&b, "Genres found: %d\n\n", len(genres))

	b.WriteString("## 🎵 By Genre\n\n")
	for _, g := range genres {
		fmt.Fprintf(&b, "### %s (%d songs)\n\n", g.Key, g.Len())
		for _, s := range g.Songs {
			fmt.Fprintf(&b, "- **%s**\n", s.DisplayName())
			fmt.Fprintf(&b, "  - BPM: %s | Key: %s | Energy: %s\n", orNA(s.BPM), keyOrNA(s.Key), orNA(s.Energy))
			writeSource(&b, s)
		}
	}
	b.WriteString("\n" + strings.Repeat("=", 60) + "\n\n")

	b.WriteString("## ⚡ By Energy\n\n")
	for _, tier := range model.Tiers {
		g := Tier(tiers, tier)
		if g == nil {
			continue
		}
		fmt.Fprintf(&b, "### %s (%s) (%d songs)\n\n", g.Key, tier.Range(), g.Len())
		for _, s := range g.Songs {
			fmt.Fprintf(&b, "- **%s**\n", s.DisplayName())
			fmt.Fprintf(&b, "  - BPM: %s | Genres: %s\n", orNA(s.BPM), strings.Join(s.Genres, ", "))
			writeSource(&b, s)
		}
	}
	b.WriteString("\n" + strings.Repeat("=", 60) + "\n\n")

	b.WriteString("## 🎛️ Suggested Sets\n\n")
	b.WriteString("### Energy Progression\n\n")
	for _, step := range []struct {
		label string
		tier  model.EnergyTier
	}{
		{"Warm-up (low energy)", model.TierLow},
		{"Build-up (medium energy)", model.TierMedium},
		{"Peak-time (high energy)", model.TierHigh},
	} {
		fmt.Fprintf(&b, "**%s:**\n", step.label)
		if g := Tier(tiers, step.tier); g != nil {
			writeShortList(&b, g.Songs)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Sets by Genre\n\n")
	for _, g := range genres {
		if g.Len() < MinGenreSetSize {
			continue
		}
		fmt.Fprintf(&b, "**%s set:**\n", g.Key)
		writeShortList(&b, g.Songs)
		b.WriteString("\n")
	}
	return b.String()
}

func writeShortList(b *strings.Builder, songs []*model.Song) {
	for i, s := range songs {
		if i == SuggestionSize {
			break
		}
		fmt.Fprintf(b, "- %s\n", s.DisplayName())
	}
}

func writeSource(b *strings.Builder, s *model.Song) {
	if s.SourcePath != "" {
		fmt.Fprintf(b, "  - File: `%s`\n", filepath.Base(s.SourcePath))
	}
	b.WriteString("\n")
}

func orNA(v *int) string {
	if v == nil {
		return "N/A"
	}
	return strconv.Itoa(*v)
}

func keyOrNA(k string) string {
	if k == "" {
		return "N/A"
	}
	return k
}
