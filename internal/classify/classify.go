package classify

import (
	"cmp"
	"slices"

	"github.com/handiism/djassist/internal/model"
)

// ByGenre groups songs under every genre they list. A song with genres
// ["Rock", "Pop"] lands in both groups.
//
// Groups are ordered by genre name. Songs inside a group are ordered by BPM,
// then energy, with unknown values counted as 120 and 5.
func ByGenre(songs []*model.Song) []*model.PlaylistGroup {
	members := make(map[string][]*model.Song)
	for _, s := range songs {
		for _, g := range s.Genres {
			members[g] = append(members[g], s)
		}
	}

	genres := make([]string, 0, len(members))
	for g := range members {
		genres = append(genres, g)
	}
	slices.Sort(genres)

	groups := make([]*model.PlaylistGroup, 0, len(genres))
	for _, g := range genres {
		list := members[g]
		slices.SortStableFunc(list, func(a, b *model.Song) int {
			return cmp.Or(
				cmp.Compare(a.BPMOr(model.DefaultBPM), b.BPMOr(model.DefaultBPM)),
				cmp.Compare(a.EnergyOr(model.DefaultEnergy), b.EnergyOr(model.DefaultEnergy)),
			)
		})
		groups = append(groups, &model.PlaylistGroup{
			Key:   g,
			Name:  model.GenrePlaylistName(g),
			Songs: list,
		})
	}
	return groups
}

// ByEnergy partitions songs into energy tiers. Every song is in exactly one
// group; songs without an energy score go to the Unknown tier.
//
// Groups come in tier order (Low, Medium, High, Unknown) and empty tiers are
// left out. Songs inside a group are ordered by primary genre, then BPM.
func ByEnergy(songs []*model.Song) []*model.PlaylistGroup {
	members := make(map[model.EnergyTier][]*model.Song)
	for _, s := range songs {
		tier := model.TierFor(s.Energy)
		members[tier] = append(members[tier], s)
	}

	var groups []*model.PlaylistGroup
	for _, tier := range model.Tiers {
		list := members[tier]
		if len(list) == 0 {
			continue
		}
		slices.SortStableFunc(list, func(a, b *model.Song) int {
			return cmp.Or(
				cmp.Compare(a.PrimaryGenre(), b.PrimaryGenre()),
				cmp.Compare(a.BPMOr(model.DefaultBPM), b.BPMOr(model.DefaultBPM)),
			)
		})
		groups = append(groups, &model.PlaylistGroup{
			Key:   tier.String(),
			Name:  tier.PlaylistName(),
			Songs: list,
		})
	}
	return groups
}

// Tier returns the group for tier from the result of ByEnergy, or nil.
func Tier(groups []*model.PlaylistGroup, tier model.EnergyTier) *model.PlaylistGroup {
	for _, g := range groups {
		if g.Key == tier.String() {
			return g
		}
	}
	return nil
}
