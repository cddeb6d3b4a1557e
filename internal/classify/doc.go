// Package classify groups songs for DJ use.
//
// Two independent groupings are produced from the same songs:
//
//	genres := classify.ByGenre(songs)  // a song appears under each of its genres
//	tiers := classify.ByEnergy(songs)  // a song appears in exactly one tier
//
// Energy tiers are Low (1-3), Medium (4-6), High (7-10) and Unknown for songs
// without a score. RenderSetReport turns both groupings into a Markdown
// document with suggested sets.
package classify
