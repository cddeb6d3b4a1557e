// Package audio writes DJ playlists and ID3 tags.
//
// # Playlist Generation
//
// A Planner picks the playlists to materialize and an Emitter writes each
// one in several formats:
//
//	plan := audio.NewPlanner().Plan(songs)
//	emitter := audio.NewEmitter("mp3", audio.FormatPLS)
//	for _, group := range plan {
//		paths, err := emitter.Emit(group, "library/playlists")
//		...
//	}
//
// Genre and energy playlists need at least two songs; Playlist_Complete is
// always written. Every playlist gets .m3u, .json and .md files; PLS, WPL
// and ZPL are optional.
//
// # ID3 Tagging
//
// Use the Tagger to copy card metadata into MP3 files:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(song, "library/mp3/Daft Punk - One More Time.mp3")
//
// The tagger writes title, artist, genres, BPM, key, and a comment holding
// the energy score and tags.
package audio
