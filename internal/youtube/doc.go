// Package youtube turns yt-dlp video metadata into songs.
//
// No audio is downloaded. A Source lists the videos behind a URL; ExecSource
// runs yt-dlp and FileSource reads previously dumped JSON lines:
//
//	src := youtube.NewExecSource("yt-dlp")
//	videos, err := src.Videos(ctx, url)
//	for _, v := range videos {
//		song := youtube.ToSong(v, time.Now())
//		...
//	}
//
// Artist and title are parsed from the video title. Genre, BPM and energy
// are rough guesses from keywords and duration and are meant to be corrected
// by hand.
package youtube
