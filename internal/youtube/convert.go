package youtube

import (
	"time"

	"github.com/handiism/djassist/internal/model"
	"github.com/handiism/djassist/internal/youtube/dto"
)

// ImportTags are given to every imported song.
var ImportTags = []string{"youtube", "extrait"}

// ToSong maps a video to a song. Artist and title come from ParseTitle, the
// genre from GuessGenre, BPM from the duration and energy from the title.
// The key is always the default key.
func ToSong(v dto.Video, today time.Time) *model.Song {
	artist, title := ParseTitle(v.Title)
	return &model.Song{
		Title:     title,
		Artist:    artist,
		BPM:       model.IntPtr(EstimateBPM(v.Duration)),
		Key:       model.DefaultKey,
		Energy:    model.IntPtr(EstimateEnergy(v.Title)),
		Genres:    []string{GuessGenre(v.Title, v.Description)},
		Tags:      append([]string(nil), ImportTags...),
		DateAdded: v.UploadDay(today),
	}
}
