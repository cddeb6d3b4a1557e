package audio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/handiism/djassist/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U: Extended M3U, widely supported by DJ software
//   - JSON: Structured data with the full song metadata
//   - Markdown: Human readable report with statistics
//   - PLS: INI-style format, used by Winamp
//   - WPL: XML format, Windows Media Player
//   - ZPL: XML format, Zune/Groove Music
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files with #EXTINF lines.
	FormatM3U PlaylistFormat = iota

	// FormatJSON creates .json files.
	FormatJSON

	// FormatMarkdown creates .md report files.
	FormatMarkdown

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	FormatWPL

	// FormatZPL creates .zpl files (Zune/Groove Music).
	FormatZPL
)

// DefaultFormats are always written for every playlist.
var DefaultFormats = []PlaylistFormat{FormatM3U, FormatJSON, FormatMarkdown}

// ParseFormat maps a configuration name ("m3u", "json", "md", "pls", "wpl",
// "zpl") to a PlaylistFormat.
func ParseFormat(name string) (PlaylistFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "m3u":
		return FormatM3U, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "pls":
		return FormatPLS, nil
	case "wpl":
		return FormatWPL, nil
	case "zpl":
		return FormatZPL, nil
	default:
		return 0, fmt.Errorf("unknown playlist format %q", name)
	}
}

// Ext returns the file extension of the format, including the dot.
func (f PlaylistFormat) Ext() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatMarkdown:
		return ".md"
	case FormatPLS:
		return ".pls"
	case FormatWPL:
		return ".wpl"
	case FormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// PlaylistCreator renders a playlist group in one format.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, "mp3")
//	content, err := creator.CreatePlaylist(group, time.Now())
//
//	// Result:
//	// #EXTM3U
//	// # Playlist: Playlist_House
//	// # Generated: 2024-03-01 10:00:00
//	// # Tracks: 2
//	//
//	// #EXTINF:-1,Daft Punk - One More Time
//	// mp3/Daft Punk - One More Time.mp3
type PlaylistCreator struct {
	format   PlaylistFormat
	audioDir string
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// audioDir is the directory used to build a placeholder path for songs
// whose card has no audio file reference.
func NewPlaylistCreator(format PlaylistFormat, audioDir string) *PlaylistCreator {
	return &PlaylistCreator{format: format, audioDir: audioDir}
}

// CreatePlaylist generates playlist content for a group.
func (p *PlaylistCreator) CreatePlaylist(group *model.PlaylistGroup, created time.Time) ([]byte, error) {
	switch p.format {
	case FormatJSON:
		return p.createJSON(group, created)
	case FormatMarkdown:
		return []byte(p.createMarkdown(group, created)), nil
	case FormatPLS:
		return []byte(p.createPLS(group)), nil
	case FormatWPL:
		return []byte(p.createWPL(group)), nil
	case FormatZPL:
		return []byte(p.createZPL(group)), nil
	default:
		return []byte(p.createM3U(group, created)), nil
	}
}

// audioPath returns the song's audio reference, or a placeholder under
// audioDir built from its identifier.
func (p *PlaylistCreator) audioPath(song *model.Song) string {
	if song.AudioFile != "" {
		return song.AudioFile
	}
	return path.Join(p.audioDir, song.SourceIdentifier()+".mp3")
}

func (p *PlaylistCreator) createM3U(group *model.PlaylistGroup, created time.Time) string {
	var sb strings.Builder

	sb.WriteString("#EXTM3U\n")
	fmt.Fprintf(&sb, "# Playlist: %s\n", group.Name)
	fmt.Fprintf(&sb, "# Generated: %s\n", created.Format(time.DateTime))
	fmt.Fprintf(&sb, "# Tracks: %d\n\n", group.Len())

	for _, song := range group.Songs {
		fmt.Fprintf(&sb, "#EXTINF:-1,%s\n", song.DisplayName())
		sb.WriteString(p.audioPath(song) + "\n\n")
	}

	return sb.String()
}

type jsonPlaylist struct {
	Name       string     `json:"name"`
	Created    string     `json:"created"`
	TotalSongs int        `json:"total_songs"`
	Songs      []jsonSong `json:"songs"`
}

type jsonSong struct {
	Title     string   `json:"title"`
	Artist    string   `json:"artist"`
	BPM       int      `json:"bpm"`
	Key       string   `json:"key"`
	Energy    int      `json:"energy"`
	Genres    []string `json:"genres"`
	Tags      []string `json:"tags"`
	FilePath  string   `json:"file_path"`
	DateAdded string   `json:"date_added"`
}

// createJSON renders the structured playlist. Unknown bpm and energy are
// written as the creation defaults so consumers always get integers.
func (p *PlaylistCreator) createJSON(group *model.PlaylistGroup, created time.Time) ([]byte, error) {
	doc := jsonPlaylist{
		Name:       group.Name,
		Created:    created.Format(time.RFC3339),
		TotalSongs: group.Len(),
		Songs:      make([]jsonSong, 0, group.Len()),
	}
	for _, song := range group.Songs {
		genres := song.Genres
		if len(genres) == 0 {
			genres = []string{model.UnclassifiedGenre}
		}
		tags := song.Tags
		if tags == nil {
			tags = []string{}
		}
		key := song.Key
		if key == "" {
			key = model.DefaultKey
		}
		doc.Songs = append(doc.Songs, jsonSong{
			Title:     song.Title,
			Artist:    song.Artist,
			BPM:       song.BPMOr(model.DefaultBPM),
			Key:       key,
			Energy:    song.EnergyOr(model.DefaultEnergy),
			Genres:    genres,
			Tags:      tags,
			FilePath:  song.AudioFile,
			DateAdded: song.DateAdded,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode playlist %s: %w", group.Name, err)
	}
	return buf.Bytes(), nil
}

// createMarkdown renders the report: genre counts, BPM and energy statistics
// over songs that have those values, then one block per song.
func (p *PlaylistCreator) createMarkdown(group *model.PlaylistGroup, created time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Playlist: %s\n\n", group.Name)
	fmt.Fprintf(&sb, "**Created:** %s\n", created.Format(time.DateTime))
	fmt.Fprintf(&sb, "**Tracks:** %d\n\n", group.Len())

	genreCounts := make(map[string]int)
	var bpms, energies []int
	for _, song := range group.Songs {
		for _, g := range song.Genres {
			genreCounts[g]++
		}
		if song.BPM != nil {
			bpms = append(bpms, *song.BPM)
		}
		if song.Energy != nil {
			energies = append(energies, *song.Energy)
		}
	}

	sb.WriteString("## 📊 Statistics\n\n")
	sb.WriteString("### Genres\n")
	genres := make([]string, 0, len(genreCounts))
	for g := range genreCounts {
		genres = append(genres, g)
	}
	slices.Sort(genres)
	for _, g := range genres {
		fmt.Fprintf(&sb, "- %s: %d tracks\n", g, genreCounts[g])
	}

	if s, ok := summarize(bpms); ok {
		sb.WriteString("\n### BPM\n")
		fmt.Fprintf(&sb, "- Average: %d BPM\n", s.avg)
		fmt.Fprintf(&sb, "- Min: %d BPM\n", s.min)
		fmt.Fprintf(&sb, "- Max: %d BPM\n", s.max)
	}
	if s, ok := summarize(energies); ok {
		sb.WriteString("\n### Energy\n")
		fmt.Fprintf(&sb, "- Average: %d/10\n", s.avg)
		fmt.Fprintf(&sb, "- Min: %d/10\n", s.min)
		fmt.Fprintf(&sb, "- Max: %d/10\n", s.max)
	}

	sb.WriteString("\n## 🎵 Tracks\n\n")
	for i, song := range group.Songs {
		fmt.Fprintf(&sb, "### %d. %s\n\n", i+1, song.DisplayName())
		fmt.Fprintf(&sb, "- **BPM:** %s\n", intOrNA(song.BPM))
		fmt.Fprintf(&sb, "- **Key:** %s\n", orNA(song.Key))
		fmt.Fprintf(&sb, "- **Energy:** %s/10\n", intOrNA(song.Energy))
		fmt.Fprintf(&sb, "- **Genres:** %s\n", strings.Join(song.Genres, ", "))
		fmt.Fprintf(&sb, "- **File:** `%s`\n\n", song.AudioFile)
	}

	return sb.String()
}

type stats struct {
	avg, min, max int
}

// summarize returns the floor average, min and max of values.
func summarize(values []int) (stats, bool) {
	if len(values) == 0 {
		return stats{}, false
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return stats{
		avg: floorDiv(sum, len(values)),
		min: slices.Min(values),
		max: slices.Max(values),
	}, true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// createPLS generates a PLS playlist.
//
// PLS format is an INI-style text file:
//
//	[playlist]
//	File1=mp3/Daft Punk - One More Time.mp3
//	Title1=Daft Punk - One More Time
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(group *model.PlaylistGroup) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, song := range group.Songs {
		idx := i + 1
		fmt.Fprintf(&sb, "File%d=%s\n", idx, p.audioPath(song))
		fmt.Fprintf(&sb, "Title%d=%s\n", idx, song.DisplayName())
		fmt.Fprintf(&sb, "Length%d=-1\n", idx)
	}

	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", group.Len())
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func (p *PlaylistCreator) createWPL(group *model.PlaylistGroup) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", escapeXML(group.Name))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, song := range group.Songs {
		fmt.Fprintf(&sb, "      <media src=\"%s\"/>\n", escapeXML(p.audioPath(song)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL generates a Zune/Groove Music playlist with per-track title,
// artist and genre attributes.
func (p *PlaylistCreator) createZPL(group *model.PlaylistGroup) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", escapeXML(group.Name))
	sb.WriteString("    <meta name=\"Generator\" content=\"djassist\"/>\n")
	fmt.Fprintf(&sb, "    <meta name=\"ItemCount\" content=\"%d\"/>\n", group.Len())
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, song := range group.Songs {
		fmt.Fprintf(&sb, "      <media src=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\" genre=\"%s\"/>\n",
			escapeXML(p.audioPath(song)),
			escapeXML(song.Title),
			escapeXML(song.Artist),
			escapeXML(song.PrimaryGenre()))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;",
)

func intOrNA(v *int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprint(*v)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
