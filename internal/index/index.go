// Package index keeps a SQLite index of the card library so songs can be
// looked up by genre or energy tier without re-reading every card.
package index

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/handiism/djassist/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// DB is the library index database.
type DB struct{ *gorm.DB }

//go:embed schema.sql
var schema string

// tagSeparator joins tags in the tags column.
const tagSeparator = "\n"

type songRow struct {
	CardID    string `gorm:"column:card_id;primaryKey"`
	Title     string `gorm:"column:title"`
	Artist    string `gorm:"column:artist"`
	BPM       *int   `gorm:"column:bpm"`
	Key       string `gorm:"column:musical_key"`
	Energy    *int   `gorm:"column:energy"`
	Tier      string `gorm:"column:tier"`
	Tags      string `gorm:"column:tags"`
	DateAdded string `gorm:"column:date_added"`
	AudioFile string `gorm:"column:audio_file"`
	CardPath  string `gorm:"column:card_path"`
}

func (songRow) TableName() string { return "songs" }

type genreRow struct {
	CardID   string `gorm:"column:card_id;primaryKey"`
	Genre    string `gorm:"column:genre;primaryKey"`
	Position int    `gorm:"column:position"`
}

func (genreRow) TableName() string { return "song_genres" }

// Open returns a connection to a migrated sqlite3 database file on disk,
// creating the file and running migrations if necessary.
func Open(filename string) (*DB, error) {
	gdb, err := gorm.Open(sqlite.Open(filename), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening index at '%s': %w", filename, err)
	}

	db := &DB{gdb}
	if err := db.Exec(schema).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("error migrating index at '%s': %w", filename, err)
	}
	return db, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Upsert inserts or replaces songs, keyed by card file name. A song's genre
// list is replaced as a whole.
func (db *DB) Upsert(songs []*model.Song) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, s := range songs {
			row := toRow(s)
			if err := tx.
				Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "card_id"}},
					UpdateAll: true,
				}).
				Create(&row).
				Error; err != nil {
				return fmt.Errorf("error indexing song '%s': %w", row.CardID, err)
			}

			if err := tx.Where("card_id = ?", row.CardID).Delete(&genreRow{}).Error; err != nil {
				return fmt.Errorf("error clearing genres of '%s': %w", row.CardID, err)
			}
			for i, g := range s.Genres {
				if err := tx.
					Clauses(clause.OnConflict{DoNothing: true}).
					Create(&genreRow{CardID: row.CardID, Genre: g, Position: i}).
					Error; err != nil {
					return fmt.Errorf("error indexing genre '%s' of '%s': %w", g, row.CardID, err)
				}
			}
		}
		return nil
	})
}

// Count returns the number of indexed songs.
func (db *DB) Count() (int64, error) {
	var n int64
	if err := db.Model(&songRow{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("error counting songs: %w", err)
	}
	return n, nil
}

// Genres returns every indexed genre with its song count, by name.
func (db *DB) Genres() (map[string]int64, error) {
	var rows []struct {
		Genre string
		N     int64
	}
	if err := db.
		Table("song_genres").
		Select("genre, count(*) as n").
		Group("genre").
		Scan(&rows).
		Error; err != nil {
		return nil, fmt.Errorf("error listing genres: %w", err)
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Genre] = r.N
	}
	return out, nil
}

// ByGenre returns the songs listing genre, ordered by BPM then energy.
func (db *DB) ByGenre(genre string) ([]*model.Song, error) {
	var rows []songRow
	if err := db.
		Joins("join song_genres on song_genres.card_id = songs.card_id").
		Where("song_genres.genre = ?", genre).
		Order(fmt.Sprintf("coalesce(songs.bpm, %d), coalesce(songs.energy, %d), songs.card_id", model.DefaultBPM, model.DefaultEnergy)).
		Find(&rows).
		Error; err != nil {
		return nil, fmt.Errorf("error querying genre '%s': %w", genre, err)
	}
	return db.toSongs(rows)
}

// ByTier returns the songs of an energy tier, ordered by BPM.
func (db *DB) ByTier(tier model.EnergyTier) ([]*model.Song, error) {
	var rows []songRow
	if err := db.
		Where("tier = ?", tier.String()).
		Order(fmt.Sprintf("coalesce(bpm, %d), card_id", model.DefaultBPM)).
		Find(&rows).
		Error; err != nil {
		return nil, fmt.Errorf("error querying tier '%s': %w", tier, err)
	}
	return db.toSongs(rows)
}

func (db *DB) toSongs(rows []songRow) ([]*model.Song, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.CardID
	}

	var genres []genreRow
	if err := db.
		Where("card_id in ?", ids).
		Order("card_id, position").
		Find(&genres).
		Error; err != nil {
		return nil, fmt.Errorf("error loading genres: %w", err)
	}
	byID := make(map[string][]string, len(rows))
	for _, g := range genres {
		byID[g.CardID] = append(byID[g.CardID], g.Genre)
	}

	songs := make([]*model.Song, len(rows))
	for i, r := range rows {
		songs[i] = &model.Song{
			Title:      r.Title,
			Artist:     r.Artist,
			BPM:        r.BPM,
			Key:        r.Key,
			Energy:     r.Energy,
			Genres:     byID[r.CardID],
			Tags:       splitTags(r.Tags),
			DateAdded:  r.DateAdded,
			AudioFile:  r.AudioFile,
			SourcePath: r.CardPath,
		}
	}
	return songs, nil
}

// CardID returns the index key of a song: its card file name without
// extension, or its source identifier when it has no card.
func CardID(s *model.Song) string {
	if s.SourcePath == "" {
		return s.SourceIdentifier()
	}
	base := filepath.Base(s.SourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func toRow(s *model.Song) songRow {
	return songRow{
		CardID:    CardID(s),
		Title:     s.Title,
		Artist:    s.Artist,
		BPM:       s.BPM,
		Key:       s.Key,
		Energy:    s.Energy,
		Tier:      model.TierFor(s.Energy).String(),
		Tags:      strings.Join(s.Tags, tagSeparator),
		DateAdded: s.DateAdded,
		AudioFile: s.AudioFile,
		CardPath:  s.SourcePath,
	}
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, tagSeparator)
}
