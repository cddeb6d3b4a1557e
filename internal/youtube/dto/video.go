package dto

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Video is the subset of a yt-dlp --dump-json object used by the importer.
type Video struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
	UploadDate  string  `json:"upload_date"`
}

// Merge overlays the non-empty fields of detail onto v. It mirrors the flat
// playlist entry being completed by a per-video lookup.
func (v *Video) Merge(detail *Video) {
	if detail == nil {
		return
	}
	if detail.ID != "" {
		v.ID = detail.ID
	}
	if detail.Title != "" {
		v.Title = detail.Title
	}
	if detail.Duration > 0 {
		v.Duration = detail.Duration
	}
	if detail.Description != "" {
		v.Description = detail.Description
	}
	if detail.UploadDate != "" {
		v.UploadDate = detail.UploadDate
	}
}

// UploadDay returns the upload date as an ISO date (YYYY-MM-DD), or today's
// date when upload_date is missing or not in YYYYMMDD form.
func (v *Video) UploadDay(today time.Time) string {
	if t, err := time.Parse("20060102", strings.TrimSpace(v.UploadDate)); err == nil {
		return t.Format(time.DateOnly)
	}
	return today.Format(time.DateOnly)
}

// DecodeLines decodes one JSON object per line. Blank lines and lines that
// are not valid JSON objects are skipped.
func DecodeLines(data []byte) []Video {
	var videos []Video
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var v Video
		if err := json.Unmarshal(line, &v); err != nil {
			continue
		}
		videos = append(videos, v)
	}
	return videos
}
