package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/handiism/djassist/internal/model"
	"github.com/handiism/djassist/internal/youtube/dto"
	"golang.org/x/sync/errgroup"
)

// Source lists the videos behind a URL (a single video or a playlist).
type Source interface {
	Videos(ctx context.Context, target string) ([]dto.Video, error)
}

// ExecSource reads video metadata by running yt-dlp.
//
// The flat listing is fetched first. Entries that carry an id are then
// completed with a per-video lookup, running at most Concurrency lookups at
// a time. A failed lookup keeps the flat entry.
//
// Example:
//
//	src := youtube.NewExecSource("yt-dlp")
//	videos, err := src.Videos(ctx, "https://www.youtube.com/playlist?list=...")
type ExecSource struct {
	// Binary is the yt-dlp executable.
	Binary string

	// Concurrency bounds the per-video lookups.
	Concurrency int

	// MaxRetries is the number of attempts per lookup.
	MaxRetries int

	// RetryCooldown is the base wait in seconds between attempts; it grows by
	// RetryExponent after each try.
	RetryCooldown float64
	RetryExponent float64

	// OnLookupError, when set, is called for every failed lookup.
	OnLookupError func(id string, err error)

	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewExecSource creates an ExecSource with default limits.
func NewExecSource(binary string) *ExecSource {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &ExecSource{
		Binary:        binary,
		Concurrency:   4,
		MaxRetries:    2,
		RetryCooldown: 0.5,
		RetryExponent: 2,
		run:           runCommand,
	}
}

// Available reports whether the binary can be run.
func (s *ExecSource) Available(ctx context.Context) bool {
	_, err := s.run(ctx, s.Binary, "--version")
	return err == nil
}

// Videos implements Source.
func (s *ExecSource) Videos(ctx context.Context, target string) ([]dto.Video, error) {
	out, err := s.run(ctx, s.Binary, "--no-download", "--dump-json", "--flat-playlist", target)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", target, err)
	}
	videos := dto.DecodeLines(out)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.Concurrency))
	details := make([]*dto.Video, len(videos))
	for i := range videos {
		id := videos[i].ID
		if id == "" {
			continue
		}
		g.Go(func() error {
			detail, err := s.lookup(ctx, id)
			if err != nil {
				if s.OnLookupError != nil {
					s.OnLookupError(id, err)
				}
				return nil
			}
			details[i] = detail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range videos {
		videos[i].Merge(details[i])
	}
	return videos, nil
}

func (s *ExecSource) lookup(ctx context.Context, id string) (*dto.Video, error) {
	url := "https://www.youtube.com/watch?v=" + id

	var lastErr error
	for tries := 0; tries < max(1, s.MaxRetries); tries++ {
		if tries > 0 {
			s.waitForRetry(ctx, tries-1)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := s.run(ctx, s.Binary, "--no-download", "--dump-json", url)
		if err != nil {
			lastErr = err
			continue
		}
		var v dto.Video
		if err := json.Unmarshal(bytes.TrimSpace(out), &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", id, err)
		}
		return &v, nil
	}
	return nil, lastErr
}

func (s *ExecSource) waitForRetry(ctx context.Context, tries int) {
	cooldown := s.RetryCooldown * math.Pow(s.RetryExponent, float64(tries))
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// FileSource reads videos from a file of yt-dlp JSON lines, ignoring the
// target. It is used for offline imports.
type FileSource struct {
	Path string
}

// Videos implements Source.
func (s FileSource) Videos(_ context.Context, _ string) ([]dto.Video, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, model.Wrap(model.ErrInputMissing, "youtube", "read "+s.Path, err)
	}
	if err != nil {
		return nil, err
	}
	return dto.DecodeLines(data), nil
}
