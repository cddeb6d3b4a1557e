package ioutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxCollisionSuffix bounds the numeric suffix search of Namer.Claim.
const MaxCollisionSuffix = 9999

// ErrCollisionExhausted is returned by Namer.Claim when every suffix up to
// MaxCollisionSuffix is taken.
var ErrCollisionExhausted = errors.New("collision suffixes exhausted")

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing. Writes are not atomic.
//
// Example:
//
//	err := WriteFile("/library/cards/Daft Punk - One More Time.md", data)
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// SanitizeFileName replaces characters that are invalid in file names.
//
// The characters < > : " / \ | ? * become underscores and surrounding
// whitespace is trimmed. Everything else, including accented letters, is
// kept. The function is idempotent.
//
// Example:
//
//	SanitizeFileName("AC/DC - Back In Black") // "AC_DC - Back In Black"
//	SanitizeFileName("  What's Up?  ")        // "What's Up_"
func SanitizeFileName(name string) string {
	return strings.TrimSpace(invalidChars.Replace(name))
}

var invalidChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_",
	"/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
)

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// FileExists reports whether path names an existing file or directory.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Namer hands out unique file names within one run.
//
// A name is taken if a file with that name already exists in the directory
// or if it was returned by an earlier Claim on the same Namer. Collisions are
// resolved by appending _01, _02, ... before the extension; the suffix widens
// past two digits after _99. A Namer is not safe for concurrent use.
//
// Example:
//
//	n := NewNamer()
//	n.Claim(dir, "Unknown Artist - Intro", ".md") // "Unknown Artist - Intro.md"
//	n.Claim(dir, "Unknown Artist - Intro", ".md") // "Unknown Artist - Intro_01.md"
type Namer struct {
	claimed map[string]struct{}
}

// NewNamer creates an empty Namer.
func NewNamer() *Namer {
	return &Namer{claimed: make(map[string]struct{})}
}

// Claim returns a free file name (base name plus extension, without the
// directory) and records it as taken.
func (n *Namer) Claim(dir, base, ext string) (string, error) {
	name := base + ext
	if n.free(dir, name) {
		n.take(dir, name)
		return name, nil
	}
	for i := 1; i <= MaxCollisionSuffix; i++ {
		name = fmt.Sprintf("%s_%02d%s", base, i, ext)
		if n.free(dir, name) {
			n.take(dir, name)
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %s%s", ErrCollisionExhausted, base, ext)
}

func (n *Namer) free(dir, name string) bool {
	path := filepath.Join(dir, name)
	if _, ok := n.claimed[path]; ok {
		return false
	}
	return !FileExists(path)
}

func (n *Namer) take(dir, name string) {
	n.claimed[filepath.Join(dir, name)] = struct{}{}
}
