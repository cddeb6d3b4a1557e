// Package ioutils provides file system utilities for djassist.
//
// This package contains functions for:
//   - Filename sanitization
//   - Collision-free file naming within one run
//   - File writing and directory creation
//
// # Filename Sanitization
//
// Use SanitizeFileName to replace characters that are invalid in file names:
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // "Song_ Part 1_2"
//
// # Unique Names
//
// A Namer remembers every name it handed out, so many records that sanitize
// to the same base still land in distinct files:
//
//	n := ioutils.NewNamer()
//	name, err := n.Claim(dir, "Unknown Artist - Unknown Title", ".md")
//	if errors.Is(err, ioutils.ErrCollisionExhausted) {
//		// skip the record
//	}
package ioutils
