package model

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds shared by the pipeline stages. Use errors.Is to classify.
var (
	// ErrInputMissing marks a missing source file or directory. Fatal for a stage.
	ErrInputMissing = errors.New("input missing")

	// ErrConfiguration marks an unusable configuration, such as a missing
	// card template. Fatal for a stage.
	ErrConfiguration = errors.New("configuration error")

	// ErrParseSkipped marks a single card or line that could not be read.
	// The record is excluded and the batch continues.
	ErrParseSkipped = errors.New("parse skipped")

	// ErrEncoding marks input that is not valid UTF-8.
	ErrEncoding = errors.New("encoding error")
)

// Wrap tags err with one of the sentinel kinds above and adds stage and
// operation context to the message.
func Wrap(marker error, stage, operation string, err error) error {
	detail := buildDetail(stage, operation)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation string) string {
	parts := make([]string, 0, 2)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
