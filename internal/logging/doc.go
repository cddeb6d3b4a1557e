// Package logging builds the slog loggers used by the CLI and the TUI.
//
// Two formats are supported: "console", a single human readable line per
// record coloured when writing to a terminal, and "json".
package logging
