// Package config provides configuration management for djassist.
//
// Settings are stored as TOML in djassist.toml at the library root:
//
//	[paths]
//	root = "."
//	cards_dir = "data/output/chansons"
//	playlists_dir = "data/playlists"
//
//	[playlists]
//	min_group_size = 2
//	extra_formats = ["pls"]
//
//	[youtube]
//	binary = "yt-dlp"
//	concurrency = 4
//
//	[tagging]
//	enabled = true
//	actions = { date = "keep" }
//
//	[logging]
//	level = "info"
//	format = "console"
//
// # Loading
//
// Load falls back to DefaultSettings when the file does not exist, and keeps
// defaults for keys the file omits. Unknown keys and invalid values are
// reported as model.ErrConfiguration.
//
//	settings, err := config.Load("djassist.toml")
//	paths := settings.WithRoot(flagRoot).Resolved()
//
// # Saving
//
//	err := config.DefaultSettings().Save("djassist.toml")
package config
