// Package main hosts the djassist CLI entrypoint and command graph.
//
// Every pipeline stage has its own subcommand (generate, extract, classify,
// playlists, youtube, tag, index), run chains the workflow, stats reports
// the library outputs and config init writes a default djassist.toml.
package main
