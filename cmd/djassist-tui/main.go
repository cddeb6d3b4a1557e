package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/handiism/djassist/internal/config"
	"github.com/handiism/djassist/internal/tui"
	"github.com/spf13/cobra"
)

func main() {
	var root, configPath string

	cmd := &cobra.Command{
		Use:           "djassist-tui",
		Short:         "Interactive menu for the djassist workflow",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				dir := root
				if dir == "" {
					dir = "."
				}
				configPath = filepath.Join(dir, config.FileName)
			}
			settings, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return tui.Run(settings.WithRoot(root))
		},
	}
	cmd.Flags().StringVarP(&root, "root", "r", "", "Library root (overrides paths.root)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file path (default <root>/djassist.toml)")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
