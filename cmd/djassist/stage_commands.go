package main

import (
	"fmt"

	"github.com/handiism/djassist/internal/pipeline"
	"github.com/handiism/djassist/internal/youtube"
	"github.com/spf13/cobra"
)

func newStageCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newGenerateCommand(ctx),
		newExtractCommand(ctx),
		newClassifyCommand(ctx),
		newPlaylistsCommand(ctx),
		newYouTubeCommand(ctx),
		newTagCommand(ctx),
		newIndexCommand(ctx),
		newRunCommand(ctx),
	}
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Step 1: write the batch document from the song list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, err := ctx.newManager(cmd)
			if err != nil {
				return err
			}
			n, err := manager.Generate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Songs processed: %d\nOutput: %s\n", n, manager.Paths().BatchFile)
			return nil
		},
	}
}

func newExtractCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "extract",
		Short: "Step 2: split the batch document into one card per song",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, err := ctx.newManager(cmd)
			if err != nil {
				return err
			}
			paths, err := manager.Extract(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cards written: %d\nOutput: %s\n", len(paths), manager.Paths().CardsDir)
			return nil
		},
	}
}

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "classify",
		Short: "Step 3: write the DJ set classified by genre and energy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, err := ctx.newManager(cmd)
			if err != nil {
				return err
			}
			songs, err := manager.Classify(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Songs classified: %d\nOutput: %s\n", len(songs), manager.Paths().SetReport)
			return nil
		},
	}
}

func newYouTubeCommand(ctx *commandContext) *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "youtube <url>",
		Short: "Step 4: write cards for a YouTube video or playlist",
		Long: "Lists the videos behind the URL with yt-dlp and writes one card per video.\n" +
			"With --from-file, reads yt-dlp JSON lines from a file instead and the URL may be omitted.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, logger, err := ctx.newManager(cmd)
			if err != nil {
				return err
			}

			var target string
			if len(args) == 1 {
				target = args[0]
			}

			var src youtube.Source
			switch {
			case fromFile != "":
				src = youtube.FileSource{Path: fromFile}
				if target == "" {
					target = fromFile
				}
			case target == "":
				return fmt.Errorf("a URL is required unless --from-file is given")
			default:
				ytdlp := manager.NewYouTubeSource()
				if !ytdlp.Available(cmd.Context()) {
					return fmt.Errorf("%s not found in PATH; install yt-dlp or use --from-file", ytdlp.Binary)
				}
				src = ytdlp
			}

			logger.Debug("youtube import", "target", target)
			paths, err := manager.ImportYouTube(cmd.Context(), src, target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cards imported: %d\nOutput: %s\n", len(paths), manager.Paths().CardsDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "Read yt-dlp JSON lines from this file")
	return cmd
}

func newPlaylistsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "playlists",
		Short: "Step 5: write genre, energy and complete playlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, err := ctx.newManager(cmd)
			if err != nil {
				return err
			}
			paths, err := manager.Playlists(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Playlist files written: %d\nOutput: %s\n", len(paths), manager.Paths().PlaylistsDir)
			return nil
		},
	}
}

func newTagCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tag",
		Short: "Write card metadata into the ID3 tags of the library MP3 files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, err := ctx.newManager(cmd)
			if err != nil {
				return err
			}
			n, err := manager.Tag(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Files tagged: %d\n", n)
			return nil
		},
	}
}

func newIndexCommand(ctx *commandContext) *cobra.Command {
	var query pipeline.IndexQuery

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Store every card in the SQLite library index",
		Long: `Store every card in the SQLite library index.

With --genre or --tier, list the indexed songs of that genre or energy tier
(low, medium, high, unknown) instead of re-indexing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, err := ctx.newManager(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if query.Genre != "" || query.Tier != "" {
				songs, err := manager.QueryIndex(query)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, renderSongTable(songs))
				fmt.Fprintf(out, "Songs: %d\n", len(songs))
				return nil
			}

			n, err := manager.Index(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Songs indexed: %d\nOutput: %s\n", n, manager.Paths().IndexDB)
			return nil
		},
	}
	cmd.Flags().StringVar(&query.Genre, "genre", "", "List indexed songs of a genre")
	cmd.Flags().StringVar(&query.Tier, "tier", "", "List indexed songs of an energy tier")
	cmd.MarkFlagsMutuallyExclusive("genre", "tier")
	return cmd
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full workflow: generate, extract, classify, playlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, err := ctx.newManager(cmd)
			if err != nil {
				return err
			}
			if err := manager.RunAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Workflow complete")
			return nil
		},
	}
}
