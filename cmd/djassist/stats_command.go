package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the state of the library outputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, logger, err := ctx.newManager(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			rows := make([][]string, 0, 4)
			for _, s := range manager.Stats() {
				status, detail := "missing", "-"
				if s.Exists {
					status = "ok"
					if s.IsDir {
						detail = fmt.Sprintf("%d files", s.Files)
					} else {
						detail = fmt.Sprintf("%d bytes", s.Size)
					}
				}
				rows = append(rows, []string{s.Name, status, detail, s.Path})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Output", "Status", "Size", "Path"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))

			idx, err := manager.IndexStats()
			if err != nil {
				logger.Warn("library index unreadable", "error", err)
				return nil
			}
			if !idx.Exists {
				return nil
			}

			genres := make([]string, 0, len(idx.Genres))
			for g := range idx.Genres {
				genres = append(genres, g)
			}
			sort.Strings(genres)
			genreRows := make([][]string, 0, len(genres))
			for _, g := range genres {
				genreRows = append(genreRows, []string{g, strconv.FormatInt(idx.Genres[g], 10)})
			}
			fmt.Fprintf(out, "\nIndexed songs: %d\n", idx.Songs)
			fmt.Fprintln(out, renderTable([]string{"Genre", "Songs"}, genreRows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}
}
