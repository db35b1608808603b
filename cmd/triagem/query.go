package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lewtec/triagem/internal/repository"
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query <project folder>",
	Short: "Print library statistics",
	Long:  `Print how many images the library holds, broken down by source label and by creation year.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := resolveProject(cmd, args)
		if err != nil {
			return err
		}
		db, err := repository.Open(p.DatabaseFile)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		repo := repository.NewLibraryRepository(db)

		stats, err := repo.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("while loading library stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "total\t%d\n", stats.TotalImages)

		sources := make([]string, 0, len(stats.CountsBySource))
		for s := range stats.CountsBySource {
			sources = append(sources, s)
		}
		sort.Strings(sources)
		for _, s := range sources {
			fmt.Fprintf(out, "source\t%s\t%d\n", s, stats.CountsBySource[s])
		}

		years := make([]int, 0, len(stats.CountsByYear))
		for y := range stats.CountsByYear {
			years = append(years, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(years)))
		for _, y := range years {
			fmt.Fprintf(out, "year\t%d\t%d\n", y, stats.CountsByYear[y])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
