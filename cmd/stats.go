package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bynzo/biblio/internal/library"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show library statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			stats, err := library.NewManager(st).Stats()
			if err != nil {
				return err
			}

			fmt.Printf("Books:   %d\n", stats.Total)
			fmt.Printf("Read:    %d\n", stats.Read)
			fmt.Printf("Rated:   %d\n", stats.Rated)
			if stats.Rated > 0 {
				fmt.Printf("Average: %.1f %s\n", stats.AverageRating, library.Stars(int(stats.AverageRating+0.5)))
			}
			return nil
		},
	}
}
