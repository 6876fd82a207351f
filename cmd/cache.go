package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bynzo/biblio/internal/models"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the OCR cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show OCR cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			cache, err := st.LoadCache()
			if err != nil {
				return err
			}
			fmt.Printf("Images: %d\n", len(cache))
			fmt.Printf("Lines:  %d\n", cache.Lines())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all cached OCR results",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			cache, err := st.LoadCache()
			if err != nil {
				return err
			}
			entries := len(cache)
			if err := st.SaveCache(models.OCRCache{}); err != nil {
				return err
			}
			fmt.Printf("Cleared %d cached scans\n", entries)
			return nil
		},
	})

	return cmd
}
