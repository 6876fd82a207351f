package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bynzo/biblio/internal/export"
	"github.com/bynzo/biblio/internal/library"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Export the library to a file",
		Long:  `Writes the library to FILE. The format follows the extension: .yaml, .jsonl, or .parquet.`,
		Example: `  biblio export library.yaml
  biblio export library.parquet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			books, err := library.NewManager(st).List()
			if err != nil {
				return err
			}
			if err := export.Write(args[0], books); err != nil {
				return err
			}
			fmt.Printf("Exported %d books to %s\n", len(books), args[0])
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import books from a file",
		Long: `Reads books from FILE (.yaml, .jsonl, or .parquet) and merges them
into the library. Titles already present are skipped; imported books
keep their read status, rating and notes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			books, err := export.Read(args[0])
			if err != nil {
				return err
			}

			added, err := library.NewManager(st).Merge(books)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d of %d books (%d already present)\n", added, len(books), len(books)-added)
			return nil
		},
	}
}
