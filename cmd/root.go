package cmd

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	dataDir      string
	storeBackend string
	verbose      bool
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "biblio",
		Short: "Personal book library with OCR-powered scanning",
		Long: `Biblio keeps a personal book library on your machine.

Scan a photo of a book cover or spine to extract its title with OCR,
look up author and publication year in Open Library, and track read
status, ratings and notes for every book you own.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "Directory holding the library and OCR cache")
	cmd.PersistentFlags().StringVar(&storeBackend, "store", "file", "Storage backend: file, sqlite, or memory")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newRemoveCmd())
	cmd.AddCommand(newReadCmd())
	cmd.AddCommand(newRateCmd())
	cmd.AddCommand(newEditCmd())
	cmd.AddCommand(newNotesCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newCacheCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

func defaultDataDir() string {
	if dir := os.Getenv("BIBLIO_DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".biblio"
	}
	return filepath.Join(home, ".biblio")
}
