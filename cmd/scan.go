package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bynzo/biblio/internal/capture"
	"github.com/bynzo/biblio/internal/ingest"
	"github.com/bynzo/biblio/internal/ocr"
)

func newScanCmd() *cobra.Command {
	var (
		engineName string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "scan IMAGE [IMAGE...]",
		Short: "Scan book images and add recognized titles to the library",
		Long: `Extracts text from each image with OCR, refines it into title
candidates, looks up author and publication year in Open Library, and
adds every title that is not already in the library.

Images that were scanned before are answered from the local OCR cache
without calling the OCR service again.`,
		Example: `  # Scan a single cover photo
  biblio scan cover.jpg

  # Scan a shelf, one photo per book spine
  biblio scan spine1.jpg spine2.jpg spine3.jpg

  # Use the local Tesseract engine instead of the remote proxy
  biblio scan --engine tesseract cover.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			service, _, err := buildIngest(st, engineName, timeout)
			if err != nil {
				return err
			}

			failures := 0
			for _, path := range args {
				img, err := capture.Load(path)
				if err != nil {
					fmt.Printf("%s: %v\n", path, err)
					failures++
					continue
				}

				report, err := service.Scan(cmd.Context(), img, path)
				if err != nil {
					if errors.Is(err, ocr.ErrNoText) {
						fmt.Printf("%s: no text found in image\n", path)
					} else {
						fmt.Printf("%s: %v\n", path, err)
					}
					failures++
					continue
				}

				printReport(path, report)
			}

			if failures == len(args) {
				return fmt.Errorf("no image could be scanned")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&engineName, "engine", "", "OCR engine: proxy, gemini, or tesseract (default from BIBLIO_OCR_ENGINE, then proxy)")
	cmd.Flags().DurationVar(&timeout, "timeout", ocr.DefaultTimeout, "Timeout per remote call")

	return cmd
}

func printReport(path string, report *ingest.Report) {
	fmt.Printf("%s:", path)
	if report.CacheHit {
		fmt.Print(" (cached)")
	}
	fmt.Println()

	if len(report.Outcomes) == 0 {
		fmt.Println("  no title candidates")
		return
	}
	for _, o := range report.Outcomes {
		if o.Added {
			fmt.Printf("  + %s by %s (%s)\n", o.Title, o.Author, o.Year)
		} else {
			fmt.Printf("  = %s (already in library)\n", o.Title)
		}
	}
}
