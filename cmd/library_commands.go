package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bynzo/biblio/internal/library"
)

func newAddCmd() *cobra.Command {
	var (
		author string
		year   string
	)

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a book by hand, without scanning",
		Example: `  biblio add "Dune" --author "Frank Herbert" --year 1965
  biblio add "Some Obscure Zine"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if author == "" {
				author = "Unknown"
			}
			if year == "" {
				year = "Unknown"
			}

			manager := library.NewManager(st)
			added, err := manager.AddIfNew(args[0], author, year)
			if err != nil {
				return err
			}
			if !added {
				fmt.Printf("%q is already in the library\n", strings.TrimSpace(args[0]))
				return nil
			}
			fmt.Printf("Added %q by %s (%s)\n", strings.TrimSpace(args[0]), author, year)
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Author name (default Unknown)")
	cmd.Flags().StringVar(&year, "year", "", "Publication year (default Unknown)")

	return cmd
}

func newListCmd() *cobra.Command {
	var (
		readOnly   bool
		unreadOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the library",
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

			rows := make([][]string, 0, len(books))
			for i, b := range books {
				if readOnly && !b.Read {
					continue
				}
				if unreadOnly && b.Read {
					continue
				}
				status := ""
				if b.Read {
					status = "read"
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					b.Title,
					b.Author,
					b.Year,
					status,
					library.Stars(b.Rating),
				})
			}

			if len(rows) == 0 {
				fmt.Println("Library is empty")
				return nil
			}

			fmt.Println(renderTable(
				[]string{"#", "Title", "Author", "Year", "Status", "Rating"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&readOnly, "read", false, "Show only books marked as read")
	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Show only books not yet read")

	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove NUMBER",
		Aliases: []string{"rm"},
		Short:   "Remove a book from the library",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := library.NewManager(st).Delete(index); err != nil {
				return err
			}
			fmt.Printf("Removed book #%s\n", args[0])
			return nil
		},
	}
}

func newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read NUMBER",
		Short: "Toggle a book between read and unread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			manager := library.NewManager(st)
			if err := manager.ToggleRead(index); err != nil {
				return err
			}

			books, err := manager.List()
			if err != nil {
				return err
			}
			if books[index].Read {
				fmt.Printf("Marked %q as read\n", books[index].Title)
			} else {
				fmt.Printf("Marked %q as unread\n", books[index].Title)
			}
			return nil
		},
	}
}

func newRateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate NUMBER RATING",
		Short: "Rate a book from 1 to 5 stars",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			rating, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid rating: %q", args[1])
			}

			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := library.NewManager(st).SetRating(index, rating); err != nil {
				return err
			}
			fmt.Printf("Rated book #%s %s\n", args[0], library.Stars(rating))
			return nil
		},
	}
}

func newEditCmd() *cobra.Command {
	var (
		title  string
		author string
		year   string
	)

	cmd := &cobra.Command{
		Use:   "edit NUMBER",
		Short: "Edit a book's title, author or year",
		Long: `Updates the given fields of a book. Fields not passed, or passed
as blank, keep their current value.`,
		Example: `  biblio edit 3 --author "Ursula K. Le Guin"
  biblio edit 3 --title "The Dispossessed" --year 1974`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := library.NewManager(st).Edit(index, title, author, year); err != nil {
				return err
			}
			fmt.Printf("Updated book #%s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&author, "author", "", "New author")
	cmd.Flags().StringVar(&year, "year", "", "New publication year")

	return cmd
}

func newNotesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notes NUMBER [TEXT]",
		Short: "Set or clear a book's notes",
		Long:  `Replaces the book's notes with TEXT. With no TEXT, clears the notes.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			notes := strings.Join(args[1:], " ")
			if err := library.NewManager(st).SetNotes(index, notes); err != nil {
				return err
			}
			if strings.TrimSpace(notes) == "" {
				fmt.Printf("Cleared notes for book #%s\n", args[0])
			} else {
				fmt.Printf("Updated notes for book #%s\n", args[0])
			}
			return nil
		},
	}
}
