package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"library-catalog/library"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	var (
		asJSON bool
		store  string
	)
	cmd := &cobra.Command{
		Use:          "catalog_dump",
		Short:        "Print the catalog a fresh library starts with",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			manager, err := library.NewLibraryManager(library.StoreKind(store), nil)
			if err != nil {
				return fmt.Errorf("open library: %w", err)
			}
			defer manager.Close()

			books, err := manager.Catalog.Books()
			if err != nil {
				return fmt.Errorf("list books: %w", err)
			}
			if asJSON {
				return writeJSON(os.Stdout, books)
			}
			writeTable(os.Stdout, books)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	cmd.Flags().StringVar(&store, "store", string(library.StoreMemory), "record store: memory or sqlite")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func writeJSON(w io.Writer, books []*library.Book) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(books)
}

func writeTable(w io.Writer, books []*library.Book) {
	fmt.Fprintf(w, "%-3s %-50s %-30s %s\n", "ID", "Title", "Author", "Available")
	fmt.Fprintln(w, strings.Repeat("-", 95))
	for _, book := range books {
		availStr := "Yes"
		if !book.Available {
			availStr = "No"
		}
		fmt.Fprintf(w, "%-3d %-50s %-30s %s\n", book.ID, truncateString(book.Title, 50), truncateString(book.Author, 30), availStr)
	}
}

// truncateString shortens s to maxLen runes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
