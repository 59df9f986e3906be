package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// entriesPerPage matches the original bot's page size.
const entriesPerPage = 10

var showPage int

var shownotesCmd = &cobra.Command{
	Use:   "shownotes",
	Short: "Show the index of all created notes",
	Long:  `List every note as an id/username pair, sorted by username, ten per page.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := newService()

		ids, usernames, err := svc.Notes().ListIndex(context.Background())
		if err != nil {
			fatal("Failed to list notes", err)
		}

		if len(ids) == 0 {
			fmt.Println("No notes yet")
			return
		}

		numPages := (len(ids) + entriesPerPage - 1) / entriesPerPage
		page := showPage
		if page < 1 {
			page = 1
		}
		if page > numPages {
			page = numPages
		}

		start := (page - 1) * entriesPerPage
		end := start + entriesPerPage
		if end > len(ids) {
			end = len(ids)
		}

		fmt.Printf("List of notes, page %d/%d\n", page, numPages)
		for i := start; i < end; i++ {
			fmt.Printf("%s: %s\n", ids[i], usernames[i])
		}
	},
}

func init() {
	rootCmd.AddCommand(shownotesCmd)
	shownotesCmd.Flags().IntVar(&showPage, "page", 1, "Page number")
}
