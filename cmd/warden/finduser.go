package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var finduserCmd = &cobra.Command{
	Use:   "finduser [username]",
	Short: "List userids carrying the given username",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]
		svc := newService()

		snap, err := svc.Snapshot()
		if err != nil {
			fatal("Failed to load dataset", err)
		}

		ids, ok := snap.FindByUsername(username)
		if !ok {
			fmt.Println("No userids found")
			return
		}

		fmt.Println("List of userids found:")
		for _, id := range ids {
			fmt.Println(id)
		}
		fmt.Println()
		fmt.Println("Note: usernames change and can be wrongly scraped; prefer userids.")
	},
}

func init() {
	rootCmd.AddCommand(finduserCmd)
}
