package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addnoteCmd = &cobra.Command{
	Use:   "addnote [userid] [message...]",
	Short: "Append a note for a user",
	Long: `Append a message to the note for the given user id, creating the
record on first touch. Multiline notes are permitted; consecutive messages
are separated by a blank line.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		userid := args[0]
		message := strings.Join(args[1:], " ")

		svc := newService()
		creator, err := resolveCreator(svc)
		if err != nil {
			fatal("Refusing note update", err)
		}

		if err := svc.Notes().AddMessage(context.Background(), userid, message, creator); err != nil {
			fatal("Failed to add note", err)
		}

		fmt.Printf("Added note for %s\n", userid)
	},
}

func init() {
	rootCmd.AddCommand(addnoteCmd)
}
