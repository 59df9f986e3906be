package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var removenoteCmd = &cobra.Command{
	Use:   "removenote [userid]",
	Short: "Remove the note for a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		userid := args[0]
		svc := newService()

		if _, err := resolveCreator(svc); err != nil {
			fatal("Refusing note removal", err)
		}

		existed, err := svc.Notes().Remove(context.Background(), userid)
		if err != nil {
			fatal("Failed to remove note", err)
		}

		if existed {
			fmt.Printf("Removed note for %s\n", userid)
		} else {
			fmt.Printf("There is no note for %s\n", userid)
		}
	},
}

func init() {
	rootCmd.AddCommand(removenoteCmd)
}
