package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wardenbot/warden/pkg/core"
)

var viewnoteCmd = &cobra.Command{
	Use:   "viewnote [userid]",
	Short: "View the note for a user",
	Long:  `View the stored note for the given user id: record fields as JSON, message body below.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		userid := args[0]
		svc := newService()

		n, err := svc.Notes().View(context.Background(), userid)
		if errors.Is(err, core.ErrNotFound) {
			fmt.Println("No notes for this user, use changeinfo or addnote to create a note")
			return
		}
		if err != nil {
			fatal("Failed to view note", err)
		}

		fmt.Println(renderNoteFields(n))
		if n.Message != "" {
			fmt.Println()
			fmt.Println(n.Message)
		}
	},
}

// renderNoteFields shows everything except the message body, which is
// printed separately as free text.
func renderNoteFields(n core.Note) string {
	fields := struct {
		UserID               string `json:"userid"`
		Username             string `json:"username"`
		Age                  string `json:"age"`
		ProfilePictureRating string `json:"profilePictureRating"`
		Creator              string `json:"creator"`
		CreatedAt            string `json:"createdAt"`
	}{n.UserID, n.Username, n.Age, n.ProfilePictureRating, n.Creator, n.CreatedAt}

	data, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		fatal("Failed to render note", err)
	}
	return string(data)
}

func init() {
	rootCmd.AddCommand(viewnoteCmd)
}
