package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wardenbot/warden/pkg/core"
)

var (
	ciUsername string
	ciAge      string
	ciRating   string
	ciMessage  string
)

var changeinfoCmd = &cobra.Command{
	Use:   "changeinfo [userid]",
	Short: "Change attributes on a user's note",
	Long: `Overwrite individual note attributes. Only flags that are actually
set are applied; --message REPLACES the whole message body (use addnote to
append instead).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		userid := args[0]

		var p core.Patch
		if cmd.Flags().Changed("username") {
			p.Username = &ciUsername
		}
		if cmd.Flags().Changed("age") {
			p.Age = &ciAge
		}
		if cmd.Flags().Changed("rating") {
			p.ProfilePictureRating = &ciRating
		}
		if cmd.Flags().Changed("message") {
			p.Message = &ciMessage
		}

		if p.IsZero() {
			fmt.Println("Nothing to change, pass at least one of --username, --age, --rating, --message")
			return
		}

		svc := newService()
		creator, err := resolveCreator(svc)
		if err != nil {
			fatal("Refusing note update", err)
		}

		if err := svc.Notes().ChangeInfo(context.Background(), userid, p, creator); err != nil {
			fatal("Failed to change info", err)
		}

		fmt.Printf("Updated note for %s\n", userid)
	},
}

func init() {
	rootCmd.AddCommand(changeinfoCmd)
	changeinfoCmd.Flags().StringVar(&ciUsername, "username", "", "Username attribute")
	changeinfoCmd.Flags().StringVar(&ciAge, "age", "", "Age attribute")
	changeinfoCmd.Flags().StringVar(&ciRating, "rating", "", "Profile picture rating attribute")
	changeinfoCmd.Flags().StringVar(&ciMessage, "message", "", "Replacement message body")
}
