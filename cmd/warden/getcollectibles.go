package main

import (
	"github.com/spf13/cobra"
)

var (
	collectiblesVerified string
	collectiblesOut      string
)

var getcollectiblesCmd = &cobra.Command{
	Use:   "getcollectibles [prefix]",
	Short: "List users owning a collectible with the given name prefix",
	Long: `Render a summary line for every non-terminated user having at least
one collectible whose name starts with the given prefix (case-insensitive).
Each user appears once even when several collectibles match.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		prefix := args[0]

		verified, err := parseVerified(collectiblesVerified)
		if err != nil {
			fatal("Invalid flag", err)
		}

		svc := newService()
		snap, err := svc.Snapshot()
		if err != nil {
			fatal("Failed to load dataset", err)
		}

		users := snap.FindByCollectiblePrefix(prefix, verified)
		writeOutput(collectiblesOut, snap.SummaryLines(users))
	},
}

func init() {
	rootCmd.AddCommand(getcollectiblesCmd)
	getcollectiblesCmd.Flags().StringVar(&collectiblesVerified, "verified", "", "Filter by verification (yes/no)")
	getcollectiblesCmd.Flags().StringVarP(&collectiblesOut, "out", "o", "", "Write results to a file")
}
