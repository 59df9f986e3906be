package main

import (
	"github.com/spf13/cobra"
)

var (
	assetsVerified string
	assetsOut      string
)

var getassetsCmd = &cobra.Command{
	Use:   "getassets [asset]",
	Short: "List users owning the given catalog asset",
	Long: `Resolve an asset display name (either of its two aliases,
case-insensitive) and render a summary line for every non-terminated
owner, including the total value of their holdings.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		asset := args[0]

		verified, err := parseVerified(assetsVerified)
		if err != nil {
			fatal("Invalid flag", err)
		}

		svc := newService()
		snap, err := svc.Snapshot()
		if err != nil {
			fatal("Failed to load dataset", err)
		}

		users := snap.FindByAsset(asset, verified)
		writeOutput(assetsOut, snap.SummaryLines(users))
	},
}

func init() {
	rootCmd.AddCommand(getassetsCmd)
	getassetsCmd.Flags().StringVar(&assetsVerified, "verified", "", "Filter by verification (yes/no)")
	getassetsCmd.Flags().StringVarP(&assetsOut, "out", "o", "", "Write results to a file")
}
