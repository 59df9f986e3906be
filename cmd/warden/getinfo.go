package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var infoOut string

var getinfoCmd = &cobra.Command{
	Use:   "getinfo [userid]",
	Short: "Dump the raw dataset record for a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		userid := args[0]
		svc := newService()

		snap, err := svc.Snapshot()
		if err != nil {
			fatal("Failed to load dataset", err)
		}

		raw, ok := snap.RawRecord(userid)
		if !ok {
			fmt.Println("No such user in db")
			return
		}

		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			fatal("Failed to render record", err)
		}
		writeOutput(infoOut, buf.String())
	},
}

func init() {
	rootCmd.AddCommand(getinfoCmd)
	getinfoCmd.Flags().StringVarP(&infoOut, "out", "o", "", "Write the record to a file")
}
