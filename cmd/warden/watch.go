package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow external changes to the notes document",
	Long: `Watch the notes document and report every modification, including
writes by other processes sharing the file. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := newService()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Println("Watching notes document (Ctrl-C to stop)")
		err := svc.Watch(ctx, func() {
			ids, _, err := svc.Notes().ListIndex(ctx)
			stamp := time.Now().Format(time.TimeOnly)
			if err != nil {
				fmt.Printf("%s notes document changed (unreadable: %v)\n", stamp, err)
				return
			}
			fmt.Printf("%s notes document changed (%d records)\n", stamp, len(ids))
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			fatal("Watch failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
