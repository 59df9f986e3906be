package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"github.com/wardenbot/warden/pkg/dataset"
)

var (
	extractTrailingSpace bool
	extractOut           string
)

var extractpartsCmd = &cobra.Command{
	Use:   "extractparts [separator] [index] [files...]",
	Short: "Extract one column from delimited text files",
	Long: `Split every line of the input files on the separator and keep the
part at the given 1-based index. Lines with too few parts are skipped.
File arguments may be glob patterns (e.g. dumps/*.txt).`,
	Args: cobra.MinimumNArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		sep := args[0]
		index, err := strconv.Atoi(args[1])
		if err != nil || index < 1 {
			fatal("Invalid index", fmt.Errorf("%q is not a positive integer", args[1]))
		}
		if extractTrailingSpace {
			// Shell quoting eats trailing spaces; this restores "sep "
			// separators like ", ".
			sep += " "
		}

		var files []string
		for _, pattern := range args[2:] {
			matches, err := doublestar.FilepathGlob(pattern)
			if err != nil {
				fatal("Invalid file pattern", err)
			}
			if len(matches) == 0 {
				fatal("No files matched", fmt.Errorf("pattern %q", pattern))
			}
			files = append(files, matches...)
		}

		var lines []string
		for _, file := range files {
			data, err := os.ReadFile(file)
			if err != nil {
				fatal("Failed to read input file", err)
			}
			lines = append(lines, strings.Split(string(data), "\n")...)
		}

		result := dataset.ExtractColumn(lines, sep, index)
		fmt.Printf("Separator: %q, column #%d, %d file(s)\n", sep, index, len(files))
		writeOutput(extractOut, result)
	},
}

func init() {
	rootCmd.AddCommand(extractpartsCmd)
	extractpartsCmd.Flags().BoolVar(&extractTrailingSpace, "trailing-space", false, "Treat the separator as having a trailing space")
	extractpartsCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Write results to a file")
}
