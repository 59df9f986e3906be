package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wardenbot/warden"
)

var (
	verbose    bool
	configPath string
	callerID   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "warden",
	Short: "Moderation notes and profile dataset queries",
	Long: `Warden keeps free-text moderation notes about external user ids and
answers ownership/identity queries over a scraped profile dataset.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a warden.yaml config file")
	rootCmd.PersistentFlags().StringVar(&callerID, "as", "", "Caller id used for creator attribution")
}

// newService builds the service from the configured (or default) paths.
func newService() *warden.Service {
	cfg, err := warden.LoadConfig(configPath)
	if err != nil {
		fatal("Failed to load config", err)
	}
	return warden.New(cfg, warden.WithLogger(slog.Default()))
}

// resolveCreator maps the --as caller id through the whitelist. When a
// whitelist document exists, note-mutating commands require --as to name a
// whitelisted caller; without one, anyone may write and attribution is
// whatever --as says (empty for anonymous records).
func resolveCreator(svc *warden.Service) (string, error) {
	wl, err := svc.Whitelist()
	if err != nil {
		return "", fmt.Errorf("failed to load whitelist: %w", err)
	}
	if len(wl) > 0 && !wl.Allowed(callerID) {
		if callerID == "" {
			return "", fmt.Errorf("a whitelist is configured, pass --as with a whitelisted caller id")
		}
		return "", fmt.Errorf("caller %q is not on the whitelist", callerID)
	}
	if callerID == "" {
		return "", nil
	}
	return wl.Resolve(callerID), nil
}

// parseVerified turns a yes/no flag value into the optional filter the
// dataset queries take. Empty means "no filter".
func parseVerified(s string) (*bool, error) {
	switch strings.ToLower(s) {
	case "":
		return nil, nil
	case "yes", "true":
		v := true
		return &v, nil
	case "no", "false":
		v := false
		return &v, nil
	}
	return nil, fmt.Errorf("invalid --verified value %q (want yes or no)", s)
}

// writeOutput sends query output to a file when -o is set, stdout otherwise.
func writeOutput(path, content string) {
	if path == "" {
		fmt.Println(content)
		return
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0644); err != nil {
		fatal("Failed to write output file", err)
	}
	fmt.Printf("Wrote %s\n", path)
}
