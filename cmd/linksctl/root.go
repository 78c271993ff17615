package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	serverURL  string
	verbose    bool
	cliVersion = "dev"
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "linksctl",
	Short: "CLI for the links-to-epub service",
	Long: `linksctl talks to a running links-to-epub server.

Example usage:
  linksctl submit https://example.com/article   # Convert and publish a page
  linksctl list                                 # Show published entries
  linksctl refresh                              # Regenerate feed artifacts
  linksctl clear                                # Wipe all state`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
	},
}

func execute() error {
	return rootCmd.Execute()
}

func setVersion(v string) {
	cliVersion = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer(), "base URL of the links-to-epub server")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func defaultServer() string {
	if v := os.Getenv("LINKSCTL_SERVER"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func apiURL(path string) string {
	return strings.TrimRight(serverURL, "/") + path
}

func httpClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Minute}
}

// readError extracts the error message of a non-2xx response body.
func readError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = resp.Status
	}
	return fmt.Errorf("server returned %d: %s", resp.StatusCode, msg)
}
