package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit <url>",
	Short: "Convert a page and publish it to the feed",
	Long: `Submit a URL to the server. The page is fetched, converted and added
to the ledger, and every feed artifact is regenerated.

Examples:
  linksctl submit https://example.com/article
  linksctl submit https://example.com/article --title "Better Title"`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().String("title", "", "override the scraped title")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")

	payload, err := json.Marshal(map[string]string{
		"url":   args[0],
		"title": title,
	})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	logger.Debug("submitting", "url", args[0], "server", serverURL)
	resp, err := httpClient().Post(apiURL("/submit"), "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("calling server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readError(resp)
	}

	var out struct {
		ID    string `json:"id"`
		URL   string `json:"url"`
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	fmt.Printf("%s\t%s\n", out.ID, out.Title)
	return nil
}
