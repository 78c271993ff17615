package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show published entries",
	Long: `List the entries currently in the ledger, newest first.

Examples:
  linksctl list
  linksctl list --json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().Bool("json", false, "output as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	resp, err := httpClient().Get(apiURL("/"))
	if err != nil {
		return fmt.Errorf("calling server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		fmt.Println("No submissions yet")
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return readError(resp)
	}

	var ledger struct {
		Updated time.Time `json:"updated"`
		Entries []struct {
			ID           string `json:"id"`
			Title        string `json:"title"`
			OriginalLink string `json:"original_link"`
		} `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ledger); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ledger)
	}

	fmt.Printf("Updated: %s\n", ledger.Updated.Format(time.RFC3339))
	for _, e := range ledger.Entries {
		fmt.Printf("%s\t%s\t%s\n", e.ID, e.Title, e.OriginalLink)
	}
	fmt.Printf("Total: %d entr(ies)\n", len(ledger.Entries))
	return nil
}
