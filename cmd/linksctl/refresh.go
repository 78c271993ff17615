package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Regenerate every feed artifact from the ledger",
	RunE:  runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	resp, err := httpClient().Post(apiURL("/refresh-feeds"), "application/json", nil)
	if err != nil {
		return fmt.Errorf("calling server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return readError(resp)
	}

	fmt.Println("Feeds regenerated")
	return nil
}
