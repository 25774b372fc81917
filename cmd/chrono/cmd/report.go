package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/psantana5/chronograph/pkg/api"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <name>",
	Short: "Show a chronograph from a running serve instance",
	Long:  `Fetch a named chronograph from a chrono serve instance and render its splits, or print its plain-text report with --text.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

var reportText bool

func init() {
	reportCmd.Flags().BoolVar(&reportText, "text", false, "print the plain-text report instead of structured output")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	name := args[0]

	path := "/api/v1/chronographs/" + name
	if reportText {
		path += "/report"
	}

	body, err := apiGet(path)
	if err != nil {
		return err
	}

	if reportText {
		fmt.Print(string(body))
		return nil
	}

	var detail api.Detail
	if err := json.Unmarshal(body, &detail); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return renderDetail(detail)
}

// apiGet performs an authenticated GET against the serve instance.
func apiGet(path string) ([]byte, error) {
	req, err := http.NewRequest("GET", serverURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to contact server at %s: %w", serverURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s: %s", resp.Status, string(body))
	}
	return body, nil
}
