package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/psantana5/chronograph/pkg/api"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List chronographs on a running serve instance",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	body, err := apiGet("/api/v1/chronographs")
	if err != nil {
		return err
	}

	var result struct {
		Chronographs []api.Summary `json:"chronographs" yaml:"chronographs"`
		Count        int           `json:"count" yaml:"count"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		fmt.Print(string(data))
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "Splits", "Running", "Total")

		for _, c := range result.Chronographs {
			running := "no"
			if c.Running {
				running = "yes"
			}
			table.Append([]string{
				c.Name,
				fmt.Sprintf("%d", c.Splits),
				running,
				fmt.Sprintf("%.3fs", c.TotalSeconds),
			})
		}
		table.Render()
	}
	return nil
}
