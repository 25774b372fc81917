package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/psantana5/chronograph/pkg/api"
)

// renderDetail prints one chronograph in the selected output format.
func renderDetail(detail api.Detail) error {
	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(detail, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(detail)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		fmt.Print(string(data))
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Split", "Start", "Duration", "Status")

		for _, s := range detail.Splits {
			status := "done"
			duration := time.Duration(0)
			if s.Stop != nil {
				duration = s.Stop.Sub(s.Start)
			} else {
				status = "still running"
				duration = time.Since(s.Start)
			}
			table.Append([]string{
				s.Label,
				s.Start.Format(time.RFC3339),
				fmt.Sprintf("%.3fs", duration.Seconds()),
				status,
			})
		}
		table.Render()
		fmt.Printf("Chronograph %s: total elapsed time %.3fs\n", detail.Name, detail.TotalSeconds)
	}
	return nil
}
