package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psantana5/chronograph/internal/probes"
	"github.com/psantana5/chronograph/pkg/api"
	"github.com/psantana5/chronograph/pkg/chronograph"
)

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Time a sequence of host probes",
	Long:  `Run a sequence of host probes (CPU, memory, disk, host info), timing each one as a labeled split, then render the recorded splits.`,
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	cg := chronograph.GetChronographWith("host-probes", chronograph.Options{
		Verbosity: verbosity,
	})

	if err := probes.Run(cg, probes.Defaults()); err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}

	return renderDetail(api.Detail{
		Name:         cg.Name(),
		ID:           cg.ID(),
		Running:      cg.Running(),
		TotalSeconds: cg.Seconds(),
		Splits:       cg.Splits(),
	})
}
