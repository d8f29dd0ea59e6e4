package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pipeforge-labs/pipeforge-console/internal/client"
	"github.com/pipeforge-labs/pipeforge-console/pkg/output"
)

// followInterval matches the tracking page's refresh cadence.
const followInterval = 3 * time.Second

var trackingCmd = &cobra.Command{
	Use:   "tracking",
	Short: "Show running script executions",
	Long:  "Display the execution tracking view, optionally refreshing until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		follow, _ := cmd.Flags().GetBool("follow")

		creds, err := resourceCreds()
		if err != nil {
			return err
		}
		scriptClient := client.NewScriptClient(resolveAPIURL(), creds)

		for {
			result := scriptClient.Tracking()
			if !result.Success {
				return fmt.Errorf("failed to fetch running scripts: %s", result.Message)
			}

			if jsonOutput() {
				if err := output.JSON(result); err != nil {
					return err
				}
			} else {
				renderTracking(result)
			}

			if !follow {
				return nil
			}
			time.Sleep(followInterval)
		}
	},
}

func renderTracking(result client.TrackingResult) {
	output.Info("Executions (%d total):", result.Count)
	table := output.NewTable([]string{"ID", "SCRIPT", "GROUP", "PROJECT", "STATUS", "PROGRESS", "STARTED"})
	for _, row := range result.Data {
		table.AddRow([]string{
			strconv.FormatInt(row.ID, 10),
			row.ScriptName,
			row.Group,
			row.Project,
			row.Status,
			fmt.Sprintf("%d%%", row.Progress),
			row.StartTime,
		})
	}
	table.Render()
}

func init() {
	rootCmd.AddCommand(trackingCmd)

	trackingCmd.Flags().BoolP("follow", "f", false, "Refresh every few seconds until interrupted")
}
