package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pipeforge-labs/pipeforge-console/internal/client"
	"github.com/pipeforge-labs/pipeforge-console/pkg/output"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Script group commands",
	Long:  "Manage script groups, the ordered pipelines of scripts attached to a project",
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := resourceCreds()
		if err != nil {
			return err
		}

		result := client.NewGroupClient(resolveAPIURL(), creds).List()
		if !result.Success {
			return fmt.Errorf("failed to list groups: %s", result.Message)
		}

		if jsonOutput() {
			return output.JSON(result)
		}

		output.Info("Groups (%d total):", result.Count)
		table := output.NewTable([]string{"ID", "NAME", "PROJECT", "SCRIPTS", "CREATED BY"})
		for _, g := range result.Data {
			names := make([]string, 0, len(g.Scripts))
			for _, s := range g.Scripts {
				names = append(names, s.Name)
			}
			table.AddRow([]string{
				strconv.FormatInt(g.ID, 10), g.Name, g.Project,
				strings.Join(names, ","), g.CreatedBy,
			})
		}
		table.Render()
		return nil
	},
}

var groupAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new group",
	Long: `Create a script group. Scripts are given as repeated --script flags
in the form id:order:name, for example --script 10:1:extract.py.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		project, _ := cmd.Flags().GetString("project")
		scriptSpecs, _ := cmd.Flags().GetStringSlice("script")

		scripts, err := parseScriptOrders(scriptSpecs)
		if err != nil {
			return err
		}

		creds, err := resourceCreds()
		if err != nil {
			return err
		}

		result := client.NewGroupClient(resolveAPIURL(), creds).Add(client.AddGroupRequest{
			Name:        name,
			Description: description,
			Project:     project,
			Scripts:     scripts,
		})
		if !result.Success {
			return fmt.Errorf("failed to add group: %s", result.Message)
		}

		output.Success("%s", result.Message)
		return nil
	},
}

// parseScriptOrders turns id:order:name flag values into ordered script
// slots. Order and name are optional; order defaults to the position in
// the flag list.
func parseScriptOrders(specs []string) ([]client.ScriptOrder, error) {
	var orders []client.ScriptOrder
	for i, spec := range specs {
		parts := strings.SplitN(spec, ":", 3)

		id, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid script spec %q: id must be numeric", spec)
		}

		order := i + 1
		if len(parts) > 1 && parts[1] != "" {
			order, err = strconv.Atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("invalid script spec %q: order must be numeric", spec)
			}
		}

		name := ""
		if len(parts) > 2 {
			name = parts[2]
		}

		orders = append(orders, client.ScriptOrder{ScriptID: id, Order: order, Name: name})
	}
	return orders, nil
}

func init() {
	rootCmd.AddCommand(groupCmd)
	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupAddCmd)

	groupAddCmd.Flags().StringP("name", "n", "", "Group name (required)")
	groupAddCmd.Flags().StringP("description", "d", "", "Group description")
	groupAddCmd.Flags().StringP("project", "p", "", "Owning project name")
	groupAddCmd.Flags().StringSlice("script", nil, "Script in id:order:name form (repeatable)")
	groupAddCmd.MarkFlagRequired("name")
}
