package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pipeforge-labs/pipeforge-console/internal/client"
	"github.com/pipeforge-labs/pipeforge-console/pkg/output"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project management commands",
	Long:  "Manage pipeline projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := resourceCreds()
		if err != nil {
			return err
		}

		result := client.NewProjectClient(resolveAPIURL(), creds).List()
		if !result.Success {
			return fmt.Errorf("failed to list projects: %s", result.Message)
		}

		if jsonOutput() {
			return output.JSON(result)
		}

		output.Info("Projects (%d total):", result.Count)
		table := output.NewTable([]string{"ID", "NAME", "STATUS", "GROUPS", "CREATED BY"})
		for _, p := range result.Data {
			table.AddRow([]string{
				strconv.FormatInt(p.ID, 10), p.Name, p.Status,
				strings.Join(p.Groups, ","), p.CreatedBy,
			})
		}
		table.Render()
		return nil
	},
}

var projectAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new project",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		status, _ := cmd.Flags().GetString("status")

		creds, err := resourceCreds()
		if err != nil {
			return err
		}

		result := client.NewProjectClient(resolveAPIURL(), creds).Add(client.AddProjectRequest{
			Name:        name,
			Description: description,
			Status:      status,
		})
		if !result.Success {
			return fmt.Errorf("failed to add project: %s", result.Message)
		}

		output.Success("%s", result.Message)
		if result.ProjectID != 0 {
			output.Info("Project ID: %d", result.ProjectID)
		}
		return nil
	},
}

var projectEditCmd = &cobra.Command{
	Use:   "edit [project-id]",
	Short: "Edit a project",
	Long:  "Update a project's name, description or status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project id %q", args[0])
		}

		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		status, _ := cmd.Flags().GetString("status")

		creds, err := resourceCreds()
		if err != nil {
			return err
		}

		result := client.NewProjectClient(resolveAPIURL(), creds).Edit(id, client.EditProjectRequest{
			Name:        name,
			Description: description,
			Status:      status,
		})
		if !result.Success {
			return fmt.Errorf("failed to edit project: %s", result.Message)
		}

		output.Success("%s", result.Message)
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [project-id]",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project id %q", args[0])
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			return fmt.Errorf("use --force to confirm project deletion")
		}

		creds, err := resourceCreds()
		if err != nil {
			return err
		}

		result := client.NewProjectClient(resolveAPIURL(), creds).Delete(id)
		if !result.Success {
			return fmt.Errorf("failed to delete project: %s", result.Message)
		}

		output.Success("%s", result.Message)
		return nil
	},
}

var projectDropdownCmd = &cobra.Command{
	Use:   "dropdown",
	Short: "List projects in dropdown form",
	Long:  "Display the reduced id/name project listing used by select inputs",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := resourceCreds()
		if err != nil {
			return err
		}

		result := client.NewProjectClient(resolveAPIURL(), creds).Dropdown()
		if !result.Success {
			return fmt.Errorf("failed to fetch dropdown projects: %s", result.Message)
		}

		if jsonOutput() {
			return output.JSON(result)
		}

		table := output.NewTable([]string{"ID", "NAME"})
		for _, opt := range result.Data {
			table.AddRow([]string{strconv.FormatInt(opt.ID, 10), opt.Name})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectEditCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	projectCmd.AddCommand(projectDropdownCmd)

	projectAddCmd.Flags().StringP("name", "n", "", "Project name (required)")
	projectAddCmd.Flags().StringP("description", "d", "", "Project description")
	projectAddCmd.Flags().String("status", "", "Initial status")
	projectAddCmd.MarkFlagRequired("name")

	projectEditCmd.Flags().StringP("name", "n", "", "New name")
	projectEditCmd.Flags().StringP("description", "d", "", "New description")
	projectEditCmd.Flags().String("status", "", "New status")

	projectDeleteCmd.Flags().BoolP("force", "f", false, "Force deletion without confirmation")
}
