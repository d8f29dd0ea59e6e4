package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pipeforge-labs/pipeforge-console/internal/client"
	"github.com/pipeforge-labs/pipeforge-console/pkg/output"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Script management commands",
	Long:  "Upload, edit, delete and run pipeline scripts",
}

var scriptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all scripts",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := resourceCreds()
		if err != nil {
			return err
		}

		result := client.NewScriptClient(resolveAPIURL(), creds).List()
		if !result.Success {
			return fmt.Errorf("failed to list scripts: %s", result.Message)
		}

		if jsonOutput() {
			return output.JSON(result)
		}

		output.Info("Scripts (%d total):", result.Count)
		table := output.NewTable([]string{"ID", "NAME", "GROUP TYPE", "CREATED BY", "UPDATED"})
		for _, s := range result.Data {
			table.AddRow([]string{
				strconv.FormatInt(s.ID, 10), s.Name, s.GroupType, s.CreatedBy, s.UpdatedTime,
			})
		}
		table.Render()
		return nil
	},
}

var scriptUploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a new script",
	Long:  "Upload a script file with its metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]
		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		groupType, _ := cmd.Flags().GetString("group-type")

		if name == "" {
			name = filepath.Base(filePath)
		}

		file, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("cannot open %s: %w", filePath, err)
		}
		defer file.Close()

		creds, err := resourceCreds()
		if err != nil {
			return err
		}

		result := client.NewScriptClient(resolveAPIURL(), creds).Upload(client.UploadScriptRequest{
			Name:        name,
			Description: description,
			GroupType:   groupType,
			FileName:    filepath.Base(filePath),
			File:        file,
		})
		if !result.Success {
			return fmt.Errorf("failed to upload script: %s", result.Message)
		}

		output.Success("%s", result.Message)
		if result.ScriptID != "" {
			output.Info("Script ID: %s", result.ScriptID)
		}
		return nil
	},
}

var scriptEditCmd = &cobra.Command{
	Use:   "edit [script-id]",
	Short: "Edit script metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid script id %q", args[0])
		}

		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		groupType, _ := cmd.Flags().GetString("group-type")

		creds, err := resourceCreds()
		if err != nil {
			return err
		}

		result := client.NewScriptClient(resolveAPIURL(), creds).Edit(id, client.EditScriptRequest{
			Name:        name,
			Description: description,
			GroupType:   groupType,
		})
		if !result.Success {
			return fmt.Errorf("failed to edit script: %s", result.Message)
		}

		output.Success("%s", result.Message)
		return nil
	},
}

var scriptDeleteCmd = &cobra.Command{
	Use:   "delete [script-id]",
	Short: "Delete a script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid script id %q", args[0])
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			return fmt.Errorf("use --force to confirm script deletion")
		}

		creds, err := resourceCreds()
		if err != nil {
			return err
		}

		result := client.NewScriptClient(resolveAPIURL(), creds).Delete(id)
		if !result.Success {
			return fmt.Errorf("failed to delete script: %s", result.Message)
		}

		output.Success("%s", result.Message)
		return nil
	},
}

var scriptRunCmd = &cobra.Command{
	Use:   "run [script-id]",
	Short: "Run a script",
	Long:  "Start a simulated execution of the script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid script id %q", args[0])
		}

		creds, err := resourceCreds()
		if err != nil {
			return err
		}

		result := client.NewScriptClient(resolveAPIURL(), creds).Run(id)
		if !result.Success {
			return fmt.Errorf("failed to run script: %s", result.Message)
		}

		output.Success("%s", result.Message)
		output.Info("Watch progress with 'pfc tracking --follow'")
		return nil
	},
}

var scriptDropdownCmd = &cobra.Command{
	Use:   "dropdown",
	Short: "List scripts in dropdown form",
	Long:  "Display the reduced id/name script listing used by select inputs",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := resourceCreds()
		if err != nil {
			return err
		}

		result := client.NewScriptClient(resolveAPIURL(), creds).Dropdown()
		if !result.Success {
			return fmt.Errorf("failed to fetch available scripts: %s", result.Message)
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
	rootCmd.AddCommand(scriptCmd)
	scriptCmd.AddCommand(scriptListCmd)
	scriptCmd.AddCommand(scriptUploadCmd)
	scriptCmd.AddCommand(scriptEditCmd)
	scriptCmd.AddCommand(scriptDeleteCmd)
	scriptCmd.AddCommand(scriptRunCmd)
	scriptCmd.AddCommand(scriptDropdownCmd)

	scriptUploadCmd.Flags().StringP("name", "n", "", "Script name (defaults to the file name)")
	scriptUploadCmd.Flags().StringP("description", "d", "", "Script description (required)")
	scriptUploadCmd.Flags().StringP("group-type", "g", "", "Group type (required)")
	scriptUploadCmd.MarkFlagRequired("description")
	scriptUploadCmd.MarkFlagRequired("group-type")

	scriptEditCmd.Flags().StringP("name", "n", "", "New name")
	scriptEditCmd.Flags().StringP("description", "d", "", "New description")
	scriptEditCmd.Flags().StringP("group-type", "g", "", "New group type")

	scriptDeleteCmd.Flags().BoolP("force", "f", false, "Force deletion without confirmation")
}
