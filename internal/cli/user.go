package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pipeforge-labs/pipeforge-console/internal/client"
	"github.com/pipeforge-labs/pipeforge-console/pkg/output"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "User management commands",
	Long:  "Manage console users",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := resourceCreds()
		if err != nil {
			return err
		}

		result := client.NewUserClient(resolveAPIURL(), creds).List()
		if !result.Success {
			return fmt.Errorf("failed to list users: %s", result.Message)
		}

		if jsonOutput() {
			return output.JSON(result)
		}

		output.Info("Users (%d total):", result.Count)
		table := output.NewTable([]string{"ID", "USERNAME", "EMAIL", "ROLE", "CREATED"})
		for _, u := range result.Data {
			table.AddRow([]string{
				strconv.FormatInt(u.ID, 10), u.Username, u.Email, u.Role, u.CreatedTime,
			})
		}
		table.Render()
		return nil
	},
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new user",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		email, _ := cmd.Flags().GetString("email")
		role, _ := cmd.Flags().GetString("role")

		creds, err := resourceCreds()
		if err != nil {
			return err
		}

		result := client.NewUserClient(resolveAPIURL(), creds).Add(client.AddUserRequest{
			Username: username,
			Password: password,
			Email:    email,
			Role:     role,
		})
		if !result.Success {
			return fmt.Errorf("failed to add user: %s", result.Message)
		}

		output.Success("%s", result.Message)
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete [user-id]",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			return fmt.Errorf("use --force to confirm user deletion")
		}

		creds, err := resourceCreds()
		if err != nil {
			return err
		}

		result := client.NewUserClient(resolveAPIURL(), creds).Delete(id)
		if !result.Success {
			return fmt.Errorf("failed to delete user: %s", result.Message)
		}

		output.Success("%s", result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userDeleteCmd)

	userAddCmd.Flags().StringP("username", "u", "", "Username (required)")
	userAddCmd.Flags().StringP("password", "p", "", "Password (required)")
	userAddCmd.Flags().StringP("email", "e", "", "Email address (required)")
	userAddCmd.Flags().StringP("role", "r", "USER", "Role: ADMIN or USER")
	userAddCmd.MarkFlagRequired("username")
	userAddCmd.MarkFlagRequired("password")
	userAddCmd.MarkFlagRequired("email")

	userDeleteCmd.Flags().BoolP("force", "f", false, "Force deletion without confirmation")
}
