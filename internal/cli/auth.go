package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pipeforge-labs/pipeforge-console/internal/client"
	"github.com/pipeforge-labs/pipeforge-console/pkg/output"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Manage the console session",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the console backend",
	Long:  "Authenticate against the backend and save the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		store, err := openStore()
		if err != nil {
			return fmt.Errorf("failed to open credentials store: %w", err)
		}

		authClient := client.NewAuthClient(resolveAPIURL(), store)
		result := authClient.Login(username, password)
		if !result.Success {
			return fmt.Errorf("login failed: %s", result.Message)
		}

		output.Success("Logged in as %s (%s)", result.Username, result.Role)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	Long:  "Remove the stored session token and cached profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("failed to open credentials store: %w", err)
		}

		authClient := client.NewAuthClient(resolveAPIURL(), store)
		if err := authClient.Logout(); err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}

		output.Success("Logged out")
		return nil
	},
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Display the current user",
	Long:  "Show who the stored session belongs to",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("failed to open credentials store: %w", err)
		}

		authClient := client.NewAuthClient(resolveAPIURL(), store)
		profile := authClient.Verify()
		if profile == nil {
			return fmt.Errorf("not logged in, run 'pfc auth login'")
		}

		if jsonOutput() {
			return output.JSON(profile)
		}

		output.Info("Username: %s", profile.Username)
		output.Info("Role:     %s", profile.Role)
		if profile.Email != "" {
			output.Info("Email:    %s", profile.Email)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)

	authLoginCmd.Flags().StringP("username", "u", "", "Username")
	authLoginCmd.Flags().StringP("password", "p", "", "Password")
	authLoginCmd.MarkFlagRequired("username")
	authLoginCmd.MarkFlagRequired("password")
}
