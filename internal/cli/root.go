// Package cli implements the pfc command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pipeforge-labs/pipeforge-console/internal/client"
	"github.com/pipeforge-labs/pipeforge-console/internal/credstore"
)

const defaultAPIURL = "http://localhost:8081"

var (
	credFile  string
	apiURL    string
	outputFmt string
)

var rootCmd = &cobra.Command{
	Use:   "pfc",
	Short: "Pipeforge console CLI",
	Long: `pfc is the command-line interface for the Pipeforge admin console.

Manage users, projects, script groups and scripts, upload and run
pipeline scripts, and watch simulated executions from your terminal.`,
	Version: "0.1.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&credFile, "config", "", "credentials file (default: $HOME/.pipeforge/credentials.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend API base URL (default from PFC_API_URL or "+defaultAPIURL+")")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "table", "output format: table, json")
}

// resolveAPIURL picks the backend origin: flag, then environment, then
// the built-in default.
func resolveAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if env := os.Getenv("PFC_API_URL"); env != "" {
		return env
	}
	return defaultAPIURL
}

func openStore() (*credstore.Store, error) {
	return credstore.Open(credFile)
}

func jsonOutput() bool {
	return outputFmt == "json"
}

// resourceCreds adapts the credential store for the resource clients.
func resourceCreds() (client.CredentialSource, error) {
	return openStore()
}
