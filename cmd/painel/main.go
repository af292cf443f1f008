package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	port     string
	logLevel string

	version = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "painel",
	Short: "Painel de gestão das secretarias municipais",
	Long: `painel serves the administrative dashboard for secretarias and projetos.

It keeps the user session, renders the pages and reads the data from the
remote API configured in API_BASE_URL.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "painel", version)
	},
}

func init() {
	serveCmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
