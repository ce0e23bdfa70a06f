package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the meetbridge application
var rootCmd = &cobra.Command{
	Use:   "meetbridge",
	Short: "Turns email meeting context into calendar composer deep links",
	Long: `meetbridge is a small web service that receives an email-derived meeting
context, derives candidate meeting times with the help of a text-generation
service, renders a selection page, and redirects the user into a calendar
web composer with pre-filled fields.

It exposes three endpoints:
  - POST /context  receives the inbound meeting-context payload
  - GET  /choose   renders the candidate selection page
  - POST /choose   redirects into the external calendar composer`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "meetbridge version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
