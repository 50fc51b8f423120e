// Package cmd provides the command-line interface for goodies.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "goodies",
		Short: "Play with fixed-capacity arrays.",
		Long: `goodies builds fixed-capacity arrays, appends and removes ` +
			`values, and shows what was kept. Values that do not fit are ` +
			`dropped silently, so the output is what the array holds.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().String("env-file", ".env",
		"Read defaults from this dotenv file if it exists")

	rootCmd.AddCommand(
		newDemoCmd(),
		newRunCmd(),
		newInspectCmd(),
		newReportCmd(),
	)

	return rootCmd
}

// Execute runs the root command and exits with a non-zero status on error.
// Functions registered with atexit run in either case.
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
