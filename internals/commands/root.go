package commands

import (
	"fmt"
	"os"

	"worknest_backend/internals/configs"

	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "worknest",
		Short: "Attendance tracking server for RFID and fingerprint terminals",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configs.LoadEnv()
		},
		SilenceUsage: true,
	}

	serveCmd := newServeCommand()
	// no subcommand means serve
	rootCmd.RunE = serveCmd.RunE

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newHashPasswordCommand())

	return rootCmd
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
