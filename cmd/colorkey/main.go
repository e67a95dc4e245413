package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "colorkey",
		Short:         "Turn a solid background color into transparency",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	registerLoggingFlags(cmd.PersistentFlags())
	cmd.AddCommand(newWhiteCmd(), newAutoCmd())
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
