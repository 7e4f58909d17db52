package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/templui/focusflow/cmd/do/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "do",
		Short: "Development and operations tools for focusflow",
	}

	rootCmd.AddCommand(cmd.DevCmd())
	rootCmd.AddCommand(cmd.DBCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
