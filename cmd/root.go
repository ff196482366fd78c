// Package cmd holds the CLI entrypoints of the service.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configDefault string

var rootCmd = &cobra.Command{
	Use:   "capture-service",
	Short: "Capture Service",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute(c string) {
	configDefault = c
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
