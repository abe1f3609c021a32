package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugo-ops/hugo/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}
