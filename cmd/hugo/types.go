package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugo-ops/hugo/internal/decision"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the registered decision types",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := decision.DefaultRegistry()
		if cfg != nil && cfg.Pipeline.GuidelineOverrides != "" {
			if err := registry.LoadGuidelineOverrides(cfg.Pipeline.GuidelineOverrides); err != nil {
				return err
			}
		}
		for _, name := range registry.Types() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}
