package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the adminctl version",
		RunE: func(cmd *cobra.Command, args []string) error {
			module, version := "adminctl", "(devel)"
			if info, ok := debug.ReadBuildInfo(); ok {
				if info.Main.Path != "" {
					module = info.Main.Path
				}
				if info.Main.Version != "" {
					version = info.Main.Version
				}
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", cfg.GetAppName(), module, version)
			return err
		},
	}
}
