package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ProductCatalog/internal/config"
	"ProductCatalog/internal/mcpserver"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "product-catalog version %s\n", cmd.Root().Version)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server name: %s\n", mcpserver.Name)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), config.Display(cfg))
		return nil
	},
}
