package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ProductCatalog/internal/config"
)

const service = "product-catalog"

var rootCmd = &cobra.Command{
	Use:   service,
	Short: "Read-only product catalog served to agents over MCP",
	Long: `product-catalog serves an immutable product catalog through five
read-only operations (get_categories, get_products_by_category,
get_product, search_products, check_stock).

The operations are reachable over MCP streamable HTTP at
/product-catalog/mcp and over a JSON call endpoint at /product-catalog/rpc.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd.Version = version
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("catalog-source", "", "Catalog source (sample|file|postgres)")
	pf.String("catalog-file", "", "Catalog file (.yaml, .yml or .json) when catalog-source=file")
	pf.String("database-url", "", "Postgres DSN when catalog-source=postgres")
	pf.String("log-level", "", "Log level (debug|info|warn|error)")

	viper.BindPFlag(config.KeyCatalogSource, pf.Lookup("catalog-source"))
	viper.BindPFlag(config.KeyCatalogFile, pf.Lookup("catalog-file"))
	viper.BindPFlag(config.KeyDatabaseURL, pf.Lookup("database-url"))
	viper.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))

	rootCmd.AddCommand(serveCmd, toolsCmd, callCmd, probeCmd, configCmd, versionCmd)
}
