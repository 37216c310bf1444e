package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ProductCatalog/internal/catalog"
	"ProductCatalog/internal/config"
)

var callCmd = &cobra.Command{
	Use:   "call <operation> [name=value ...]",
	Short: "Run one operation against the configured catalog",
	Long: `Load the configured catalog in-process and run a single operation.

Examples:
  product-catalog call get_categories
  product-catalog call get_product product_id=PROD-001
  product-catalog call search_products query=bottle`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		callArgs, err := parseArgs(args[1:])
		if err != nil {
			return err
		}

		store, err := openStore(cmd.Context(), cfg)
		if err != nil {
			printError("Failed to load catalog: %v", err)
			return err
		}

		d := catalog.NewDispatcher(store)
		res, err := d.Call(cmd.Context(), args[0], callArgs)
		if err != nil {
			if errors.Is(err, catalog.ErrUnknownOperation) {
				printError("Unknown operation %q. Available: %s", args[0], strings.Join(d.Names(), ", "))
			}
			return err
		}

		if res.Guidance {
			printWarning("%s", res.Text)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Text)
		return nil
	},
}

// parseArgs turns name=value pairs into call arguments. Values may be empty.
func parseArgs(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, kv := range pairs {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid argument %q (want name=value)", kv)
		}
		out[name] = value
	}
	return out, nil
}
