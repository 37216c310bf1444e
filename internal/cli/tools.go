package cli

import (
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ProductCatalog/internal/catalog"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the catalog operations",
	Long:  `Print every operation with its parameters and the description agents see.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The listing does not depend on catalog contents.
		store, err := catalog.NewStore(catalog.SampleProducts())
		if err != nil {
			return err
		}

		printInfo("Operation                  Params")
		printInfo("──────────────────────────────────────────────")
		for _, op := range catalog.NewDispatcher(store).Operations() {
			names := make([]string, len(op.Params))
			for i, p := range op.Params {
				names[i] = p.Name
			}
			color.New(color.Bold).Printf("%-26s ", op.Name)
			color.New().Printf("%s\n", strings.Join(names, ", "))
			color.New(color.Faint).Printf("    %s\n", op.Description)
		}
		return nil
	},
}
