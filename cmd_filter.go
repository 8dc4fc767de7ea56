package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"prodpick/internal/catalog"
	"prodpick/internal/domain"
)

func newFilterCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "filter [query]",
		Short: "Print the catalog products whose name contains query",
		Long: `Print the catalog products whose name contains query, in catalog order.
Variations are listed under their variable product.
Matching ignores case using the configured locale. An empty or blank query
prints every product.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			cfg, err := loadConfig(opts, nil)
			if err != nil {
				return err
			}
			products, matcher, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			store := catalog.NewMemoryProductStore(products)
			matches := catalog.GroupVariations(store, matcher.Filter(store.All(), query))
			return printProducts(cmd.OutOrStdout(), matches)
		},
	}
}

func printProducts(out io.Writer, products []domain.Product) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, p := range products {
		name := p.Name
		if p.IsVariation {
			name = "  " + name
		}
		badge := ""
		if catalog.IsVariableVariant(p) {
			badge = "[variable]"
		}
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, name, p.SKU, badge); err != nil {
			return err
		}
	}
	return tw.Flush()
}
