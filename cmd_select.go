package main

import (
	"github.com/spf13/cobra"

	"prodpick/internal/domain"
	itemset "prodpick/internal/selection"
)

func newSelectCmd() *cobra.Command {
	var (
		selected    []int64
		add         []int64
		remove      []int64
		singleValue int64
	)

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Apply additions and removals to a selection and print the result",
		Long: `Start from --selected (or the single id given by --single-value),
add the --add ids, remove the --remove ids and print the resulting
selection, one id per line. The result never contains duplicates.`,
		Example: `  prodpick select --selected 1,2 --add 2,3 --remove 1
  prodpick select --single-value 5 --add 6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base := itemset.Many(toProductIDs(selected)...)
			if cmd.Flags().Changed("single-value") {
				base = itemset.Single(domain.ProductID(singleValue))
			}
			return printSelection(cmd.OutOrStdout(), applyEdits(base, toProductIDs(add), toProductIDs(remove)))
		},
	}

	cmd.Flags().Int64SliceVar(&selected, "selected", nil, "Current selection")
	cmd.Flags().Int64SliceVar(&add, "add", nil, "Ids to add")
	cmd.Flags().Int64SliceVar(&remove, "remove", nil, "Ids to remove")
	cmd.Flags().Int64Var(&singleValue, "single-value", 0, "Start from a single-select value")
	cmd.MarkFlagsMutuallyExclusive("selected", "single-value")

	return cmd
}

// applyEdits adds before it removes, so an id in both lists ends up removed
func applyEdits(base itemset.Selection[domain.ProductID], add, remove []domain.ProductID) itemset.Selection[domain.ProductID] {
	next := base
	if len(add) > 0 {
		next = itemset.Add(next, add...)
	}
	if len(remove) > 0 {
		next = itemset.Remove(next, remove...)
	}
	return next
}
