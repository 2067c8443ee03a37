package main

import (
	"github.com/spf13/cobra"

	"github.com/terra-clan/resilience-scorecard/internal/catalog"
)

func newMoveCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "move <catalog> <question-id> <first|last|question-id|order>",
		Short: "Reposition a question within its category",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := loadCatalog(args[0])
			if err != nil {
				return err
			}

			pos, err := catalog.ParsePosition(args[2])
			if err != nil {
				return err
			}
			moved, err := catalog.MoveQuestion(cat, args[1], pos)
			if err != nil {
				return err
			}
			return writeCatalog(cmd, moved, out, formatOf(args[0]))
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "Write the catalog to this .json/.yaml file instead of stdout")
	return cmd
}

func newRebalanceCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "rebalance <catalog> <category>",
		Short: "Respace the order values of a category's questions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := loadCatalog(args[0])
			if err != nil {
				return err
			}

			rebalanced, err := catalog.Rebalance(cat, args[1])
			if err != nil {
				return err
			}
			return writeCatalog(cmd, rebalanced, out, formatOf(args[0]))
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "Write the catalog to this .json/.yaml file instead of stdout")
	return cmd
}

// formatOf keeps the input's format for stdout output, YAML for directories
func formatOf(path string) catalog.Format {
	if f, err := catalog.FormatFromPath(path); err == nil {
		return f
	}
	return catalog.FormatYAML
}
