package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/terra-clan/resilience-scorecard/internal/catalog"
	"github.com/terra-clan/resilience-scorecard/internal/models"
	"github.com/terra-clan/resilience-scorecard/internal/scoring"
	"github.com/terra-clan/resilience-scorecard/internal/validation"
)

func newQuestionsCmd() *cobra.Command {
	var (
		selection string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "questions <catalog>",
		Short: "Print the questions a selection would present, in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := loadCatalog(args[0])
			if err != nil {
				return err
			}

			keys, err := readSelection(selection)
			if err != nil {
				return err
			}
			sel, err := validation.CheckSelectionKeys(cat, keys)
			if err != nil {
				return err
			}

			questions := scoring.SelectQuestions(cat, sel)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), questions)
			}
			return printQuestions(cmd.OutOrStdout(), questions)
		},
	}

	cmd.Flags().StringVar(&selection, "selection", "", "JSON file with a list of {category, subCategory} keys")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newFindCmd() *cobra.Command {
	var (
		crit   catalog.Criteria
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "find <catalog>",
		Short: "Search questions by category, tag, weight or text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if crit.Weight != 0 && (crit.Weight < 1 || crit.Weight > 5) {
				return fmt.Errorf("weight must be between 1 and 5")
			}

			cat, _, err := loadCatalog(args[0])
			if err != nil {
				return err
			}

			questions := catalog.FindQuestions(cat, crit)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), questions)
			}
			return printQuestions(cmd.OutOrStdout(), questions)
		},
	}

	cmd.Flags().StringVar(&crit.Category, "category", "", "Category name")
	cmd.Flags().StringVar(&crit.SubCategory, "sub-category", "", "Sub-category name")
	cmd.Flags().StringSliceVar(&crit.Tags, "tag", nil, "Match any of these tags")
	cmd.Flags().IntVar(&crit.Weight, "weight", 0, "Exact weight (1-5)")
	cmd.Flags().StringVar(&crit.Search, "search", "", "Case-insensitive text search")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func printQuestions(w io.Writer, questions []models.AnnotatedQuestion) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tWEIGHT\tTEXT")
	for _, q := range questions {
		where := q.Category
		if q.SubCategory != nil {
			where = strings.Join([]string{q.Category, *q.SubCategory}, " / ")
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", q.ID, where, q.Weight, q.Text)
	}
	return tw.Flush()
}
