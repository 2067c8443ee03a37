package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terra-clan/resilience-scorecard/internal/models"
	"github.com/terra-clan/resilience-scorecard/internal/scoring"
	"github.com/terra-clan/resilience-scorecard/internal/validation"
)

type scoreOutput struct {
	models.ScoreResult
	Band scoring.Band `json:"band"`
}

func newScoreCmd() *cobra.Command {
	var (
		answersPath string
		selection   string
	)

	cmd := &cobra.Command{
		Use:   "score <catalog>",
		Short: "Score an answers file and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := loadCatalog(args[0])
			if err != nil {
				return err
			}

			data, err := os.ReadFile(answersPath)
			if err != nil {
				return fmt.Errorf("failed to read answers: %w", err)
			}
			var raw map[string]string
			if err := json.Unmarshal(data, &raw); err != nil {
				return fmt.Errorf("failed to parse answers %s: %w", answersPath, err)
			}

			keys, err := readSelection(selection)
			if err != nil {
				return err
			}
			sel, err := validation.CheckSelectionKeys(cat, keys)
			if err != nil {
				return err
			}
			answers, err := validation.ValidateAnswers(cat, raw)
			if err != nil {
				return err
			}

			result := scoring.Score(cat, sel, answers)
			return printJSON(cmd.OutOrStdout(), scoreOutput{
				ScoreResult: result,
				Band:        scoring.BandFor(result.FinalScore),
			})
		},
	}

	cmd.Flags().StringVar(&answersPath, "answers", "", "JSON file mapping question id to yes/partial/no/na")
	cmd.Flags().StringVar(&selection, "selection", "", "JSON file with a list of {category, subCategory} keys")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}
