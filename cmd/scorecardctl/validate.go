package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <catalog>",
		Short: "Check a catalog file or fragment directory and list every issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, issues, err := loadCatalog(args[0])
			printIssues(cmd.OutOrStdout(), issues)
			if err != nil {
				return err
			}

			questions := 0
			for i := range cat.Categories {
				questions += cat.Categories[i].QuestionCount()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d categories, %d questions, %d warnings\n",
				len(cat.Categories), questions, len(issues))
			return nil
		},
	}
}
