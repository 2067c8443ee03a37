package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terra-clan/resilience-scorecard/internal/catalog"
	"github.com/terra-clan/resilience-scorecard/internal/models"
)

func newExportCSVCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export-csv <catalog>",
		Short: "Flatten a catalog into one CSV row per question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := loadCatalog(args[0])
			if err != nil {
				return err
			}

			if out == "" {
				return catalog.ExportCSV(cmd.OutOrStdout(), cat)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer f.Close()

			if err := catalog.ExportCSV(f, cat); err != nil {
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "Write CSV to this file instead of stdout")
	return cmd
}

func newImportCSVCmd() *cobra.Command {
	var (
		out  string
		base string
	)

	cmd := &cobra.Command{
		Use:   "import-csv <csv>",
		Short: "Rebuild a catalog from a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var baseCat *models.Catalog
			if base != "" {
				c, _, err := loadCatalog(base)
				if err != nil {
					return fmt.Errorf("failed to load base catalog: %w", err)
				}
				baseCat = c
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			cat, issues, err := catalog.ImportCSV(f, baseCat)
			printIssues(cmd.ErrOrStderr(), issues)
			if err != nil {
				return err
			}
			return writeCatalog(cmd, cat, out, catalog.FormatYAML)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "Write the catalog to this .json/.yaml file instead of stdout")
	cmd.Flags().StringVar(&base, "base", "", "Catalog supplying version and category metadata")
	return cmd
}
