package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/terra-clan/resilience-scorecard/internal/catalog"
	"github.com/terra-clan/resilience-scorecard/internal/models"
)

// NewRootCmd builds the scorecardctl command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "scorecardctl",
		Short:         "Cyber-resilience scorecard catalog tooling",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelError
			if v, _ := cmd.Flags().GetBool("verbose"); v {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log loader activity to stderr")

	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newExportCSVCmd())
	rootCmd.AddCommand(newImportCSVCmd())
	rootCmd.AddCommand(newQuestionsCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newFindCmd())
	rootCmd.AddCommand(newMoveCmd())
	rootCmd.AddCommand(newRebalanceCmd())

	return rootCmd
}

// loadCatalog reads a catalog file or fragment directory. The returned
// issues are filled in even when loading fails.
func loadCatalog(path string) (*models.Catalog, []catalog.Issue, error) {
	loader := catalog.NewLoader()
	if err := loader.Load(path); err != nil {
		return nil, loader.Issues(), err
	}
	cat, err := loader.Current()
	return cat, loader.Issues(), err
}

// readSelection reads a JSON list of selection keys. An empty path means
// no selection step took place.
func readSelection(path string) ([]models.SelectionKey, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}
	keys := []models.SelectionKey{}
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse selection %s: %w", path, err)
	}
	return keys, nil
}

// writeCatalog encodes cat to out, choosing the format from its extension.
// An empty out writes to the command's stdout in the fallback format.
func writeCatalog(cmd *cobra.Command, cat *models.Catalog, out string, fallback catalog.Format) error {
	format := fallback
	if out != "" {
		f, err := catalog.FormatFromPath(out)
		if err != nil {
			return err
		}
		format = f
	}

	data, err := catalog.Encode(cat, format)
	if err != nil {
		return err
	}

	if out == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printIssues(w io.Writer, issues []catalog.Issue) {
	for _, i := range issues {
		fmt.Fprintln(w, i.String())
	}
}
