package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/talent-search/internal/ingestion"
	"github.com/jonathan/talent-search/internal/workspace"
	"github.com/spf13/cobra"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		query      string
		jobURL     string
		useBrowser bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Rank candidates against a job description",
		Long:  "Rank the stored candidates against a free-text description, a job posting URL, or both.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts, true)
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			fullQuery := query
			if jobURL != "" {
				posting, _, err := ingestion.IngestFromURL(ctx, jobURL, a.urlOptions(ingestion.TargetJobPosting, useBrowser))
				if err != nil {
					return fmt.Errorf("failed to ingest job posting: %w", err)
				}
				if strings.TrimSpace(query) != "" {
					fullQuery = query + "\n\n" + posting
				} else {
					fullQuery = posting
				}
			}

			a.ctrl.Navigate(ctx, workspace.ViewSearch)
			results, err := a.ctrl.Search(ctx, fullQuery)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			a.printer.PrintSearchResults(results)
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Description of the ideal candidate")
	cmd.Flags().StringVarP(&jobURL, "job-url", "u", "", "URL of a job posting to search with")
	cmd.Flags().BoolVar(&useBrowser, "use-browser", false, "Render JavaScript pages in headless Chrome")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.MarkFlagsOneRequired("query", "job-url")
	return cmd
}
