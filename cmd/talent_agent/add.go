package main

import (
	"fmt"

	"github.com/jonathan/talent-search/internal/ingestion"
	"github.com/jonathan/talent-search/internal/shell"
	"github.com/jonathan/talent-search/internal/workspace"
	"github.com/spf13/cobra"
)

// savePrompt asks before storing an extracted profile.
const savePrompt = "Save this candidate?"

func newAddCmd(opts *rootOptions) *cobra.Command {
	var (
		text       string
		textFile   string
		urlStr     string
		yes        bool
		useBrowser bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Extract a candidate profile from a resume and save it",
		Long:  "Extract a candidate profile from pasted text, a .txt/.md/.pdf/.docx file or a hosted resume URL, review it and save it.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts, true)
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			resumeText := text
			switch {
			case textFile != "":
				if resumeText, _, err = ingestion.IngestFromFile(textFile); err != nil {
					return fmt.Errorf("failed to ingest from file: %w", err)
				}
			case urlStr != "":
				if resumeText, _, err = ingestion.IngestFromURL(ctx, urlStr, a.urlOptions(ingestion.TargetResume, useBrowser)); err != nil {
					return fmt.Errorf("failed to ingest from URL: %w", err)
				}
			}

			a.ctrl.Navigate(ctx, workspace.ViewAddCandidate)
			draft, err := a.ctrl.AnalyzeText(ctx, resumeText)
			if err != nil {
				fmt.Fprintln(out, workspace.AnalyzeFailedMessage)
				return err
			}
			a.printer.PrintDraft(draft)

			if !yes && !shell.New(a.ctrl, cmd.InOrStdin(), out).Confirm(savePrompt) {
				a.ctrl.Discard()
				fmt.Fprintln(out, "Draft discarded.")
				return nil
			}

			record, err := a.ctrl.Save(ctx)
			if err != nil {
				return fmt.Errorf("failed to save candidate: %w", err)
			}
			fmt.Fprintln(out, workspace.SavedMessage)
			a.printer.PrintCandidate(record)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Resume text")
	cmd.Flags().StringVarP(&textFile, "text-file", "t", "", "Path to a .txt, .md, .pdf or .docx resume")
	cmd.Flags().StringVarP(&urlStr, "url", "u", "", "URL of a hosted resume")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Save without asking")
	cmd.Flags().BoolVar(&useBrowser, "use-browser", false, "Render JavaScript pages in headless Chrome")
	cmd.MarkFlagsMutuallyExclusive("text", "text-file", "url")
	cmd.MarkFlagsOneRequired("text", "text-file", "url")
	return cmd
}
