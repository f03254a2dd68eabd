package main

import (
	"encoding/json"

	"github.com/jonathan/talent-search/internal/workspace"
	"github.com/spf13/cobra"
)

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show candidate statistics and the most recent candidates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			a.ctrl.Navigate(cmd.Context(), workspace.ViewDashboard)
			a.printer.PrintDashboard(a.ctrl.Stats(), a.ctrl.Recent())
			return nil
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every stored candidate, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			a.ctrl.Refresh(cmd.Context())
			candidates := a.ctrl.Snapshot()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(nonNil(candidates))
			}
			a.printer.PrintCandidates(candidates)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print candidates as JSON")
	return cmd
}
