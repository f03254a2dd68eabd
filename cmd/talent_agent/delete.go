package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/talent-search/internal/shell"
	"github.com/jonathan/talent-search/internal/workspace"
	"github.com/spf13/cobra"
)

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	var (
		id  string
		yes bool
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a candidate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()
			out := cmd.OutOrStdout()

			var confirm workspace.Confirmer = shell.New(a.ctrl, cmd.InOrStdin(), out)
			if yes {
				confirm = workspace.Confirmed
			}

			err = a.ctrl.Delete(cmd.Context(), id, confirm)
			if errors.Is(err, workspace.ErrNotConfirmed) {
				fmt.Fprintln(out, "Deletion cancelled.")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to delete candidate: %w", err)
			}
			fmt.Fprintf(out, "Removed candidate %s.\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Candidate id (required)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
