package main

import (
	"github.com/jonathan/talent-search/internal/ingestion"
	"github.com/jonathan/talent-search/internal/shell"
	"github.com/spf13/cobra"
)

func newShellCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive workspace",
		Long:  "Open a menu-driven terminal workspace with the Dashboard, Add Candidate and Search views.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts, true)
			if err != nil {
				return err
			}
			defer a.Close()

			sh := shell.New(a.ctrl, cmd.InOrStdin(), cmd.OutOrStdout(),
				shell.WithLogger(a.log),
				shell.WithURLOptions(a.urlOptions(ingestion.TargetResume, false)),
			)
			return sh.Run(cmd.Context())
		},
	}
}
