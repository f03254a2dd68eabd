package main

import (
	"fmt"

	"github.com/jonathan/talent-search/internal/types"
	"github.com/spf13/cobra"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the example candidates to an empty store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if a.seeded {
				fmt.Fprintln(out, "Seeded example candidates.")
				return nil
			}
			fmt.Fprintf(out, "Store already holds %d candidates; nothing to seed.\n", len(a.candidates.GetAll(cmd.Context())))
			return nil
		},
	}
}

func nonNil(candidates []types.CandidateProfile) []types.CandidateProfile {
	if candidates == nil {
		return []types.CandidateProfile{}
	}
	return candidates
}
