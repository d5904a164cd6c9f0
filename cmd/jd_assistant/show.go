package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jd-assistant/internal/observability"
	"github.com/jonathan/jd-assistant/internal/results"
	"github.com/jonathan/jd-assistant/internal/session"
)

// MsgNoCachedAnalysis is printed when there is nothing to show.
const MsgNoCachedAnalysis = "No cached analysis."

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the cached analysis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			s, closeStore, err := a.openSession(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if _, err := s.Dispatch(ctx, session.Activate{}); err != nil {
				return err
			}
			view := s.View()
			if view.Mode != results.ModeResult {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), MsgNoCachedAnalysis)
				return nil
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintResult(view.Result)
			return nil
		},
	}
}
