package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jd-assistant/internal/observability"
	"github.com/jonathan/jd-assistant/internal/results"
	"github.com/jonathan/jd-assistant/internal/session"
)

func newStatusCmd(a *app) *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the stored résumé",
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
			if details {
				if _, err := s.Dispatch(ctx, session.ToggleResumeDetails{}); err != nil {
					return err
				}
			}

			view := s.View()
			out := cmd.OutOrStdout()
			observability.NewPrinter(out).PrintResume(view.Resume)
			if view.Mode == results.ModeResult {
				_, _ = fmt.Fprintln(out, "A cached analysis is available (jd_assistant show).")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&details, "details", "d", false, "Show the file name and upload time")
	return cmd
}
