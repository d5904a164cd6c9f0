package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jd-assistant/internal/session"
)

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Discard the cached analysis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			s, closeStore, err := a.openSession(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if _, err := s.Dispatch(ctx, session.ClearResults{}); err != nil {
				return fmt.Errorf("failed to clear cached analysis: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cached analysis cleared.")
			return nil
		},
	}
}
