package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			s, closeStore, err := a.openSession(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			url, err := s.BackendURL(ctx)
			if err != nil {
				return err
			}
			status, err := s.Client().Health(ctx)
			if err != nil {
				return fmt.Errorf("backend %s is not reachable: %w", url, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Backend %s: %s\n", url, status)
			return nil
		},
	}
}
