package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jd-assistant/internal/session"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the backend address",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the backend address",
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
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set [url]",
		Short: "Set the backend address",
		Long: `Stores the backend address used by every later request. Without an
argument, the backend_url value of the --config file is used. The address is
stored as given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := a.cfg.BackendURL
			if len(args) == 1 {
				url = args[0]
			}
			if url == "" {
				return errors.New("a backend URL is required (as an argument or backend_url in --config)")
			}

			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			s, closeStore, err := a.openSession(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if _, err := s.Dispatch(ctx, session.SetBackendURL{URL: url}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Backend set to %s\n", url)
			return nil
		},
	})

	return cmd
}
