package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/jd-assistant/internal/tui"
)

func newPopupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "popup",
		Short: "Open the interactive assistant",
		Long: `Opens the assistant in the terminal. The résumé section shows the stored
résumé, and the input section takes pasted job description text or an image.
A previously cached analysis is restored on open.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The popup lives until the user quits, so only the request timeout applies.
			s, closeStore, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			return tui.Run(cmd.Context(), s)
		},
	}
}
