package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jd-assistant/internal/results"
	"github.com/jonathan/jd-assistant/internal/session"
)

func newCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "copy <control>",
		Short:     "Copy a field of the cached analysis to the clipboard",
		Long:      "Copies one drafted field of the cached analysis. Placeholder values such as \"Not specified\" are not copied.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: results.Controls,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			if s.View().Mode != results.ModeResult {
				return errors.New(MsgNoCachedAnalysis)
			}

			out, err := s.Dispatch(ctx, session.Copy{Control: args[0]})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch out.Copy {
			case results.CopyDone:
				_, _ = fmt.Fprintf(w, "Copied %s.\n", args[0])
			case results.CopySkipped:
				_, _ = fmt.Fprintf(w, "Nothing to copy for %s.\n", args[0])
			case results.CopyFailed:
				// Clipboard failures are logged and otherwise ignored.
				_, _ = fmt.Fprintln(w, "Could not access the clipboard.")
			}
			return nil
		},
	}
}
