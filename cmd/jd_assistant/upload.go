package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/jd-assistant/internal/observability"
	"github.com/jonathan/jd-assistant/internal/resume"
	"github.com/jonathan/jd-assistant/internal/session"
)

// newUploadCmd builds "upload" and "replace". Both send the file to the same
// endpoint; the backend keeps a single résumé.
func newUploadCmd(a *app, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <file.pdf>",
		Short: short,
		Long: `Uploads a PDF résumé to the backend. The file must have a .pdf extension
and be at most 1 MiB; other files are rejected without contacting the backend.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			file, err := resume.FileFromPath(args[0])
			if err != nil {
				return err
			}

			s, closeStore, err := a.openSession(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			_, err = s.Dispatch(ctx, session.UploadResume{File: file})
			view := s.View()
			if err != nil {
				return statusError(view.Resume.Status, err)
			}

			p := observability.NewPrinter(cmd.OutOrStdout())
			p.PrintStatus(view.Resume.Status)
			p.PrintResume(view.Resume)
			return nil
		},
	}
}
