package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/jd-assistant/internal/observability"
	"github.com/jonathan/jd-assistant/internal/resume"
)

func newInspectCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.pdf>",
		Short: "Preview a résumé PDF locally before uploading",
		Long: `Runs the same checks as upload and prints the page count and the start of
the extracted text. Nothing is sent to the backend.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := resume.FileFromPath(args[0])
			if err != nil {
				return err
			}
			if err := resume.Validate(file); err != nil {
				return err
			}

			preview, err := resume.Inspect(args[0])
			if err != nil {
				return err
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintPreview(preview)
			return nil
		},
	}
}
