package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jd-assistant/internal/fetch"
	"github.com/jonathan/jd-assistant/internal/jdinput"
	"github.com/jonathan/jd-assistant/internal/observability"
	"github.com/jonathan/jd-assistant/internal/session"
	"github.com/jonathan/jd-assistant/internal/types"
)

// analyzeOptions holds the flags of the analyze command.
type analyzeOptions struct {
	text       string
	textFile   string
	url        string
	image      string
	stdinImage bool
	useBrowser bool
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Match a job description against the stored résumé",
		Long: `Sends one job description to the backend and prints the match score,
missing skills and the drafted recruiter message. The result replaces the
cached analysis shown by "show" and the popup.

Provide exactly one of --text, --text-file, --url, --image or --stdin-image.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, a, &opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.text, "text", "t", "", "Job description text")
	flags.StringVarP(&opts.textFile, "text-file", "f", "", "Path to a job description text file")
	flags.StringVarP(&opts.url, "url", "u", "", "URL of a job posting to fetch")
	flags.StringVarP(&opts.image, "image", "i", "", "Path to a screenshot of the job description")
	flags.BoolVar(&opts.stdinImage, "stdin-image", false, "Read image data from stdin, as if pasted")
	flags.BoolVar(&opts.useBrowser, "use-browser", false, "Render --url pages in a headless browser when the plain fetch finds too little text (requires Chrome)")

	cmd.MarkFlagsMutuallyExclusive("text", "text-file", "url", "image", "stdin-image")
	cmd.MarkFlagsOneRequired("text", "text-file", "url", "image", "stdin-image")
	return cmd
}

func runAnalyze(cmd *cobra.Command, a *app, opts *analyzeOptions) error {
	ctx, cancel := a.commandContext(cmd)
	defer cancel()

	s, closeStore, err := a.openSession(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	var input []session.Event
	switch {
	case cmd.Flags().Changed("text"):
		input = []session.Event{session.SetText{Text: opts.text}}
	case opts.textFile != "":
		data, err := os.ReadFile(opts.textFile)
		if err != nil {
			return fmt.Errorf("failed to read job file: %w", err)
		}
		input = []session.Event{session.SetText{Text: string(data)}}
	case opts.url != "":
		useBrowser := a.cfg.UseBrowser
		if cmd.Flags().Changed("use-browser") {
			useBrowser = opts.useBrowser
		}
		posting, err := fetch.JobText(ctx, opts.url, fetch.JobOptions{UseBrowser: useBrowser, Logger: a.logger})
		if err != nil {
			return fmt.Errorf("failed to fetch job posting: %w", err)
		}
		a.logger.Info("fetched job posting", "platform", posting.Platform, "chars", len(posting.Text), "rendered", posting.Rendered)
		input = []session.Event{session.SetText{Text: posting.Text}}
	case opts.image != "":
		img, err := jdinput.ImageFromFile(opts.image)
		if err != nil {
			return err
		}
		input = []session.Event{
			session.SwitchInputMode{Mode: types.InputImage},
			session.SelectImage{Image: img},
		}
	case opts.stdinImage:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		input = []session.Event{
			session.SwitchInputMode{Mode: types.InputImage},
			session.Paste{Items: []jdinput.ClipboardItem{jdinput.ClipboardItemFromBytes(data)}},
		}
	}

	for _, ev := range input {
		if _, err := s.Dispatch(ctx, ev); err != nil {
			return statusError(s.View().Input.Status, err)
		}
	}

	out, err := s.Dispatch(ctx, session.SubmitAnalysis{})
	view := s.View()
	if err != nil {
		return statusError(view.Input.Status, err)
	}
	if out.Result == nil {
		return errors.New(session.MsgAnalysisFailed)
	}

	p := observability.NewPrinter(cmd.OutOrStdout())
	p.PrintStatus(view.Input.Status)
	p.PrintResult(view.Result)
	return nil
}
