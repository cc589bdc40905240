package main

import (
	"context"
	"fmt"
	"io"

	"github.com/harness/ar-stats/cmd/cmdutils"
	"github.com/harness/ar-stats/internal/artifactory"
	"github.com/harness/ar-stats/internal/config"
	"github.com/harness/ar-stats/internal/pipeline"
	"github.com/harness/ar-stats/internal/report"
	"github.com/harness/ar-stats/internal/stats"
	"github.com/harness/ar-stats/internal/style"
	"github.com/harness/ar-stats/internal/terminal"
	"github.com/harness/ar-stats/internal/tui"
	"github.com/harness/ar-stats/util/common/errors"
	"github.com/harness/ar-stats/util/common/progress"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func reportCmd(f *cmdutils.Factory, termInfo *terminal.Info) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [repository...]",
		Short: "Write an Excel usage report for each repository",
		Long: heredoc.Doc(`
			Runs an AQL query per repository and writes
			<repository>-<timestamp>HZ-stats.xlsx to the output directory, with the
			chart images saved in the images directory.

			A repository whose query or report fails is reported and skipped; the
			command still exits 0 once every repository has been attempted.
			Ctrl-C stops the run and the command exits 1.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cmd.Flags(), args)
			if err != nil {
				return err
			}
			return runReport(cmd.Context(), f, cfg, termInfo.SpinnerEnabled && termInfo.StderrIsTerminal)
		},
	}

	config.RegisterFlags(cmd.Flags())
	return cmd
}

// runReport writes one report per configured repository. A repository
// failure is reported and skipped; an interrupt stops the run with an error.
func runReport(parent context.Context, f *cmdutils.Factory, cfg *config.Config, spinner bool) error {
	filter, err := stats.NewFilter(cfg.Include, cfg.Exclude)
	if err != nil {
		return errors.Wrap(err, "invalid filter pattern")
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	searcher := f.Searcher(cfg)
	if spinner {
		searcher = spinnerSearcher{next: searcher, out: f.ErrOut, in: f.In, cancel: cancel}
	}

	writer := report.NewWriter(
		report.WithOutputDir(cfg.OutputDir),
		report.WithImagesDir(cfg.ImagesDir),
		report.WithClock(f.Now),
	)

	runner := pipeline.NewRunner(searcher, writer,
		pipeline.WithFilter(filter),
		pipeline.WithReporter(progress.NewAutoReporter(f.ErrOut)),
		pipeline.WithSummary(f.Out, cfg.SummaryFormat),
	)
	results := runner.Run(ctx, cfg.RepositoryNames)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("report run interrupted after %d of %d repositories: %w",
			len(results), len(cfg.RepositoryNames), err)
	}

	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
		}
	}
	fmt.Fprintf(f.ErrOut, "%s %d of %d reports written\n", style.SuccessIcon(), len(results)-failed, len(results))
	if failed > 0 {
		fmt.Fprintf(f.ErrOut, "%s %s\n", style.WarningIcon(), style.Hint(fmt.Sprintf(
			"%d of %d repositories failed, rerun with --verbose for details", failed, len(results))))
	}
	return nil
}

// spinnerSearcher draws a spinner on stderr while a query is in flight.
// The terminal is in raw mode meanwhile, so ctrl+c arrives as a key press
// and cancel stops the whole run.
type spinnerSearcher struct {
	next   pipeline.Searcher
	out    io.Writer
	in     io.Reader
	cancel context.CancelFunc
}

func (s spinnerSearcher) Search(ctx context.Context, query string) (*artifactory.SearchResponse, error) {
	var opts []tea.ProgramOption
	if s.in != nil {
		opts = append(opts, tea.WithInput(s.in))
	}
	resp, err := tui.RunWithSpinner(ctx, s.out, "Running AQL query", func() (*artifactory.SearchResponse, error) {
		return s.next.Search(ctx, query)
	}, opts...)
	if errors.Is(err, tui.ErrInterrupted) {
		s.cancel()
	}
	return resp, err
}
