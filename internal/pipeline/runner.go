// Package pipeline runs the query, normalize and report steps for each
// requested repository.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/harness/ar-stats/internal/aql"
	"github.com/harness/ar-stats/internal/artifactory"
	"github.com/harness/ar-stats/internal/report"
	"github.com/harness/ar-stats/internal/stats"
	"github.com/harness/ar-stats/util/common/errors"
	"github.com/harness/ar-stats/util/common/progress"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Searcher executes an AQL query
type Searcher interface {
	Search(ctx context.Context, query string) (*artifactory.SearchResponse, error)
}

// ReportWriter persists one repository's records
type ReportWriter interface {
	Write(repository string, table stats.Table) (report.Result, error)
}

// Result is the outcome for one repository
type Result struct {
	Repository string
	Query      string
	Report     report.Result
	Err        error
}

// Failed reports whether any step failed for the repository
func (r Result) Failed() bool {
	return r.Err != nil
}

// Runner processes repositories one at a time. A failing repository is
// recorded and the next one is processed.
type Runner struct {
	searcher Searcher
	writer   ReportWriter
	filter   stats.Filter
	reporter progress.Reporter

	summaryOut    io.Writer
	summaryFormat string
}

// Option configures a Runner
type Option func(*Runner)

// WithFilter drops records the filter does not keep
func WithFilter(f stats.Filter) Option {
	return func(r *Runner) { r.filter = f }
}

// WithReporter sets the user-facing progress reporter
func WithReporter(p progress.Reporter) Option {
	return func(r *Runner) { r.reporter = p }
}

// WithSummary prints each repository summary to w in format
func WithSummary(w io.Writer, format string) Option {
	return func(r *Runner) {
		r.summaryOut = w
		r.summaryFormat = format
	}
}

// NewRunner creates a Runner
func NewRunner(searcher Searcher, writer ReportWriter, opts ...Option) *Runner {
	r := &Runner{
		searcher: searcher,
		writer:   writer,
		reporter: progress.NewNopReporter(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes repositories in order and returns one Result per
// repository attempted. A cancelled context stops before the next one.
func (r *Runner) Run(ctx context.Context, repositories []string) []Result {
	runID := uuid.New().String()
	runLogger := log.With().
		Str("run_id", runID).
		Int("total_repositories", len(repositories)).
		Logger()

	results := make([]Result, 0, len(repositories))
	if len(repositories) == 0 {
		runLogger.Info().Msg("No repositories to process")
		return results
	}

	runLogger.Info().Msg("Starting report run")
	r.reporter.Start(fmt.Sprintf("Generating reports for %d repositories", len(repositories)))
	defer r.reporter.End()

	for _, repo := range repositories {
		if err := ctx.Err(); err != nil {
			runLogger.Warn().Err(err).Msg("Run cancelled")
			r.reporter.Error(fmt.Sprintf("Cancelled before %s", repo))
			break
		}

		res := r.runOne(ctx, runLogger.With().Str("repository", repo).Logger(), repo)
		results = append(results, res)
	}

	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
		}
	}
	runLogger.Info().
		Int("succeeded", len(results)-failed).
		Int("failed", failed).
		Msg("Report run finished")
	return results
}

func (r *Runner) runOne(ctx context.Context, logger zerolog.Logger, repo string) Result {
	start := time.Now()
	res := Result{Repository: repo, Query: aql.ItemsByRepository(repo)}

	r.reporter.Step("Querying " + repo)
	logger.Debug().Str("query", res.Query).Msg("Executing AQL query")

	resp, err := r.searcher.Search(ctx, res.Query)
	if err != nil {
		res.Err = errors.NewQueryError(repo, artifactory.StatusCode(err), err)
		logger.Error().Err(err).Int("status", artifactory.StatusCode(err)).Msg("Query failed")
		r.reporter.Error(res.Err.Error())
		return res
	}

	table := stats.Normalize(resp, r.filter)
	if !table.HasCreated {
		r.reporter.Warn(fmt.Sprintf("%s: 'created' column is missing, yearly and monthly summaries are empty", repo))
	}
	logger.Debug().Int("records", len(table.Records)).Msg("Normalized search results")

	out, err := r.writer.Write(repo, table)
	if err != nil {
		res.Err = fmt.Errorf("write report for %s: %w", repo, err)
		logger.Error().Err(err).Msg("Report write failed")
		r.reporter.Error(res.Err.Error())
		return res
	}
	res.Report = out

	logger.Info().
		Str("path", out.Path).
		Int("records", len(table.Records)).
		Dur("duration", time.Since(start)).
		Msg("Report written")
	r.reporter.Success(fmt.Sprintf("%s: %d artifacts, report saved to %s", repo, len(table.Records), out.Path))

	if r.summaryOut != nil {
		if err := PrintSummary(r.summaryOut, r.summaryFormat, out); err != nil {
			logger.Warn().Err(err).Msg("Failed to print summary")
		}
	}
	return res
}
