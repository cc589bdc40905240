package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/harness/ar-stats/cmd/cmdutils"
	"github.com/harness/ar-stats/internal/artifactory"
	"github.com/harness/ar-stats/internal/config"
	"github.com/harness/ar-stats/internal/pipeline"
	"github.com/harness/ar-stats/util/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSearcher struct {
	calls int
	fail  map[string]bool
}

func (s *countingSearcher) Search(_ context.Context, query string) (*artifactory.SearchResponse, error) {
	s.calls++
	for repo := range s.fail {
		if strings.Contains(query, `"`+repo+`"`) {
			return nil, &os.PathError{Op: "dial", Path: repo, Err: os.ErrDeadlineExceeded}
		}
	}
	name, size := "app.jar", int64(2048)
	created := "2024-01-15T10:20:30.123Z"
	return &artifactory.SearchResponse{Results: []artifactory.Item{
		{Name: &name, Size: &size, Created: &created},
	}}, nil
}

func newTestFactory(s *countingSearcher) (*cmdutils.Factory, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &cmdutils.Factory{
		Searcher: func(*config.Config) pipeline.Searcher { return s },
		Now:      func() time.Time { return time.Date(2024, time.March, 9, 17, 45, 0, 0, time.Local) },
		Out:      &out,
		ErrOut:   &errOut,
	}, &out, &errOut
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"ARTIFACTORY_URL", "ARTIFACTORY_USERNAME", "USERNAME", "ARTIFACTORY_PASSWORD",
		"PASSWORD", "REPOSITORY_NAMES", "ARTIFACTORY_INSECURE", "ARTIFACTORY_TIMEOUT",
	} {
		t.Setenv(name, "")
	}
}

func execute(t *testing.T, f *cmdutils.Factory, args ...string) error {
	t.Helper()
	var noColor bool
	cmd := newRootCmd(f, &noColor)
	cmd.SetArgs(args)
	cmd.SetOut(f.Out)
	cmd.SetErr(f.ErrOut)
	return cmd.ExecuteContext(context.Background())
}

func TestReport_MissingConfigMakesNoRequest(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no url", []string{"report", "--username", "u", "--password", "p", "repo"}},
		{"no username", []string{"report", "--artifactory-url", "https://x.io", "--password", "p", "repo"}},
		{"no password", []string{"report", "--artifactory-url", "https://x.io", "--username", "u", "repo"}},
		{"no repositories", []string{"report", "--artifactory-url", "https://x.io", "--username", "u", "--password", "p"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			s := &countingSearcher{}
			f, _, _ := newTestFactory(s)

			err := execute(t, f, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrMissingConfig), err.Error())
			assert.Zero(t, s.calls)
		})
	}
}

func TestReport_PartialFailureExitsCleanly(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	s := &countingSearcher{fail: map[string]bool{"broken": true}}
	f, out, errOut := newTestFactory(s)

	err := execute(t, f, "report",
		"--artifactory-url", "https://example.jfrog.io/artifactory",
		"--username", "u", "--password", "p",
		"--output-dir", dir, "--images-dir", filepath.Join(dir, "images"),
		"--summary-format", "json",
		"--repository-names", "libs-release",
		"broken", "docker-local",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, s.calls)

	assert.FileExists(t, filepath.Join(dir, "libs-release-2024Mar09T1745HZ-stats.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "docker-local-2024Mar09T1745HZ-stats.xlsx"))
	assert.NoFileExists(t, filepath.Join(dir, "broken-2024Mar09T1745HZ-stats.xlsx"))

	assert.Contains(t, out.String(), `"repository": "libs-release"`)
	assert.Contains(t, out.String(), `"repository": "docker-local"`)
	assert.Contains(t, errOut.String(), "query for repository broken failed")
	assert.Contains(t, errOut.String(), "1 of 3 repositories failed")
}

// blockingSearcher waits for its context, like a slow Artifactory would
type blockingSearcher struct {
	calls atomic.Int32
}

func (s *blockingSearcher) Search(ctx context.Context, _ string) (*artifactory.SearchResponse, error) {
	s.calls.Add(1)
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRunReport_CtrlCInSpinnerStopsRun(t *testing.T) {
	dir := t.TempDir()
	s := &blockingSearcher{}
	f, _, _ := newTestFactory(&countingSearcher{})
	f.Searcher = func(*config.Config) pipeline.Searcher { return s }
	f.In = strings.NewReader("\x03")

	cfg := &config.Config{
		ArtifactoryURL:  "https://example.jfrog.io/artifactory",
		Username:        "u",
		Password:        "p",
		RepositoryNames: []string{"a", "b", "c"},
		OutputDir:       dir,
		ImagesDir:       filepath.Join(dir, "images"),
		SummaryFormat:   config.FormatNone,
	}

	err := runReport(context.Background(), f, cfg, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "interrupted after 1 of 3 repositories")
	// the spinner may quit before its query starts; later repositories never run
	assert.LessOrEqual(t, s.calls.Load(), int32(1))

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".xlsx"), e.Name())
	}
}

func TestQuery_PrintsAQL(t *testing.T) {
	f, out, _ := newTestFactory(&countingSearcher{})

	require.NoError(t, execute(t, f, "--no-color", "query", "--repository-names", "libs-release", "docker-local"))
	assert.Contains(t, out.String(), `"repo": "libs-release"`)
	assert.Contains(t, out.String(), `"repo": "docker-local"`)
	assert.Contains(t, out.String(), `.include("name"`)
}

func TestQuery_RequiresRepository(t *testing.T) {
	f, _, _ := newTestFactory(&countingSearcher{})

	err := execute(t, f, "query")
	var ve *errors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, config.FlagRepositoryNames, ve.Field)
}

func TestVersion(t *testing.T) {
	f, out, _ := newTestFactory(&countingSearcher{})

	require.NoError(t, execute(t, f, "version"))
	assert.Contains(t, out.String(), "arstats version dev")
}
