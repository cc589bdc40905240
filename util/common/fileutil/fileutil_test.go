package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harness/ar-stats/util/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesNested(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports", "images")

	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "write check must not leave files behind")

	// idempotent
	require.NoError(t, EnsureDir(dir))
}

func TestEnsureDir_StaleWriteTestFile(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, ".write_test")
	require.NoError(t, os.WriteFile(stale, nil, 0o600))

	require.NoError(t, EnsureDir(dir))
	assert.FileExists(t, stale)
}

func TestEnsureDir_Errors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	tests := []struct {
		name    string
		path    string
		wantVal bool
	}{
		{name: "empty", path: "", wantVal: true},
		{name: "invalid characters", path: "out/<repo>", wantVal: true},
		{name: "existing file", path: file},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EnsureDir(tt.path)
			require.Error(t, err)

			var ve *errors.ValidationError
			var fe *errors.FileError
			if tt.wantVal {
				assert.True(t, errors.As(err, &ve))
			} else {
				assert.True(t, errors.As(err, &fe))
			}
		})
	}
}
