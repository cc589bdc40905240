package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Keep(t *testing.T) {
	jar := Record{Path: "org/acme/app/1.0", Name: "app-1.0.jar"}
	pom := Record{Path: "org/acme/app/1.0", Name: "app-1.0.pom"}
	root := Record{Path: ".", Name: "index.yaml"}

	tests := []struct {
		name    string
		include []string
		exclude []string
		keep    map[string]bool
	}{
		{
			name: "no patterns keeps all",
			keep: map[string]bool{"jar": true, "pom": true, "root": true},
		},
		{
			name:    "include double star",
			include: []string{"org/**/*.jar"},
			keep:    map[string]bool{"jar": true, "pom": false, "root": false},
		},
		{
			name:    "exclude poms",
			exclude: []string{"**.pom"},
			keep:    map[string]bool{"jar": true, "pom": false, "root": true},
		},
		{
			name:    "include then exclude",
			include: []string{"org/**"},
			exclude: []string{"**.pom"},
			keep:    map[string]bool{"jar": true, "pom": false, "root": false},
		},
		{
			name:    "single star does not cross segments",
			include: []string{"org/*"},
			keep:    map[string]bool{"jar": false, "pom": false, "root": false},
		},
		{
			name:    "leading slash is ignored",
			include: []string{"/index.yaml"},
			keep:    map[string]bool{"jar": false, "pom": false, "root": true},
		},
	}
	records := map[string]Record{"jar": jar, "pom": pom, "root": root}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(tt.include, tt.exclude)
			require.NoError(t, err)
			for key, want := range tt.keep {
				assert.Equal(t, want, f.Keep(records[key]), key)
			}
		})
	}
}

func TestFilter_UnsupportedWildcardsAreSkipped(t *testing.T) {
	f, err := NewFilter([]string{"app-?.jar"}, nil)
	require.NoError(t, err)
	assert.True(t, f.Empty())
}

func TestRecordFullPath(t *testing.T) {
	assert.Equal(t, "a.txt", Record{Path: ".", Name: "a.txt"}.FullPath())
	assert.Equal(t, "a.txt", Record{Name: "a.txt"}.FullPath())
	assert.Equal(t, "x/y/a.txt", Record{Path: "/x/y/", Name: "a.txt"}.FullPath())
}
