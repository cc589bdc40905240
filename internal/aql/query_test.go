package aql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemsByRepository(t *testing.T) {
	tests := []struct {
		name       string
		repository string
		want       string
	}{
		{
			name:       "regular name",
			repository: "libs-release",
			want:       `"repo": "libs-release"`,
		},
		{
			name:       "empty name passes through",
			repository: "",
			want:       `"repo": ""`,
		},
		{
			name:       "malformed name is not escaped",
			repository: `bad"name`,
			want:       `"repo": "bad"name"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ItemsByRepository(tt.repository)
			assert.True(t, strings.HasPrefix(got, "items.find({"))
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestItemsByRepository_IncludesAllFields(t *testing.T) {
	got := ItemsByRepository("generic-local")
	assert.Contains(t, got, `.include("name", "repo", "path", "type", "size", "created", "created_by", "modified", "modified_by", "updated", "stat")`)
	assert.NotContains(t, got, `"stat",)`)
}
