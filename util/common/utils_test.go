package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSize(t *testing.T) {
	tests := []struct {
		in       int64
		contains []string
	}{
		{1024, []string{"1.00", "KB"}},
		{1073741824, []string{"1.00", "GB"}},
		{1610612736, []string{"1.50", "GB"}},
	}
	for _, tt := range tests {
		got := GetSize(tt.in)
		for _, c := range tt.contains {
			assert.Contains(t, got, c)
		}
	}
}
