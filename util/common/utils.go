package common

import (
	"github.com/inhies/go-bytesize"
)

// GetSize formats a byte count for display, e.g. 1.00GB
func GetSize(sizeVal int64) string {
	size := bytesize.New(float64(sizeVal))
	return size.String()
}
