package arrdiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"koru/internal/arrdiff"
)

func TestStringsEqualIsEmpty(t *testing.T) {
	assert.Equal(t, "", arrdiff.Strings("same", "same"))
}

func TestStringsDifferentReportsDiff(t *testing.T) {
	got := arrdiff.Strings("line one\nline two\n", "line one\nline three\n")
	assert.NotEmpty(t, got)
	assert.Contains(t, got, "line two")
	assert.Contains(t, got, "line three")
}

func TestValuesEqualIsEmpty(t *testing.T) {
	type pair struct{ A, B int }
	assert.Equal(t, "", arrdiff.Values(pair{1, 2}, pair{1, 2}))
}

func TestValuesDifferentReportsDiff(t *testing.T) {
	type pair struct{ A, B int }
	got := arrdiff.Values(pair{1, 2}, pair{1, 3})
	assert.NotEmpty(t, got)
}
