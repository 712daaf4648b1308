// Package arrdiff prints readable structural diffs of array and signature
// values on test failure, driven directly from %#v dumps of the two values
// rather than from file pairs.
package arrdiff

import (
	"fmt"

	"github.com/kylelemons/godebug/diff"
)

// Strings returns a unified-looking line diff between want and got, or ""
// if they're equal.
func Strings(want, got string) string {
	if want == got {
		return ""
	}
	return diff.Diff(want, got)
}

// Values formats want and got with %#v and diffs the results, for use in
// require.True(t, arrdiff.Values(...) == "", ...)-style assertions on
// value.Value and checker.Signature failures where testify's default
// diff is too noisy (large Data slices).
func Values(want, got any) string {
	return Strings(fmt.Sprintf("%#v", want), fmt.Sprintf("%#v", got))
}
