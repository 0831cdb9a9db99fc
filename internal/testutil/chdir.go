package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// Chdir changes the process working directory for the duration of the test
// and restores it on cleanup. Tests using it must not run in parallel.
func Chdir(t *testing.T, dir string) {
	t.Helper()

	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(orig))
	})
}
