package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeRoot runs Execute with args and returns the exit code it requested,
// or -1 when it returned normally.
func executeRoot(t *testing.T, args ...string) (int, string) {
	t.Helper()
	chdir(t, t.TempDir())

	code := -1
	origExit := exit
	exit = func(c int) { code = c }

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		exit = origExit
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		reset := func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
		rootCmd.Flags().VisitAll(reset)
		rootCmd.PersistentFlags().VisitAll(reset)
	})

	Execute()
	return code, out.String()
}

func TestExecuteExitStatus(t *testing.T) {
	t.Run("success returns normally", func(t *testing.T) {
		exec := &recordingExecutor{}
		useFakePIO(t, exec)

		code, out := executeRoot(t, "--port", "COM7", "--no-fs", "--data-dir", t.TempDir())
		assert.Equal(t, -1, code)
		assert.Equal(t, []string{buildCmd, eraseCmd, uploadCmd}, exec.calls)
		assert.Contains(t, out, "Done. To watch logs:")
	})

	t.Run("step failure exits 1", func(t *testing.T) {
		exec := &recordingExecutor{fail: map[string]bool{uploadCmd: true}}
		useFakePIO(t, exec)

		code, _ := executeRoot(t, "--port", "COM7")
		assert.Equal(t, 1, code)
		assert.Equal(t, []string{buildCmd, eraseCmd, uploadCmd}, exec.calls)
	})

	t.Run("missing pio exits 1", func(t *testing.T) {
		code, out := executeRoot(t, "--port", "COM7", "--pio", filepath.Join(t.TempDir(), "pio"))
		assert.Equal(t, 1, code)
		assert.Contains(t, out, "PlatformIO not found")
	})

	t.Run("unexpected argument exits 1", func(t *testing.T) {
		useFakePIO(t, &recordingExecutor{})

		code, _ := executeRoot(t, "extra")
		require.Equal(t, 1, code)
	})
}
