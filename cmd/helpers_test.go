package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	flash "github.com/allbin/fluidnc-flash"
	"github.com/allbin/fluidnc-flash/internal/logger"
)

const fakePIO = "/usr/local/bin/pio"

// recordingExecutor stands in for pio. Targets listed in fail exit non-zero.
type recordingExecutor struct {
	calls  []string
	fail   map[string]bool
	output map[string]string
}

func (r *recordingExecutor) Execute(ctx context.Context, argv []string) (flash.Result, error) {
	line := strings.TrimPrefix(flash.CommandLine(argv), fakePIO+" ")
	r.calls = append(r.calls, line)
	if r.fail[line] {
		return flash.Result{Stderr: "pio: " + line + " failed"}, errors.New("exit status 1")
	}
	return flash.Result{Stdout: r.output[line]}, nil
}

// useFakePIO swaps the pio lookup and executor seams for the test duration.
func useFakePIO(t *testing.T, exec *recordingExecutor) {
	t.Helper()
	origLocate, origExec := locatePIO, newExecutor
	locatePIO = func(string) (string, error) { return fakePIO, nil }
	newExecutor = func(*logger.Logger) flash.Executor { return exec }
	t.Cleanup(func() {
		locatePIO, newExecutor = origLocate, origExec
	})
}

type testStdio struct {
	out, err bytes.Buffer
}

func newTestStdio(input string) (flash.Stdio, *testStdio) {
	ts := &testStdio{}
	return flash.Stdio{In: strings.NewReader(input), Out: &ts.out, Err: &ts.err}, ts
}

// staticLister always reports the same devices.
type staticLister []flash.Device

func (l staticLister) ListDevices(context.Context) ([]flash.Device, error) {
	return l, nil
}

// chdir changes the working directory for the test duration, restoring it on
// cleanup (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
