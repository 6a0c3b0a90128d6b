package flash

import (
	"context"
	"errors"
	"os"
	"strings"
)

const testPIO = "/opt/pio/bin/pio"

// fakeExecutor records each argv and answers by pio target.
type fakeExecutor struct {
	calls    [][]string
	results  map[string]Result
	failures map[string]error
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{
		results:  map[string]Result{},
		failures: map[string]error{},
	}
}

func (f *fakeExecutor) fail(target string, res Result) *fakeExecutor {
	f.results[target] = res
	f.failures[target] = errors.New("exit status 1")
	return f
}

func (f *fakeExecutor) Execute(ctx context.Context, argv []string) (Result, error) {
	f.calls = append(f.calls, argv)
	target := targetOf(argv)
	return f.results[target], f.failures[target]
}

// targets returns the target of every recorded call in order.
func (f *fakeExecutor) targets() []string {
	var out []string
	for _, c := range f.calls {
		out = append(out, targetOf(c))
	}
	return out
}

// targetOf maps a pio argv to build, erase, upload, uploadfs or
// "device list".
func targetOf(argv []string) string {
	for i, a := range argv {
		if a == "-t" && i+1 < len(argv) {
			return argv[i+1]
		}
	}
	if len(argv) > 2 && argv[1] == "device" {
		return "device " + argv[2]
	}
	if len(argv) > 1 && argv[1] == "run" {
		return "build"
	}
	return strings.Join(argv, " ")
}

type fakeLister struct {
	devices []Device
	err     error
	calls   int
}

func (f *fakeLister) ListDevices(ctx context.Context) ([]Device, error) {
	f.calls++
	return f.devices, f.err
}

func writeFile(path string) error {
	return os.WriteFile(path, []byte("x"), 0644)
}
