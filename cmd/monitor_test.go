package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	flash "github.com/allbin/fluidnc-flash"
)

type attachCall struct {
	port string
	baud int
}

// useFakeMonitor records monitor attachments instead of running pio.
func useFakeMonitor(t *testing.T, err error) *[]attachCall {
	t.Helper()
	var calls []attachCall
	orig := attachMonitor
	attachMonitor = func(_ *flash.Toolchain, _ context.Context, port string, baud int, _ flash.Stdio) error {
		calls = append(calls, attachCall{port: port, baud: baud})
		return err
	}
	t.Cleanup(func() { attachMonitor = orig })
	return &calls
}

func TestRunMonitor(t *testing.T) {
	list := `[{"port": "/dev/ttyS0", "description": "ttyS0"}, {"port": "/dev/ttyUSB0", "description": "CP2102N USB to UART Bridge Controller"}]`

	tests := []struct {
		name      string
		port      string
		wantPort  string
		wantCalls []string
	}{
		{"explicit port is trimmed", " COM7 ", "COM7", nil},
		{"blank port auto-detects", "   ", "/dev/ttyUSB0", []string{listCmd}},
		{"empty port auto-detects", "", "/dev/ttyUSB0", []string{listCmd}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &recordingExecutor{output: map[string]string{listCmd: list}}
			useFakePIO(t, exec)
			calls := useFakeMonitor(t, nil)
			stdio, ts := newTestStdio("")

			s := settings{Port: tt.port, Baud: 921600, LogLevel: "warn"}
			require.NoError(t, runMonitor(context.Background(), s, stdio))

			assert.Equal(t, tt.wantCalls, exec.calls)
			assert.Equal(t, []attachCall{{port: tt.wantPort, baud: 921600}}, *calls)
			assert.Contains(t, ts.out.String(), "Monitoring "+tt.wantPort+" at 921600 baud")
		})
	}
}

func TestRunMonitorFailures(t *testing.T) {
	t.Run("no ports", func(t *testing.T) {
		exec := &recordingExecutor{output: map[string]string{listCmd: `[]`}}
		useFakePIO(t, exec)
		calls := useFakeMonitor(t, nil)
		stdio, ts := newTestStdio("")

		err := runMonitor(context.Background(), settings{Baud: 115200}, stdio)
		require.ErrorIs(t, err, flash.ErrNoPorts)
		assert.Empty(t, *calls)
		assert.Contains(t, ts.out.String(), "No serial ports found")
	})

	t.Run("monitor exits non-zero", func(t *testing.T) {
		useFakePIO(t, &recordingExecutor{})
		useFakeMonitor(t, errors.New("exit status 1"))
		stdio, ts := newTestStdio("")

		err := runMonitor(context.Background(), settings{Port: "COM7", Baud: 115200}, stdio)
		require.EqualError(t, err, "exit status 1")
		assert.Contains(t, ts.out.String(), "Exit status 1")
	})
}
