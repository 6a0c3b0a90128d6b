package flash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/allbin/fluidnc-flash/internal/logger"
)

// Device is one serial device as reported by "pio device list --json-output".
type Device struct {
	Port        string `json:"port"`
	Description string `json:"description"`
	HWID        string `json:"hwid,omitempty"`
}

// DeviceLister enumerates candidate upload ports.
type DeviceLister interface {
	ListDevices(ctx context.Context) ([]Device, error)
}

// Toolchain runs pio sub-commands through an Executor.
type Toolchain struct {
	path string
	exec Executor
	log  *logger.Logger
}

var _ DeviceLister = (*Toolchain)(nil)

// NewToolchain binds the pio executable at path to exec.
func NewToolchain(path string, exec Executor) *Toolchain {
	return &Toolchain{path: path, exec: exec}
}

// WithLogger attaches a logger to the toolchain.
func (t *Toolchain) WithLogger(log *logger.Logger) *Toolchain {
	t.log = log
	return t
}

// Path returns the pio executable path.
func (t *Toolchain) Path() string {
	return t.path
}

// Command returns the full argument vector for a pio sub-command.
func (t *Toolchain) Command(args ...string) []string {
	argv := make([]string, 0, len(args)+1)
	argv = append(argv, t.path)
	return append(argv, args...)
}

// Execute runs a pio sub-command.
func (t *Toolchain) Execute(ctx context.Context, args ...string) (Result, error) {
	return t.exec.Execute(ctx, t.Command(args...))
}

// ListDevices queries pio for the attached serial devices.
func (t *Toolchain) ListDevices(ctx context.Context) ([]Device, error) {
	res, err := t.Execute(ctx, "device", "list", "--json-output")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceListFailed, err)
	}
	devices, err := ParseDeviceList([]byte(res.Stdout))
	if err != nil {
		return nil, err
	}
	t.log.With("count", len(devices)).Debug("listed devices")
	return devices, nil
}

// ParseDeviceList decodes the JSON array printed by pio device list.
func ParseDeviceList(data []byte) ([]Device, error) {
	var devices []Device
	if err := json.Unmarshal(data, &devices); err != nil {
		return nil, fmt.Errorf("%w: decode device list: %v", ErrDeviceListFailed, err)
	}
	return devices, nil
}

// Stdio is the terminal wiring for attached commands.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// MonitorCommand returns the argument vector of the serial monitor.
func (t *Toolchain) MonitorCommand(port string, baud int) []string {
	return t.Command("device", "monitor", "-b", strconv.Itoa(baud), "--port", port)
}

// Monitor attaches pio device monitor to stdio until it exits.
func (t *Toolchain) Monitor(ctx context.Context, port string, baud int, stdio Stdio) error {
	argv := t.MonitorCommand(port, baud)
	t.log.ForCommand(argv).Debug("attaching monitor")

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = stdio.In
	cmd.Stdout = stdio.Out
	cmd.Stderr = stdio.Err
	return cmd.Run()
}

// CommandLine renders argv the way a user would type it.
func CommandLine(argv []string) string {
	return strings.Join(argv, " ")
}
