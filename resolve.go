package flash

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/allbin/fluidnc-flash/internal/logger"
)

// PreferredKeywords are matched case-insensitively against device
// descriptions to recognise common ESP32 USB-serial bridges.
var PreferredKeywords = []string{
	"cp210",
	"silicon labs",
	"ch340",
	"wch",
	"ftdi",
	"usb serial",
	"esp",
}

// Resolver picks the serial port to upload through.
type Resolver struct {
	lister   DeviceLister
	in       io.Reader
	report   *Reporter
	log      *logger.Logger
	keywords []string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithInput sets the source of interactive selections. Defaults to os.Stdin.
func WithInput(r io.Reader) ResolverOption {
	return func(res *Resolver) {
		res.in = r
	}
}

// WithReporter sets where the selection menu is printed.
func WithReporter(r *Reporter) ResolverOption {
	return func(res *Resolver) {
		res.report = r
	}
}

// WithResolverLogger attaches a diagnostic logger.
func WithResolverLogger(log *logger.Logger) ResolverOption {
	return func(res *Resolver) {
		res.log = log
	}
}

// WithKeywords replaces PreferredKeywords. Matching ignores case.
func WithKeywords(keywords ...string) ResolverOption {
	return func(res *Resolver) {
		res.keywords = make([]string, 0, len(keywords))
		for _, k := range keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				res.keywords = append(res.keywords, k)
			}
		}
	}
}

// NewResolver returns a Resolver querying lister for devices.
func NewResolver(lister DeviceLister, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		lister:   lister,
		in:       os.Stdin,
		keywords: PreferredKeywords,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.report == nil {
		r.report = NewReporter(nil)
	}
	return r
}

// IsPreferred reports whether the device description names a known
// USB-serial bridge.
func (r *Resolver) IsPreferred(d Device) bool {
	desc := strings.ToLower(d.Description)
	for _, k := range r.keywords {
		if strings.Contains(desc, k) {
			return true
		}
	}
	return false
}

// ResolvePort returns explicit unchanged when set. Otherwise it auto-detects
// a port, prompting when several candidates remain.
func (r *Resolver) ResolvePort(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	devices, err := r.lister.ListDevices(ctx)
	if err != nil {
		r.log.Debugf("device list unavailable, treating as empty: %v", err)
		devices = nil
	}

	var candidates, preferred []Device
	for _, d := range devices {
		if d.Port == "" {
			continue
		}
		candidates = append(candidates, d)
		if r.IsPreferred(d) {
			preferred = append(preferred, d)
		}
	}

	switch {
	case len(preferred) == 1:
		r.log.With("port", preferred[0].Port).Info("selected preferred device")
		return preferred[0].Port, nil
	case len(candidates) == 1:
		r.log.With("port", candidates[0].Port).Info("selected only device")
		return candidates[0].Port, nil
	case len(candidates) == 0:
		return "", ErrNoPorts
	}

	return r.prompt(candidates)
}

// prompt reads a single 1-based selection. One bad answer is final.
func (r *Resolver) prompt(candidates []Device) (string, error) {
	r.report.Info("Multiple serial ports detected:")
	for i, d := range candidates {
		if d.Description != "" && d.Description != "n/a" {
			r.report.Info("  %d) %s  %s", i+1, d.Port, d.Description)
		} else {
			r.report.Info("  %d) %s", i+1, d.Port)
		}
	}
	r.report.Prompt("Select port number:")

	line, err := bufio.NewReader(r.in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}

	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(candidates) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSelection, strings.TrimSpace(line))
	}
	return candidates[n-1].Port, nil
}
