package flash

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"go.bug.st/serial/enumerator"
)

// LocalLister enumerates serial ports directly from the operating system,
// without asking pio.
type LocalLister struct {
	enumerate func() ([]*enumerator.PortDetails, error)
}

var _ DeviceLister = LocalLister{}

// ListDevices implements DeviceLister. Devices are sorted by port name.
func (l LocalLister) ListDevices(ctx context.Context) ([]Device, error) {
	enumerate := l.enumerate
	if enumerate == nil {
		enumerate = enumerator.GetDetailedPortsList
	}
	details, err := enumerate()
	if err != nil {
		return nil, err
	}
	return devicesFromDetails(details), nil
}

func devicesFromDetails(details []*enumerator.PortDetails) []Device {
	devices := make([]Device, 0, len(details))
	for _, d := range details {
		if d == nil || d.Name == "" {
			continue
		}
		dev := Device{
			Port:        d.Name,
			Description: getPortDescription(d.Name),
		}
		if d.IsUSB {
			if d.Product != "" {
				dev.Description = d.Product
			}
			dev.HWID = "USB VID:PID=" + strings.ToUpper(d.VID) + ":" + strings.ToUpper(d.PID)
			if d.SerialNumber != "" {
				dev.HWID += " SER=" + d.SerialNumber
			}
		}
		devices = append(devices, dev)
	}

	sort.Slice(devices, func(i, j int) bool { return devices[i].Port < devices[j].Port })
	return devices
}

// getPortDescription provides human-readable descriptions for different port types
func getPortDescription(port string) string {
	name := filepath.Base(port)
	switch {
	case strings.HasPrefix(name, "ttyUSB"), strings.HasPrefix(name, "cu.usbserial"):
		return "USB Serial Port"
	case strings.HasPrefix(name, "ttyACM"), strings.HasPrefix(name, "cu.usbmodem"):
		return "USB CDC/ACM Device"
	case strings.HasPrefix(name, "ttyAMA"):
		return "ARM Serial Port"
	case strings.HasPrefix(name, "ttyS"):
		return "Standard Serial Port"
	case strings.HasPrefix(strings.ToUpper(name), "COM"):
		return "Communications Port"
	default:
		return "Serial Port"
	}
}
