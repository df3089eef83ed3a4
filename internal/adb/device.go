package adb

import (
	"bufio"
	"strings"
)

// ConnectionType indicates how a device is connected.
type ConnectionType string

const (
	USB  ConnectionType = "usb"
	WiFi ConnectionType = "wifi"
)

// Device represents one entry from `adb devices`.
type Device struct {
	Serial   string
	State    string // "device", "offline", "unauthorized", etc.
	ConnType ConnectionType
}

// Authorized returns true if the device accepted the host's debugging key
// and is ready for commands.
func (d Device) Authorized() bool {
	return d.State == "device"
}

// Wireless returns true for ip:port entries.
func (d Device) Wireless() bool {
	return d.ConnType == WiFi
}

// parseDeviceList parses `adb devices` output: a header line followed by
// one "serial\tstate" line per device.
func parseDeviceList(output string) []Device {
	var devices []Device
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "List of") || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		d := Device{
			Serial: fields[0],
			State:  fields[1],
		}
		if strings.Contains(d.Serial, ":") {
			d.ConnType = WiFi
		} else {
			d.ConnType = USB
		}
		devices = append(devices, d)
	}
	return devices
}

// filterAuthorized keeps devices in "device" state, preserving order.
func filterAuthorized(devices []Device) []Device {
	var out []Device
	for _, d := range devices {
		if d.Authorized() {
			out = append(out, d)
		}
	}
	return out
}
