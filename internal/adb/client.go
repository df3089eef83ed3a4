package adb

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/golanpiyush/adbwifi/internal/logging"
)

// ErrNoAddress is returned when no usable IPv4 address can be resolved on
// the device.
var ErrNoAddress = errors.New("no usable device IP address")

// CommandError reports an adb invocation that ran but did not succeed.
type CommandError struct {
	Command    string
	ExitStatus int
	Output     string
	TimedOut   bool
}

func (e *CommandError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("adb %s: timed out", e.Command)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		return fmt.Sprintf("adb %s: exit %d: %s", e.Command, e.ExitStatus, out)
	}
	return fmt.Sprintf("adb %s: exit %d", e.Command, e.ExitStatus)
}

// Client wraps adb command-line calls through a Runner.
type Client struct {
	path   string
	runner Runner
	log    *logrus.Entry

	// Timeout bounds ordinary invocations; ConnectTimeout bounds the
	// connect command, which can block on an unresponsive device.
	Timeout        time.Duration
	ConnectTimeout time.Duration

	// InterfacePreference orders interface-name prefixes for IP selection.
	InterfacePreference []string
}

// NewClient creates a client for the adb binary at path.
func NewClient(path string, runner Runner) *Client {
	return &Client{
		path:                path,
		runner:              runner,
		log:                 logging.WithComponent("adb"),
		Timeout:             10 * time.Second,
		ConnectTimeout:      15 * time.Second,
		InterfacePreference: DefaultInterfacePreference,
	}
}

func (c *Client) run(timeout time.Duration, args ...string) Result {
	res := c.runner.Run(c.path, args, timeout)
	c.log.WithFields(logrus.Fields{
		"args":      strings.Join(args, " "),
		"exit":      res.ExitStatus,
		"timed_out": res.TimedOut,
	}).Debug("adb invocation")
	return res
}

func (c *Client) commandError(res Result, args ...string) *CommandError {
	out := res.Stderr
	if out == "" {
		out = res.Stdout
	}
	return &CommandError{
		Command:    strings.Join(args, " "),
		ExitStatus: res.ExitStatus,
		Output:     out,
		TimedOut:   res.TimedOut,
	}
}

// Version probes the binary and returns the first line of its version
// banner.
func (c *Client) Version() (string, error) {
	res := c.run(c.Timeout, "version")
	if !res.Ok() {
		return "", c.commandError(res, "version")
	}
	line, _, _ := strings.Cut(strings.TrimSpace(res.Stdout), "\n")
	return strings.TrimSpace(line), nil
}

// Devices returns all devices known to the adb server.
func (c *Client) Devices() ([]Device, error) {
	res := c.run(c.Timeout, "devices")
	if !res.Ok() {
		return nil, c.commandError(res, "devices")
	}
	return parseDeviceList(res.Stdout), nil
}

// AuthorizedDevices returns devices in "device" state, in listing order.
func (c *Client) AuthorizedDevices() ([]Device, error) {
	devices, err := c.Devices()
	if err != nil {
		return nil, err
	}
	return filterAuthorized(devices), nil
}

// Shell runs a command on the device and returns its raw result.
func (c *Client) Shell(serial string, cmd ...string) Result {
	args := append([]string{"-s", serial, "shell"}, cmd...)
	return c.run(c.Timeout, args...)
}

// DeviceIP resolves the device's WiFi IPv4 address: parse the interface
// listing first, fall back to the DHCP property if that yields nothing.
func (c *Client) DeviceIP(serial string) (NetworkAddress, error) {
	res := c.Shell(serial, "ip", "-o", "-f", "inet", "addr", "show")
	if res.Ok() {
		if addr, ok := selectAddress(parseInterfaceAddrs(res.Stdout), c.InterfacePreference); ok {
			c.log.WithFields(logrus.Fields{
				"interface": addr.Interface,
				"ip":        addr.IP,
			}).Debug("resolved device address")
			return addr, nil
		}
	}

	res = c.Shell(serial, "getprop", "dhcp.wlan0.ipaddress")
	if res.Ok() {
		ip := strings.TrimSpace(res.Stdout)
		a := NetworkAddress{Interface: "wlan0", IP: ip}
		if ip != "" && a.usable() {
			return a, nil
		}
	}
	return NetworkAddress{}, ErrNoAddress
}

// TCPIP switches the device's adbd to listen on the given TCP port.
func (c *Client) TCPIP(serial string, port int) error {
	args := []string{"-s", serial, "tcpip", fmt.Sprintf("%d", port)}
	res := c.run(c.Timeout, args...)
	if !res.Ok() {
		return c.commandError(res, args...)
	}
	return nil
}

// Connect asks the adb server to connect to ip:port. adb exits 0 even on
// refusal, so the output decides: anything containing "connected"
// (including "already connected") is success.
func (c *Client) Connect(ip string, port int) error {
	addr := fmt.Sprintf("%s:%d", ip, port)
	res := c.run(c.ConnectTimeout, "connect", addr)
	if !res.Ok() {
		return c.commandError(res, "connect", addr)
	}
	if strings.Contains(strings.ToLower(res.Stdout), "connected") {
		return nil
	}
	return &CommandError{
		Command:    "connect " + addr,
		ExitStatus: res.ExitStatus,
		Output:     strings.TrimSpace(res.Stdout),
	}
}

// Disconnect drops the connection to a wireless target ("ip:port").
func (c *Client) Disconnect(target string) error {
	res := c.run(c.Timeout, "disconnect", target)
	if !res.Ok() {
		return c.commandError(res, "disconnect", target)
	}
	return nil
}
