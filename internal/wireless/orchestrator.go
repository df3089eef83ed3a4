package wireless

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/golanpiyush/adbwifi/internal/adb"
	"github.com/golanpiyush/adbwifi/internal/logging"
)

// Bridge is the slice of the adb client the workflow needs.
type Bridge interface {
	Version() (string, error)
	Devices() ([]adb.Device, error)
	AuthorizedDevices() ([]adb.Device, error)
	DeviceIP(serial string) (adb.NetworkAddress, error)
	TCPIP(serial string, port int) error
	Connect(ip string, port int) error
}

// IPStore remembers device WiFi addresses across runs.
type IPStore interface {
	LastIP(serial string) (string, bool, error)
	RememberIP(serial, ip string) error
}

// Options configures one workflow run.
type Options struct {
	Port       int
	Retries    int
	RetryDelay time.Duration
	// Serial pins the workflow to one device. Empty means the first
	// authorized device in listing order; any others are ignored.
	Serial string
}

var errNotVerified = errors.New("device not listed with a network identifier")

// Orchestrator walks a device from USB to wireless debugging. Every step
// is a blocking adb invocation; retryable steps use a bounded attempt
// count with a fixed delay.
type Orchestrator struct {
	Locate    func() (string, error)
	NewBridge func(path string) Bridge
	Reporter  Reporter
	Sleep     func(time.Duration)
	Store     IPStore // optional

	opts   Options
	serial string
	log    *logrus.Entry
}

// New builds an orchestrator wired to the real adb binary. Callers replace
// the seams (Locate, NewBridge, Sleep, Store) as needed.
func New(opts Options) *Orchestrator {
	return &Orchestrator{
		Locate: adb.Locate,
		NewBridge: func(path string) Bridge {
			return adb.NewClient(path, adb.NewExecRunner())
		},
		Reporter: NopReporter{},
		Sleep:    time.Sleep,
		opts:     opts,
		log:      logging.WithComponent("wireless"),
	}
}

// Run executes the full workflow and always returns a terminal Outcome.
func (o *Orchestrator) Run() Outcome {
	o.Reporter.Stepf("Locating adb binary...")
	path, err := o.Locate()
	if err != nil {
		return o.fail(FailureBinaryMissing, err, nil)
	}
	bridge := o.NewBridge(path)

	version, err := bridge.Version()
	if err != nil {
		return o.fail(FailureBinaryMissing, fmt.Errorf("adb at %s is not usable: %w", path, err), nil)
	}
	o.Reporter.Successf("Found adb at %s (%s)", path, version)

	o.Reporter.Stepf("Checking for connected devices...")
	device, already, out := o.selectDevice(bridge)
	if out != nil {
		return *out
	}
	if already != nil {
		o.serial = already.Addr()
		o.Reporter.Successf("Already connected wirelessly to %s", already.Addr())
		return Outcome{State: StateDone, Serial: o.serial, Target: already}
	}
	o.serial = device.Serial
	o.Reporter.Successf("Using device %s", device.Serial)

	o.Reporter.Stepf("Resolving device IP address...")
	target, out := o.resolveTarget(bridge, device.Serial)
	if out != nil {
		return *out
	}
	o.Reporter.Successf("Device address: %s", target.IP)

	o.Reporter.Stepf("Enabling TCP/IP mode on port %d...", target.Port)
	if err := o.withRetry("enable tcpip", func() error {
		return bridge.TCPIP(device.Serial, target.Port)
	}); err != nil {
		return o.fail(FailureEnable, err, &target)
	}
	// adbd restarts after tcpip; give it a moment before connecting.
	o.Sleep(o.opts.RetryDelay)

	o.Reporter.Stepf("Connecting to %s...", target.Addr())
	if err := o.withRetry("connect", func() error {
		return bridge.Connect(target.IP, target.Port)
	}); err != nil {
		return o.fail(FailureConnect, err, &target)
	}

	o.Reporter.Stepf("Verifying wireless connection...")
	if err := o.withRetry("verify", func() error {
		return o.verify(bridge, target)
	}); err != nil {
		return o.fail(FailureVerify, err, &target)
	}

	o.Reporter.Successf("Device is accessible at %s; the USB cable can be unplugged", target.Addr())
	return Outcome{State: StateDone, Serial: o.serial, Target: &target}
}

// selectDevice picks the device to work on. It returns a non-nil target
// when the workflow is already complete (device connected wirelessly), and
// a non-nil Outcome on terminal failure.
func (o *Orchestrator) selectDevice(bridge Bridge) (adb.Device, *ConnectionTarget, *Outcome) {
	devices, err := bridge.AuthorizedDevices()
	if err != nil {
		out := o.fail(FailureNoDevice, err, nil)
		return adb.Device{}, nil, &out
	}

	var usb []adb.Device
	var wireless []adb.Device
	for _, d := range devices {
		if o.opts.Serial != "" && d.Serial != o.opts.Serial {
			continue
		}
		if d.Wireless() {
			wireless = append(wireless, d)
		} else {
			usb = append(usb, d)
		}
	}

	if len(usb) > 0 {
		if len(usb) > 1 {
			o.log.WithField("count", len(usb)).Warn("multiple authorized devices, using the first")
		}
		return usb[0], nil, nil
	}
	// Re-run tolerance: a device already in TCP/IP mode has no USB serial
	// in the list, only its ip:port entry.
	if len(wireless) > 0 {
		if t, ok := parseTarget(wireless[0].Serial); ok {
			return adb.Device{}, &t, nil
		}
	}
	out := o.fail(FailureNoDevice, errors.New("no authorized device found"), nil)
	return adb.Device{}, nil, &out
}

func (o *Orchestrator) resolveTarget(bridge Bridge, serial string) (ConnectionTarget, *Outcome) {
	addr, err := bridge.DeviceIP(serial)
	if err != nil {
		if o.Store != nil {
			if ip, ok, lerr := o.Store.LastIP(serial); lerr == nil && ok {
				o.Reporter.Stepf("Interface listing gave nothing, using last known IP %s", ip)
				return ConnectionTarget{IP: ip, Port: o.opts.Port}, nil
			}
		}
		out := o.fail(FailureNoIP, err, nil)
		return ConnectionTarget{}, &out
	}
	o.log.WithFields(logrus.Fields{
		"interface": addr.Interface,
		"ip":        addr.IP,
	}).Info("resolved device address")
	if o.Store != nil {
		if err := o.Store.RememberIP(serial, addr.IP); err != nil {
			o.log.WithError(err).Warn("could not persist device IP")
		}
	}
	return ConnectionTarget{IP: addr.IP, Port: o.opts.Port}, nil
}

func (o *Orchestrator) verify(bridge Bridge, target ConnectionTarget) error {
	devices, err := bridge.Devices()
	if err != nil {
		return err
	}
	for _, d := range devices {
		if !d.Authorized() || !d.Wireless() {
			continue
		}
		if d.Serial == target.Addr() || strings.HasPrefix(d.Serial, target.IP+":") {
			return nil
		}
	}
	return errNotVerified
}

// withRetry runs fn up to Retries times with a fixed delay between
// attempts, returning the last error on exhaustion.
func (o *Orchestrator) withRetry(step string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= o.opts.Retries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		o.log.WithFields(logrus.Fields{
			"step":    step,
			"attempt": attempt,
		}).WithError(err).Debug("step attempt failed")
		if attempt < o.opts.Retries {
			o.Reporter.Stepf("Attempt %d of %d for %s failed, retrying...", attempt, o.opts.Retries, step)
			o.Sleep(o.opts.RetryDelay)
		}
	}
	return fmt.Errorf("%s after %d attempts: %w", step, o.opts.Retries, err)
}

func (o *Orchestrator) fail(kind FailureKind, err error, target *ConnectionTarget) Outcome {
	o.Reporter.Failuref("%s: %v", kind.Reason(), err)
	if hint := kind.Hint(); hint != "" {
		o.Reporter.Hintf("%s", hint)
	}
	if kind == FailureBinaryMissing {
		o.Reporter.Hintf("for example: %s", adb.InstallHint())
	}
	return Outcome{
		State:   StateFailed,
		Failure: kind,
		Reason:  kind.Reason(),
		Err:     err,
		Serial:  o.serial,
		Target:  target,
	}
}

// parseTarget splits an "ip:port" device identifier.
func parseTarget(serial string) (ConnectionTarget, bool) {
	host, portStr, ok := strings.Cut(serial, ":")
	if !ok {
		return ConnectionTarget{}, false
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return ConnectionTarget{}, false
	}
	return ConnectionTarget{IP: host, Port: port}, true
}
