package wireless

import "fmt"

// State names a position in the connection workflow.
type State string

const (
	StateStart             State = "START"
	StateLocatingBinary    State = "LOCATING_BINARY"
	StateInspectingDevices State = "INSPECTING_DEVICES"
	StateResolvingAddress  State = "RESOLVING_ADDRESS"
	StateEnablingTCPIP     State = "ENABLING_TCPIP"
	StateConnecting        State = "CONNECTING"
	StateVerifying         State = "VERIFYING"
	StateDone              State = "DONE"
	StateFailed            State = "FAILED"
)

// ConnectionTarget is the wireless endpoint the workflow establishes.
type ConnectionTarget struct {
	IP   string
	Port int
}

// Addr formats the target as adb expects it.
func (t ConnectionTarget) Addr() string {
	return fmt.Sprintf("%s:%d", t.IP, t.Port)
}

// FailureKind categorizes terminal failures.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureBinaryMissing
	FailureNoDevice
	FailureNoIP
	FailureEnable
	FailureConnect
	FailureVerify
)

// Reason returns the short failure description.
func (f FailureKind) Reason() string {
	switch f {
	case FailureBinaryMissing:
		return "binary missing"
	case FailureNoDevice:
		return "no authorized device"
	case FailureNoIP:
		return "no IP"
	case FailureEnable:
		return "enable failed"
	case FailureConnect:
		return "connect failed"
	case FailureVerify:
		return "verification failed"
	default:
		return ""
	}
}

// ExitCode maps the failure category to the process exit code.
func (f FailureKind) ExitCode() int {
	switch f {
	case FailureNone:
		return 0
	case FailureBinaryMissing:
		return 2
	case FailureNoDevice:
		return 3
	case FailureNoIP:
		return 4
	case FailureEnable:
		return 5
	case FailureConnect:
		return 6
	case FailureVerify:
		return 7
	default:
		return 1
	}
}

// Hint returns one actionable remediation suggestion for the category.
func (f FailureKind) Hint() string {
	switch f {
	case FailureBinaryMissing:
		return "install Android platform-tools"
	case FailureNoDevice:
		return "connect the device via USB, enable USB debugging, and authorize this computer"
	case FailureNoIP:
		return "make sure the device is connected to WiFi"
	case FailureEnable:
		return "reconnect the device via USB and run again"
	case FailureConnect:
		return "check that the host and device are on the same network"
	case FailureVerify:
		return "run 'adb devices' to check the connection, then try again"
	default:
		return ""
	}
}

// Outcome is the terminal result of one workflow run.
type Outcome struct {
	State   State
	Failure FailureKind
	Reason  string
	Err     error
	Serial  string
	Target  *ConnectionTarget
}

// ExitCode returns 0 for DONE and the category code for FAILED.
func (o Outcome) ExitCode() int {
	if o.State == StateDone {
		return 0
	}
	return o.Failure.ExitCode()
}
