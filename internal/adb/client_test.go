package adb

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner scripts responses keyed by the joined argument list and
// records every invocation.
type fakeRunner struct {
	calls   []string
	respond func(args string) Result
}

func (f *fakeRunner) Run(name string, args []string, timeout time.Duration) Result {
	joined := strings.Join(args, " ")
	f.calls = append(f.calls, joined)
	return f.respond(joined)
}

func newFakeClient(respond func(args string) Result) (*Client, *fakeRunner) {
	runner := &fakeRunner{respond: respond}
	return NewClient("/usr/bin/adb", runner), runner
}

func TestClientVersion(t *testing.T) {
	t.Run("FirstLineOfBanner", func(t *testing.T) {
		client, _ := newFakeClient(func(string) Result {
			return Result{Stdout: "Android Debug Bridge version 1.0.41\nVersion 34.0.4\n"}
		})
		v, err := client.Version()
		require.NoError(t, err)
		assert.Equal(t, "Android Debug Bridge version 1.0.41", v)
	})

	t.Run("BrokenBinary", func(t *testing.T) {
		client, _ := newFakeClient(func(string) Result {
			return Result{ExitStatus: StartFailureExit, Stderr: "permission denied"}
		})
		_, err := client.Version()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "permission denied")
	})
}

func TestClientDevices(t *testing.T) {
	client, runner := newFakeClient(func(args string) Result {
		return Result{Stdout: "List of devices attached\nABC123\tdevice\nDEF456\tunauthorized\n"}
	})
	devices, err := client.AuthorizedDevices()
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "ABC123", devices[0].Serial)
	assert.Equal(t, []string{"devices"}, runner.calls)
}

func TestClientConnect(t *testing.T) {
	t.Run("Connected", func(t *testing.T) {
		client, _ := newFakeClient(func(string) Result {
			return Result{Stdout: "connected to 192.168.1.50:5555\n"}
		})
		assert.NoError(t, client.Connect("192.168.1.50", 5555))
	})

	t.Run("AlreadyConnectedIsSuccess", func(t *testing.T) {
		client, _ := newFakeClient(func(string) Result {
			return Result{Stdout: "already connected to 192.168.1.50:5555\n"}
		})
		assert.NoError(t, client.Connect("192.168.1.50", 5555))
	})

	t.Run("RefusalWithExitZero", func(t *testing.T) {
		client, _ := newFakeClient(func(string) Result {
			return Result{Stdout: "failed to connect to 192.168.1.50:5555\n"}
		})
		err := client.Connect("192.168.1.50", 5555)
		require.Error(t, err)
		var cmdErr *CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Contains(t, cmdErr.Output, "failed to connect")
	})

	t.Run("Timeout", func(t *testing.T) {
		client, _ := newFakeClient(func(string) Result {
			return Result{ExitStatus: StartFailureExit, TimedOut: true}
		})
		err := client.Connect("192.168.1.50", 5555)
		var cmdErr *CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.True(t, cmdErr.TimedOut)
	})
}

func TestClientTCPIP(t *testing.T) {
	t.Run("PassesSerialAndPort", func(t *testing.T) {
		client, runner := newFakeClient(func(string) Result {
			return Result{Stdout: "restarting in TCP mode port: 5555\n"}
		})
		require.NoError(t, client.TCPIP("ABC123", 5555))
		assert.Equal(t, []string{"-s ABC123 tcpip 5555"}, runner.calls)
	})

	t.Run("FailureCarriesExitStatus", func(t *testing.T) {
		client, _ := newFakeClient(func(string) Result {
			return Result{ExitStatus: 1, Stderr: "error: device offline"}
		})
		err := client.TCPIP("ABC123", 5555)
		var cmdErr *CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, 1, cmdErr.ExitStatus)
	})
}

func TestClientDeviceIP(t *testing.T) {
	t.Run("FromInterfaceListing", func(t *testing.T) {
		client, _ := newFakeClient(func(args string) Result {
			if strings.Contains(args, "addr show") {
				return Result{Stdout: "24: eth0    inet 10.0.0.7/24 scope global eth0\n30: wlan0    inet 192.168.1.50/24 scope global wlan0\n"}
			}
			return Result{}
		})
		addr, err := client.DeviceIP("ABC123")
		require.NoError(t, err)
		assert.Equal(t, "wlan0", addr.Interface)
		assert.Equal(t, "192.168.1.50", addr.IP)
	})

	t.Run("GetpropFallback", func(t *testing.T) {
		client, _ := newFakeClient(func(args string) Result {
			if strings.Contains(args, "getprop") {
				return Result{Stdout: "192.168.1.77\n"}
			}
			return Result{ExitStatus: 1}
		})
		addr, err := client.DeviceIP("ABC123")
		require.NoError(t, err)
		assert.Equal(t, "192.168.1.77", addr.IP)
	})

	t.Run("NothingUsable", func(t *testing.T) {
		client, _ := newFakeClient(func(args string) Result {
			if strings.Contains(args, "addr show") {
				return Result{Stdout: "1: lo    inet 127.0.0.1/8 scope host lo\n"}
			}
			return Result{Stdout: "\n"}
		})
		_, err := client.DeviceIP("ABC123")
		assert.ErrorIs(t, err, ErrNoAddress)
	})
}
