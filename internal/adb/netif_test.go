package adb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ipAddrOneLine = `1: lo    inet 127.0.0.1/8 scope host lo\       valid_lft forever preferred_lft forever
24: eth0    inet 10.0.0.7/24 brd 10.0.0.255 scope global eth0\       valid_lft forever preferred_lft forever
30: wlan0    inet 192.168.1.50/24 brd 192.168.1.255 scope global wlan0\       valid_lft forever preferred_lft forever`

const ipAddrBlocks = `1: lo: <LOOPBACK,UP,LOWER_UP> mtu 65536
    inet 127.0.0.1/8 scope host lo
2: wlan0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500
    inet 192.168.1.50/24 brd 192.168.1.255 scope global wlan0
`

func TestParseInterfaceAddrs(t *testing.T) {
	t.Run("SingleLineForm", func(t *testing.T) {
		addrs := parseInterfaceAddrs(ipAddrOneLine)
		require.Len(t, addrs, 3)
		assert.Equal(t, NetworkAddress{Interface: "lo", IP: "127.0.0.1"}, addrs[0])
		assert.Equal(t, NetworkAddress{Interface: "eth0", IP: "10.0.0.7"}, addrs[1])
		assert.Equal(t, NetworkAddress{Interface: "wlan0", IP: "192.168.1.50"}, addrs[2])
	})

	t.Run("BlockForm", func(t *testing.T) {
		addrs := parseInterfaceAddrs(ipAddrBlocks)
		require.Len(t, addrs, 2)
		assert.Equal(t, "wlan0", addrs[1].Interface)
		assert.Equal(t, "192.168.1.50", addrs[1].IP)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, parseInterfaceAddrs(""))
	})
}

func TestSelectAddress(t *testing.T) {
	prefs := DefaultInterfacePreference

	t.Run("WlanBeatsEthRegardlessOfOrder", func(t *testing.T) {
		addr, ok := selectAddress([]NetworkAddress{
			{Interface: "eth0", IP: "10.0.0.7"},
			{Interface: "wlan0", IP: "192.168.1.50"},
		}, prefs)
		require.True(t, ok)
		assert.Equal(t, "wlan0", addr.Interface)

		addr, ok = selectAddress([]NetworkAddress{
			{Interface: "wlan0", IP: "192.168.1.50"},
			{Interface: "eth0", IP: "10.0.0.7"},
		}, prefs)
		require.True(t, ok)
		assert.Equal(t, "wlan0", addr.Interface)
	})

	t.Run("FirstSeenBreaksTies", func(t *testing.T) {
		addr, ok := selectAddress([]NetworkAddress{
			{Interface: "wlan0", IP: "192.168.1.50"},
			{Interface: "wlan1", IP: "192.168.1.51"},
		}, prefs)
		require.True(t, ok)
		assert.Equal(t, "192.168.1.50", addr.IP)
	})

	t.Run("LoopbackAndLinkLocalRejected", func(t *testing.T) {
		_, ok := selectAddress([]NetworkAddress{
			{Interface: "lo", IP: "127.0.0.1"},
			{Interface: "wlan0", IP: "169.254.3.4"},
		}, prefs)
		assert.False(t, ok)
	})

	t.Run("UnknownInterfaceStillUsable", func(t *testing.T) {
		addr, ok := selectAddress([]NetworkAddress{
			{Interface: "ccmni0", IP: "10.20.30.40"},
		}, prefs)
		require.True(t, ok)
		assert.Equal(t, "10.20.30.40", addr.IP)
	})
}
