package adb

import (
	"bufio"
	"regexp"
	"sort"
	"strings"
)

// NetworkAddress is one interface/IPv4 pair found on the device.
type NetworkAddress struct {
	Interface string
	IP        string
}

// DefaultInterfacePreference orders interface-name prefixes from most to
// least likely to carry the WiFi address.
var DefaultInterfacePreference = []string{"wlan", "wifi", "eth", "rmnet"}

var (
	// "2: wlan0: <BROADCAST,...>" or "2: wlan0    inet ..." (ip -o form)
	ifaceHeaderRe = regexp.MustCompile(`^\d+:\s+([^:\s@]+)`)
	inetRe        = regexp.MustCompile(`\binet\s+(\d+\.\d+\.\d+\.\d+)/\d+`)
)

// parseInterfaceAddrs extracts interface/IPv4 pairs from `ip addr show`
// output, in either the block or the single-line (-o) form. Order follows
// the listing.
func parseInterfaceAddrs(output string) []NetworkAddress {
	var addrs []NetworkAddress
	current := ""
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if m := ifaceHeaderRe.FindStringSubmatch(line); m != nil {
			current = m[1]
		}
		if m := inetRe.FindStringSubmatch(line); m != nil && current != "" {
			addrs = append(addrs, NetworkAddress{Interface: current, IP: m[1]})
		}
	}
	return addrs
}

// usable rejects loopback and link-local addresses.
func (a NetworkAddress) usable() bool {
	return !strings.HasPrefix(a.IP, "127.") && !strings.HasPrefix(a.IP, "169.254.")
}

// preferenceRank returns the index of the first matching prefix, or
// len(prefs) when no prefix matches.
func preferenceRank(name string, prefs []string) int {
	for i, p := range prefs {
		if strings.HasPrefix(name, p) {
			return i
		}
	}
	return len(prefs)
}

// selectAddress picks the best candidate: lowest preference rank wins,
// first-seen order breaks ties. Returns false when nothing survives the
// loopback/link-local filter.
func selectAddress(addrs []NetworkAddress, prefs []string) (NetworkAddress, bool) {
	var usable []NetworkAddress
	for _, a := range addrs {
		if a.usable() {
			usable = append(usable, a)
		}
	}
	if len(usable) == 0 {
		return NetworkAddress{}, false
	}
	sort.SliceStable(usable, func(i, j int) bool {
		return preferenceRank(usable[i].Interface, prefs) < preferenceRank(usable[j].Interface, prefs)
	})
	return usable[0], true
}
