package gateway

import "fmt"

// DeviceInfo is a snapshot of one device known to the gateway, taken at
// scan time. Instances are constructed fresh on every scan; no identity
// persists across scans.
type DeviceInfo struct {
	// MAC is the device MAC address and the stable identity key.
	// Casing is preserved exactly as the gateway reports it.
	MAC string

	// Name is the advertised hostname. When the gateway reports no
	// hostname the MAC address is used instead, so Name is never empty.
	Name string

	// Connected reports whether the device was online at scan time.
	Connected bool

	// IP is the device address, empty when the gateway reports none.
	// When the gateway reports both, IPv4 wins over IPv6.
	IP string
}

// String returns a human-readable representation of the device.
func (d DeviceInfo) String() string {
	state := "offline"
	if d.Connected {
		state = "online"
	}
	if d.IP == "" {
		return fmt.Sprintf("%s (%s) %s", d.Name, d.MAC, state)
	}
	return fmt.Sprintf("%s (%s) %s at %s", d.Name, d.MAC, state, d.IP)
}

// displayName applies the shared hostname fallback: a device with no
// reported name is displayed by its MAC address.
func displayName(name, mac string) string {
	if name == "" {
		return mac
	}
	return name
}
