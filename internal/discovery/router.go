package discovery

import (
	"fmt"
	"time"
)

// Router represents a Fios gateway admin interface found on the local network
type Router struct {
	// Name is the mDNS instance or host name the gateway advertised
	// (e.g., "Fios-G3100" or "FiOS_Quantum_Gateway.local")
	Name string

	// IP is the IPv4 address when available, IPv6 otherwise
	IP string

	// Port is the advertised HTTP port (typically 80 or 443)
	Port int

	// Metadata contains additional mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the gateway was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the router
func (r *Router) String() string {
	return fmt.Sprintf("Fios gateway %s at %s:%d", r.Name, r.IP, r.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (r *Router) GetMetadata(key string) string {
	if r.Metadata == nil {
		return ""
	}
	return r.Metadata[key]
}
