package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type to browse.
	// Fios gateways advertise their admin UI as "_http._tcp" services.
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for gateway discovery
	DefaultScanTimeout = 10 * time.Second

	// DefaultPort is the port assumed when the advertisement carries none
	DefaultPort = 80
)

// gatewayPattern matches the instance/host names Fios gateways advertise
// (e.g., "FiOS_Quantum_Gateway.local", "Fios-G3100").
var gatewayPattern = regexp.MustCompile(`(?i)fios|quantum[ _-]?gateway|\bg1100\b|\bg3100\b`)

// Scanner handles mDNS gateway discovery
type Scanner struct {
	// Timeout is the maximum time to wait for gateway discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForRouters discovers Fios gateways on the local network
func (s *Scanner) ScanForRouters() ([]*Router, error) {
	return s.ScanForRoutersWithContext(context.Background())
}

// ScanForRoutersWithContext discovers gateways with a custom context
func (s *Scanner) ScanForRoutersWithContext(ctx context.Context) ([]*Router, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	routers := make([]*Router, 0)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	// Collect matching entries until the browse channel closes.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for entry := range entries {
			router := s.parseServiceEntry(entry)
			if router != nil {
				routers = append(routers, router)
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	<-done

	return routers, nil
}

// parseServiceEntry converts a zeroconf service entry to a Router.
// Returns nil if the entry does not look like a Fios gateway.
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Router {
	name := entry.Instance
	if name == "" {
		name = entry.HostName
	}
	if name == "" {
		return nil
	}

	if !gatewayPattern.MatchString(entry.Instance) && !gatewayPattern.MatchString(entry.HostName) {
		return nil
	}

	// Prefer IPv4, fall back to IPv6.
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	// TXT records are in "key=value" format
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Router{
		Name:         name,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// ScanForRouters is a convenience function to scan with a custom timeout
func ScanForRouters(timeout time.Duration) ([]*Router, error) {
	scanner := NewScanner()
	if timeout > 0 {
		scanner.Timeout = timeout
	}
	return scanner.ScanForRouters()
}
