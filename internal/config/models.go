package config

import "time"

// Registry represents the entire user configuration file.
// This stores known gateways and application preferences.
type Registry struct {
	Version     int                 `yaml:"version"`
	Gateways    map[string]*Gateway `yaml:"gateways,omitempty"` // Keyed by gateway host
	Preferences *Preferences        `yaml:"preferences,omitempty"`
}

// Gateway represents user-defined metadata for a single known gateway.
// This is keyed by the gateway's host in the Registry.
type Gateway struct {
	Nickname string    `yaml:"nickname,omitempty"`  // User-friendly name
	UseHTTPS *bool     `yaml:"use_https,omitempty"` // Admin UI scheme; nil means default (HTTPS)
	Model    string    `yaml:"model,omitempty"`     // Last detected firmware family ("g1100", "g3100")
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last successful scan time
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultGateway string `yaml:"default_gateway,omitempty"` // Host used when --host is omitted
	PollInterval   int    `yaml:"poll_interval"`             // Watch-mode poll interval in seconds
	ScanTimeout    int    `yaml:"scan_timeout"`              // mDNS discovery timeout in seconds
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:  1,
		Gateways: make(map[string]*Gateway),
		Preferences: &Preferences{
			PollInterval: 30,
			ScanTimeout:  10,
		},
	}
}

// GetGateway retrieves gateway metadata by host.
// Returns nil if the gateway doesn't exist in the registry.
func (r *Registry) GetGateway(host string) *Gateway {
	return r.Gateways[host]
}

// EnsureGateway ensures a gateway entry exists in the registry.
// If the gateway doesn't exist, creates a new entry with default values.
// Returns the entry (existing or newly created).
func (r *Registry) EnsureGateway(host string) *Gateway {
	if r.Gateways == nil {
		r.Gateways = make(map[string]*Gateway)
	}
	if gw, ok := r.Gateways[host]; ok {
		return gw
	}
	gw := &Gateway{}
	r.Gateways[host] = gw
	return gw
}

// WantsHTTPS reports whether the G1100 client for this gateway should
// use HTTPS. Unset means yes; only firmware builds that never got a
// certificate are marked false.
func (g *Gateway) WantsHTTPS() bool {
	return g.UseHTTPS == nil || *g.UseHTTPS
}
