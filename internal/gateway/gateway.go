package gateway

import (
	"crypto/tls"
	"net/http"
	"time"
)

// DefaultTimeout is the default HTTP request timeout for gateway calls
const DefaultTimeout = 10 * time.Second

// Gateway abstracts the per-firmware-family operations of a Fios router's
// web-admin interface. Implementations hold mutable session state and are
// single-owner: callers must not share an instance across goroutines.
type Gateway interface {
	// Model returns the firmware family identifier ("g1100" or "g3100").
	Model() string

	// CheckAuth establishes or refreshes the authenticated session.
	// It never returns an error: rejected credentials and transport
	// failures alike report false.
	CheckAuth() bool

	// ConnectedDevices returns MAC -> display name for every device the
	// gateway currently reports as online.
	ConnectedDevices() (map[string]string, error)

	// AllDevices returns every device the gateway knows about, online or
	// not, keyed by MAC.
	AllDevices() (map[string]DeviceInfo, error)
}

// insecureTransport returns an HTTP transport that accepts the
// self-signed certificate Fios gateways serve their admin UI with.
func insecureTransport() *http.Transport {
	return &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
}

// newHTTPClient builds the client used for gateway requests.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: insecureTransport(),
	}
}
