package gateway

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hollis/quantumgw/internal/logging"
)

// Scanner owns a detected gateway session and exposes a uniform scan
// surface regardless of firmware family. Construction performs exactly
// one detection probe plus one authentication attempt; neither failure
// is an error, both are surfaced through SuccessInit.
type Scanner struct {
	// Host is the gateway address the Scanner was built for.
	Host string

	// SuccessInit reports whether the initial authentication attempt at
	// construction time succeeded.
	SuccessInit bool

	gateway Gateway

	// names is the MAC -> display name mapping cached by the most
	// recent successful ScanDevices call.
	names map[string]string
}

// NewScanner probes the router at host to decide which firmware family
// applies, binds the matching protocol client, and attempts an initial
// login. useHTTPS selects the scheme for G1100 gateways; the G3100
// admin UI is HTTPS-only.
func NewScanner(host, password string, useHTTPS bool) *Scanner {
	g1100URL := "http://" + host
	if useHTTPS {
		g1100URL = "https://" + host
	}
	s := newScanner("https://"+host, g1100URL, password)
	s.Host = host
	return s
}

// NewScannerWithURL is like NewScanner but takes a full base URL used
// for both the detection probe and the bound client.
func NewScannerWithURL(baseURL, password string) *Scanner {
	s := newScanner(baseURL, baseURL, password)
	s.Host = baseURL
	return s
}

func newScanner(probeURL, g1100URL, password string) *Scanner {
	var gw Gateway
	if probeG3100(probeURL) {
		gw = NewG3100WithURL(probeURL, password)
	} else {
		gw = NewG1100WithURL(g1100URL, password)
	}

	s := &Scanner{
		gateway: gw,
		names:   make(map[string]string),
	}
	s.SuccessInit = s.CheckAuth()
	return s
}

// probeG3100 performs the single detection probe: a GET to the G3100
// status endpoint. Any response other than 404 selects the G3100;
// a 404 or a transport failure selects the G1100.
//
// Known limitation: this is a heuristic, not a verified identification.
// A captive portal answering 200 on every path, or a host that is not a
// gateway at all, will be classified as a G3100 and fail at login.
func probeG3100(baseURL string) bool {
	client := newHTTPClient()
	resp, err := client.Get(baseURL + g3100StatusPath)
	if err != nil {
		logging.Debug("detection probe failed, assuming g1100",
			zap.String("gateway", baseURL),
			zap.Error(err),
		)
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode != http.StatusNotFound
}

// Model returns the firmware family the Scanner bound to.
func (s *Scanner) Model() string {
	return s.gateway.Model()
}

// CheckAuth establishes or refreshes the session on the bound gateway.
// Returns false on any failure, network errors included.
func (s *Scanner) CheckAuth() bool {
	return s.gateway.CheckAuth()
}

// ScanDevices fetches the connected-device list, refreshes the name
// cache, and returns the MACs currently online. Fetch failures
// propagate and leave the previous cache in place.
func (s *Scanner) ScanDevices() ([]string, error) {
	devices, err := s.gateway.ConnectedDevices()
	if err != nil {
		return nil, err
	}
	s.names = devices

	macs := make([]string, 0, len(devices))
	for mac := range devices {
		macs = append(macs, mac)
	}
	return macs, nil
}

// DeviceName returns the cached display name for a MAC from the most
// recent ScanDevices call, or "" when unknown.
func (s *Scanner) DeviceName(mac string) string {
	return s.names[mac]
}

// AllDevices returns every device the gateway knows about, connected
// and disconnected, keyed by MAC.
func (s *Scanner) AllDevices() (map[string]DeviceInfo, error) {
	return s.gateway.AllDevices()
}
