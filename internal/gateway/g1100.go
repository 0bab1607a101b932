package gateway

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/hollis/quantumgw/internal/logging"
)

const (
	g1100LoginPath   = "/api/login"
	g1100DevicesPath = "/api/devices"

	// The G1100 uses the double-submit pattern: the session token must
	// arrive as both a cookie and a matching request header.
	xsrfCookieName = "XSRF-TOKEN"
	xsrfHeaderName = "X-XSRF-TOKEN"
)

// G1100 is the protocol client for the Fios Quantum Gateway (G1100)
// firmware family: salt-challenge login against a JSON device-list API.
type G1100 struct {
	baseURL  string
	password string
	client   *http.Client

	// token is the XSRF session cookie value, empty when logged out.
	// Replaced wholesale on every successful login.
	token string
}

// NewG1100 creates a client for a G1100 gateway at the given host.
// The admin UI normally requires HTTPS (with a self-signed certificate);
// useHTTPS exists for firmware builds that only serve plain HTTP.
func NewG1100(host, password string, useHTTPS bool) *G1100 {
	scheme := "http"
	if useHTTPS {
		scheme = "https"
	}
	return NewG1100WithURL(scheme+"://"+host, password)
}

// NewG1100WithURL creates a client with a full base URL
// (e.g. "https://192.168.1.1").
func NewG1100WithURL(baseURL, password string) *G1100 {
	return &G1100{
		baseURL:  baseURL,
		password: password,
		client:   newHTTPClient(),
	}
}

// Model returns the firmware family identifier.
func (g *G1100) Model() string { return "g1100" }

// CheckAuth performs the salt-challenge login. Any failure, including
// transport errors, reports false and clears the session token.
func (g *G1100) CheckAuth() bool {
	token, err := g.login()
	if err != nil {
		logging.Debug("g1100 login failed",
			zap.String("gateway", g.baseURL),
			zap.Error(err),
		)
		g.token = ""
		return false
	}
	g.token = token
	return true
}

// login runs the three-step handshake: fetch the per-session salt, hash
// the password with it, post the digest. Returns the session token from
// the XSRF-TOKEN cookie on success.
func (g *G1100) login() (string, error) {
	resp, err := g.client.Get(g.baseURL + g1100LoginPath)
	if err != nil {
		return "", NewNetworkError("salt request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", NewHTTPError(resp.StatusCode, fmt.Sprintf("salt request returned status %d", resp.StatusCode))
	}

	var saltResp struct {
		PasswordSalt string `json:"passwordSalt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&saltResp); err != nil {
		return "", NewParseError("failed to parse salt response", err)
	}

	body, err := json.Marshal(map[string]string{
		"password": hashPassword(g.password, saltResp.PasswordSalt),
	})
	if err != nil {
		return "", NewParseError("failed to encode login request", err)
	}

	loginResp, err := g.client.Post(g.baseURL+g1100LoginPath, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", NewNetworkError("login request failed", err)
	}
	defer func() { _ = loginResp.Body.Close() }()

	if loginResp.StatusCode == http.StatusUnauthorized || loginResp.StatusCode == http.StatusForbidden {
		return "", NewAuthError("gateway rejected password")
	}
	if loginResp.StatusCode < 200 || loginResp.StatusCode > 299 {
		return "", NewHTTPError(loginResp.StatusCode, fmt.Sprintf("login returned status %d", loginResp.StatusCode))
	}

	for _, c := range loginResp.Cookies() {
		if c.Name == xsrfCookieName {
			return c.Value, nil
		}
	}
	return "", NewParseError("login response did not set "+xsrfCookieName+" cookie", nil)
}

// hashPassword computes the G1100 login credential:
// hex(SHA-512(password + salt)) over the ASCII concatenation.
func hashPassword(password, salt string) string {
	digest := sha512.Sum512([]byte(password + salt))
	return hex.EncodeToString(digest[:])
}

// g1100Device matches one entry of the /api/devices JSON array.
// Either address field may be missing or empty.
type g1100Device struct {
	MAC         string `json:"mac"`
	Name        string `json:"name"`
	Status      bool   `json:"status"`
	IPAddress   string `json:"ipAddress"`
	IPv6Address string `json:"ipv6Address"`
}

func (d g1100Device) toDeviceInfo() DeviceInfo {
	// IPv4 wins when both are reported.
	ip := d.IPAddress
	if ip == "" {
		ip = d.IPv6Address
	}
	return DeviceInfo{
		MAC:       d.MAC,
		Name:      displayName(d.Name, d.MAC),
		Connected: d.Status,
		IP:        ip,
	}
}

// fetchDevices retrieves the raw device list. The session token rides
// along as both cookie and header; a 401 means the session expired and
// the caller must CheckAuth again.
func (g *G1100) fetchDevices() ([]g1100Device, error) {
	req, err := http.NewRequest(http.MethodGet, g.baseURL+g1100DevicesPath, nil)
	if err != nil {
		return nil, NewNetworkError("failed to create devices request", err)
	}
	req.AddCookie(&http.Cookie{Name: xsrfCookieName, Value: g.token})
	req.Header.Set(xsrfHeaderName, g.token)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, NewNetworkError("devices request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		g.token = ""
		return nil, NewAuthError("gateway session expired or not authenticated")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewHTTPError(resp.StatusCode, fmt.Sprintf("devices request returned status %d", resp.StatusCode))
	}

	var devices []g1100Device
	if err := json.NewDecoder(resp.Body).Decode(&devices); err != nil {
		return nil, NewParseError("failed to parse device list", err)
	}
	return devices, nil
}

// ConnectedDevices returns MAC -> display name for online devices.
func (g *G1100) ConnectedDevices() (map[string]string, error) {
	devices, err := g.fetchDevices()
	if err != nil {
		return nil, err
	}
	connected := make(map[string]string)
	for _, d := range devices {
		if d.Status {
			connected[d.MAC] = displayName(d.Name, d.MAC)
		}
	}
	return connected, nil
}

// AllDevices returns every known device keyed by MAC, online or not.
func (g *G1100) AllDevices() (map[string]DeviceInfo, error) {
	devices, err := g.fetchDevices()
	if err != nil {
		return nil, err
	}
	all := make(map[string]DeviceInfo, len(devices))
	for _, d := range devices {
		all[d.MAC] = d.toDeviceInfo()
	}
	return all, nil
}
