package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/hollis/quantumgw/internal/logging"
)

const (
	g3100StatusPath = "/loginStatus.cgi"
	g3100LoginPath  = "/login.cgi"
	g3100OwlPath    = "/cgi_owl.js"
	g3100LogoutPath = "/logout.cgi"
)

// G3100 is the protocol client for the Fios Home Router (G3100)
// firmware family: status-polling login against a token/cookie session,
// device list scraped from the cgi_owl.js script output.
type G3100 struct {
	baseURL  string
	password string

	// The firmware tracks the session in cookies, so the client carries
	// a jar. Session state lives in the jar and on the router; a fresh
	// login replaces it wholesale.
	client *http.Client
}

// NewG3100 creates a client for a G3100 gateway at the given host.
func NewG3100(host, password string) *G3100 {
	return NewG3100WithURL("https://"+host, password)
}

// NewG3100WithURL creates a client with a full base URL.
func NewG3100WithURL(baseURL, password string) *G3100 {
	jar, _ := cookiejar.New(nil)
	return &G3100{
		baseURL:  baseURL,
		password: password,
		client: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: insecureTransport(),
			Jar:       jar,
		},
	}
}

// Model returns the firmware family identifier.
func (g *G3100) Model() string { return "g3100" }

// g3100Status matches the loginStatus.cgi response body.
type g3100Status struct {
	IsLogin    string `json:"islogin"`
	Token      string `json:"token"`
	LoginToken string `json:"loginToken"`
}

// loggedIn reports whether the status response describes an
// authenticated session. The firmware sometimes answers islogin=1 with
// an empty loginToken while tearing a session down, so both are checked.
func (s g3100Status) loggedIn() bool {
	return s.IsLogin == "1" && s.LoginToken != ""
}

// CheckAuth runs the status-polling login. Any failure, including
// transport errors at any stage, reports false.
func (g *G3100) CheckAuth() bool {
	if err := g.login(); err != nil {
		logging.Debug("g3100 login failed",
			zap.String("gateway", g.baseURL),
			zap.Error(err),
		)
		return false
	}
	return true
}

// login checks the session status and, when logged out, posts
// credentials and re-checks. Short-circuits when the router already
// reports an authenticated session.
func (g *G3100) login() error {
	status, err := g.loginStatus()
	if err != nil {
		return err
	}
	if status.loggedIn() {
		return nil
	}

	// Stripped-down luci firmware: the login form is posted with empty
	// username and password fields; the session rides on cookies.
	form := url.Values{
		"luci_username": {""},
		"luci_password": {""},
	}
	resp, err := g.client.PostForm(g.baseURL+g3100LoginPath, form)
	if err != nil {
		return NewNetworkError("login request failed", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return NewAuthError("gateway rejected credentials")
	}

	status, err = g.loginStatus()
	if err != nil {
		return err
	}
	if !status.loggedIn() {
		return NewAuthError("gateway still reports logged out after login")
	}
	return nil
}

// loginStatus fetches and decodes the current session status.
func (g *G3100) loginStatus() (g3100Status, error) {
	var status g3100Status

	resp, err := g.client.Get(g.baseURL + g3100StatusPath)
	if err != nil {
		return status, NewNetworkError("status request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return status, NewHTTPError(resp.StatusCode, fmt.Sprintf("status request returned status %d", resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return status, NewParseError("failed to parse login status", err)
	}
	return status, nil
}

// logout tears the session down best-effort. The router expires
// sessions on its own, so failures are logged and swallowed.
func (g *G3100) logout() {
	resp, err := g.client.Post(g.baseURL+g3100LogoutPath, "application/x-www-form-urlencoded", strings.NewReader(""))
	if err != nil {
		logging.Debug("g3100 logout failed",
			zap.String("gateway", g.baseURL),
			zap.Error(err),
		)
		return
	}
	_ = resp.Body.Close()
}

// fetchKnownDevices logs in, scrapes the owl script for the known-device
// list, and logs out again.
func (g *G3100) fetchKnownDevices() ([]knownDevice, error) {
	if err := g.login(); err != nil {
		return nil, err
	}
	defer g.logout()

	resp, err := g.client.Get(g.baseURL + g3100OwlPath)
	if err != nil {
		return nil, NewNetworkError("device list request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, NewHTTPError(resp.StatusCode, fmt.Sprintf("device list request returned status %d", resp.StatusCode))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read device list response", err)
	}
	return parseKnownDevices(string(body))
}

// ConnectedDevices returns MAC -> display name for online devices.
func (g *G3100) ConnectedDevices() (map[string]string, error) {
	devices, err := g.fetchKnownDevices()
	if err != nil {
		return nil, err
	}
	connected := make(map[string]string)
	for _, d := range devices {
		if d.Activity == 1 {
			connected[d.MAC] = displayName(d.Hostname, d.MAC)
		}
	}
	return connected, nil
}

// AllDevices returns every known device keyed by MAC. The G3100 device
// list carries no address information, so IP is always empty.
func (g *G3100) AllDevices() (map[string]DeviceInfo, error) {
	devices, err := g.fetchKnownDevices()
	if err != nil {
		return nil, err
	}
	all := make(map[string]DeviceInfo, len(devices))
	for _, d := range devices {
		all[d.MAC] = DeviceInfo{
			MAC:       d.MAC,
			Name:      displayName(d.Hostname, d.MAC),
			Connected: d.Activity == 1,
		}
	}
	return all, nil
}
