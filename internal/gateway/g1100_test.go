package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

const (
	testSalt     = "TEST_SALT"
	testToken    = "TEST_TOKEN"
	testPassword = "correct"
)

// Device list body as served by a real G1100, covering IPv4 precedence,
// IPv6 fallback, empty address fields, and missing address keys.
const g1100DevicesBody = `[
	{"mac": "00:11:22:33:44:55", "name": "iphone", "status": true, "ipAddress": "192.168.1.1", "ipv6Address": ""},
	{"mac": "00:00:00:00:00:00", "name": "computer", "status": true, "ipAddress": "192.168.1.2", "ipv6Address": "fdde:6cb2:070a:219a:a092:5969:be0d:19ee"},
	{"mac": "11:11:11:11:11:11", "name": "disconnected", "status": false, "ipAddress": "", "ipv6Address": "fdde:6cb2:070a:219a:a092:5969:be0d:19ef"},
	{"mac": "11:11:11:22:22:22", "name": "disconnected-empty-ips", "status": false, "ipAddress": "", "ipv6Address": ""},
	{"mac": "33:33:33:22:22:22", "name": "disconnected-missing-ips", "status": false}
]`

// g1100Server simulates the G1100 admin API: salt handout, credential
// check against the expected digest, and an XSRF-protected device list.
type g1100Server struct {
	loggedIn bool
}

func (s *g1100Server) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"passwordSalt": "` + testSalt + `"}`))
			return
		}

		var body struct {
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		// The real firmware sets the cookie on failure too.
		http.SetCookie(w, &http.Cookie{Name: xsrfCookieName, Value: testToken})
		if body.Password != hashPassword(testPassword, testSalt) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		s.loggedIn = true
	})

	mux.HandleFunc("/api/devices", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(xsrfCookieName)
		if !s.loggedIn || err != nil || cookie.Value != testToken ||
			r.Header.Get(xsrfHeaderName) != testToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(g1100DevicesBody))
	})

	return mux
}

func newG1100TestServer(t *testing.T) (*g1100Server, *httptest.Server) {
	t.Helper()
	state := &g1100Server{}
	server := httptest.NewServer(state.handler())
	t.Cleanup(server.Close)
	return state, server
}

func TestG1100_CheckAuth_Success(t *testing.T) {
	_, server := newG1100TestServer(t)

	g := NewG1100WithURL(server.URL, testPassword)
	if !g.CheckAuth() {
		t.Error("CheckAuth() = false, want true with correct password")
	}
	if g.token != testToken {
		t.Errorf("token = %q, want %q", g.token, testToken)
	}
}

func TestG1100_CheckAuth_WrongPassword(t *testing.T) {
	_, server := newG1100TestServer(t)

	g := NewG1100WithURL(server.URL, "wrong")
	if g.CheckAuth() {
		t.Error("CheckAuth() = true, want false with wrong password")
	}
	if g.token != "" {
		t.Errorf("token = %q, want empty after failed login", g.token)
	}
}

func TestG1100_CheckAuth_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	g := NewG1100WithURL(url, testPassword)
	if g.CheckAuth() {
		t.Error("CheckAuth() = true, want false when gateway is unreachable")
	}
}

func TestG1100_PostedCredential(t *testing.T) {
	// Concrete handshake check: for salt TEST_SALT and password
	// "correct", the posted digest must be sha512("correct"+"TEST_SALT").
	got := hashPassword("correct", "TEST_SALT")
	want := "2737d6a24d9cbc5c88080c6aa63fbae5a923884707cea5d4ae949b019987f22f" +
		"119a3db20df27952d92c5bd25432ad8db658a5003fa1bf01c34ca9493e47e897"
	if got != want {
		t.Errorf("hashPassword() = %s, want %s", got, want)
	}
}

func TestG1100_ConnectedDevices(t *testing.T) {
	_, server := newG1100TestServer(t)

	g := NewG1100WithURL(server.URL, testPassword)
	if !g.CheckAuth() {
		t.Fatal("CheckAuth() failed")
	}

	devices, err := g.ConnectedDevices()
	if err != nil {
		t.Fatalf("ConnectedDevices() error = %v", err)
	}

	want := map[string]string{
		"00:11:22:33:44:55": "iphone",
		"00:00:00:00:00:00": "computer",
	}
	if len(devices) != len(want) {
		t.Fatalf("ConnectedDevices() returned %d devices, want %d", len(devices), len(want))
	}
	for mac, name := range want {
		if devices[mac] != name {
			t.Errorf("devices[%q] = %q, want %q", mac, devices[mac], name)
		}
	}
}

func TestG1100_ConnectedDevices_Unauthenticated(t *testing.T) {
	_, server := newG1100TestServer(t)

	g := NewG1100WithURL(server.URL, testPassword)

	_, err := g.ConnectedDevices()
	if err == nil {
		t.Fatal("ConnectedDevices() should fail without authentication")
	}
	if !IsAuthError(err) {
		t.Errorf("ConnectedDevices() error = %v, want auth error", err)
	}
}

func TestG1100_AllDevices(t *testing.T) {
	_, server := newG1100TestServer(t)

	g := NewG1100WithURL(server.URL, testPassword)
	if !g.CheckAuth() {
		t.Fatal("CheckAuth() failed")
	}

	all, err := g.AllDevices()
	if err != nil {
		t.Fatalf("AllDevices() error = %v", err)
	}

	want := map[string]DeviceInfo{
		"00:11:22:33:44:55": {MAC: "00:11:22:33:44:55", Name: "iphone", Connected: true, IP: "192.168.1.1"},
		"00:00:00:00:00:00": {MAC: "00:00:00:00:00:00", Name: "computer", Connected: true, IP: "192.168.1.2"},
		"11:11:11:11:11:11": {MAC: "11:11:11:11:11:11", Name: "disconnected", Connected: false, IP: "fdde:6cb2:070a:219a:a092:5969:be0d:19ef"},
		"11:11:11:22:22:22": {MAC: "11:11:11:22:22:22", Name: "disconnected-empty-ips", Connected: false},
		"33:33:33:22:22:22": {MAC: "33:33:33:22:22:22", Name: "disconnected-missing-ips", Connected: false},
	}
	if len(all) != len(want) {
		t.Fatalf("AllDevices() returned %d devices, want %d", len(all), len(want))
	}
	for mac, device := range want {
		if all[mac] != device {
			t.Errorf("all[%q] = %+v, want %+v", mac, all[mac], device)
		}
	}
}

func TestG1100_AllDevices_Idempotent(t *testing.T) {
	_, server := newG1100TestServer(t)

	g := NewG1100WithURL(server.URL, testPassword)
	if !g.CheckAuth() {
		t.Fatal("CheckAuth() failed")
	}

	first, err := g.AllDevices()
	if err != nil {
		t.Fatalf("first AllDevices() error = %v", err)
	}
	second, err := g.AllDevices()
	if err != nil {
		t.Fatalf("second AllDevices() error = %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("device counts differ between calls: %d vs %d", len(first), len(second))
	}
	for mac, device := range first {
		if second[mac] != device {
			t.Errorf("device %q differs between calls: %+v vs %+v", mac, device, second[mac])
		}
	}
}

func TestG1100_AllDevices_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	g := NewG1100WithURL(server.URL, testPassword)
	_, err := g.AllDevices()
	if err == nil {
		t.Fatal("AllDevices() should fail on malformed body")
	}
	if !IsParseError(err) {
		t.Errorf("AllDevices() error = %v, want parse error", err)
	}
}
