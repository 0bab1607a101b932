package gateway

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
)

func TestScanner_DetectsG3100(t *testing.T) {
	// Any non-404 answer on the status endpoint selects the G3100.
	state, server := newG3100TestServer(t)
	state.loggedIn = true

	s := NewScannerWithURL(server.URL, "password")
	if s.Model() != "g3100" {
		t.Errorf("Model() = %q, want g3100", s.Model())
	}
	if !s.SuccessInit {
		t.Error("SuccessInit = false, want true")
	}
}

func TestScanner_DefaultsToG1100(t *testing.T) {
	// The G1100 mux answers 404 on /loginStatus.cgi.
	_, server := newG1100TestServer(t)

	s := NewScannerWithURL(server.URL, testPassword)
	if s.Model() != "g1100" {
		t.Errorf("Model() = %q, want g1100", s.Model())
	}
	if !s.SuccessInit {
		t.Error("SuccessInit = false, want true")
	}
}

func TestScanner_ProbeNetworkErrorSelectsG1100(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	s := NewScannerWithURL(url, "password")
	if s.Model() != "g1100" {
		t.Errorf("Model() = %q, want g1100 when probe cannot connect", s.Model())
	}
	if s.SuccessInit {
		t.Error("SuccessInit = true, want false for unreachable gateway")
	}
}

func TestScanner_FailedInit(t *testing.T) {
	_, server := newG1100TestServer(t)

	s := NewScannerWithURL(server.URL, "wrong")
	if s.SuccessInit {
		t.Error("SuccessInit = true, want false with wrong password")
	}
	// Auth can be retried explicitly and still fails boolean-silently.
	if s.CheckAuth() {
		t.Error("CheckAuth() = true, want false with wrong password")
	}
}

func TestScanner_ScanDevices(t *testing.T) {
	_, server := newG1100TestServer(t)

	s := NewScannerWithURL(server.URL, testPassword)
	if !s.SuccessInit {
		t.Fatal("SuccessInit = false")
	}

	macs, err := s.ScanDevices()
	if err != nil {
		t.Fatalf("ScanDevices() error = %v", err)
	}

	sort.Strings(macs)
	want := []string{"00:00:00:00:00:00", "00:11:22:33:44:55"}
	if len(macs) != len(want) {
		t.Fatalf("ScanDevices() = %v, want %v", macs, want)
	}
	for i := range want {
		if macs[i] != want[i] {
			t.Errorf("ScanDevices()[%d] = %q, want %q", i, macs[i], want[i])
		}
	}
}

func TestScanner_DeviceName(t *testing.T) {
	_, server := newG1100TestServer(t)

	s := NewScannerWithURL(server.URL, testPassword)

	// No scan yet: cache is empty.
	if name := s.DeviceName("00:11:22:33:44:55"); name != "" {
		t.Errorf("DeviceName() before scan = %q, want empty", name)
	}

	if _, err := s.ScanDevices(); err != nil {
		t.Fatalf("ScanDevices() error = %v", err)
	}

	if name := s.DeviceName("00:11:22:33:44:55"); name != "iphone" {
		t.Errorf(`DeviceName("00:11:22:33:44:55") = %q, want "iphone"`, name)
	}
	if name := s.DeviceName("ff:ff:ff:ff:ff:ff"); name != "" {
		t.Errorf("DeviceName() for unknown MAC = %q, want empty", name)
	}
	// Disconnected devices are not part of the scan cache.
	if name := s.DeviceName("11:11:11:11:11:11"); name != "" {
		t.Errorf("DeviceName() for offline MAC = %q, want empty", name)
	}
}

func TestScanner_AllDevices(t *testing.T) {
	_, server := newG1100TestServer(t)

	s := NewScannerWithURL(server.URL, testPassword)
	all, err := s.AllDevices()
	if err != nil {
		t.Fatalf("AllDevices() error = %v", err)
	}
	if len(all) != 5 {
		t.Errorf("AllDevices() returned %d devices, want 5 (connected and disconnected)", len(all))
	}
}

func TestScanner_ScanDevices_FetchErrorPropagates(t *testing.T) {
	_, server := newG1100TestServer(t)

	s := NewScannerWithURL(server.URL, "wrong")
	if _, err := s.ScanDevices(); err == nil {
		t.Fatal("ScanDevices() should surface fetch errors to the caller")
	}
}
