package gateway

import "testing"

func TestDisplayName(t *testing.T) {
	if got := displayName("laptop", "00:11:22:33:44:55"); got != "laptop" {
		t.Errorf("displayName() = %q, want hostname when present", got)
	}
	if got := displayName("", "00:11:22:33:44:55"); got != "00:11:22:33:44:55" {
		t.Errorf("displayName() = %q, want MAC fallback for empty name", got)
	}
}

func TestDeviceInfo_String(t *testing.T) {
	online := DeviceInfo{MAC: "00:11:22:33:44:55", Name: "iphone", Connected: true, IP: "192.168.1.10"}
	if got := online.String(); got != "iphone (00:11:22:33:44:55) online at 192.168.1.10" {
		t.Errorf("String() = %q", got)
	}

	offline := DeviceInfo{MAC: "aa:bb:cc:dd:ee:ff", Name: "printer", Connected: false}
	if got := offline.String(); got != "printer (aa:bb:cc:dd:ee:ff) offline" {
		t.Errorf("String() = %q", got)
	}
}

func TestDeviceInfo_MACCasePreserved(t *testing.T) {
	// Casing is intentionally not normalized; callers case-fold when
	// they need canonical comparison.
	d := g1100Device{MAC: "AA:bb:CC:dd:EE:ff", Status: true}.toDeviceInfo()
	if d.MAC != "AA:bb:CC:dd:EE:ff" {
		t.Errorf("MAC = %q, want casing preserved", d.MAC)
	}
	if d.Name != "AA:bb:CC:dd:EE:ff" {
		t.Errorf("Name = %q, want MAC fallback", d.Name)
	}
}
