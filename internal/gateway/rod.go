package gateway

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The G3100 device list is not served as JSON. cgi_owl.js is a
// JavaScript fragment of addROD("<key>", {...}); calls that the admin
// UI evaluates in the browser. This file implements the one grammar we
// need: locate the call for a given key and extract its balanced-brace
// object argument, which is then decodable as plain JSON. It is a
// deliberate non-goal to evaluate anything else in the script.

// knownDevice matches one entry of the known_devices array inside the
// known_device_list object. activity is 1 for online, 0 for offline.
type knownDevice struct {
	MAC      string `json:"mac"`
	Hostname string `json:"hostname"`
	Activity int    `json:"activity"`
}

// parseKnownDevices extracts the known-device list from a cgi_owl.js body.
func parseKnownDevices(body string) ([]knownDevice, error) {
	obj, err := extractRODObject(body, "known_device_list")
	if err != nil {
		return nil, err
	}

	var payload struct {
		KnownDevices []knownDevice `json:"known_devices"`
	}
	if err := json.Unmarshal([]byte(obj), &payload); err != nil {
		return nil, NewParseError("failed to decode known_device_list object", err)
	}
	if payload.KnownDevices == nil {
		return nil, NewParseError("known_device_list object has no known_devices array", nil)
	}
	return payload.KnownDevices, nil
}

// extractRODObject locates the addROD call for key and returns its
// object argument, braces included.
func extractRODObject(body, key string) (string, error) {
	marker := fmt.Sprintf("addROD(%q", key)
	idx := strings.Index(body, marker)
	if idx < 0 {
		return "", NewParseError(fmt.Sprintf("script body contains no addROD call for %q", key), nil)
	}

	rest := body[idx+len(marker):]
	start := strings.IndexByte(rest, '{')
	if start < 0 {
		return "", NewParseError(fmt.Sprintf("addROD call for %q has no object argument", key), nil)
	}

	end, err := matchBrace(rest, start)
	if err != nil {
		return "", err
	}
	return rest[start : end+1], nil
}

// matchBrace returns the index of the brace closing the one at open.
// String literals are skipped so braces inside hostnames do not
// unbalance the scan.
func matchBrace(s string, open int) (int, error) {
	depth := 0
	inString := false
	escaped := false

	for i := open; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, NewParseError("script body ends inside an unterminated object", nil)
}
