// Package gateway implements protocol clients for the web-admin interface
// of Verizon Fios home routers, used for presence detection.
//
// Two firmware families are supported, each with its own undocumented
// login flow and device-list format:
//
//   - G1100 (Fios Quantum Gateway): salt-challenge login against a JSON
//     API. The router hands out a per-session password salt, the client
//     posts hex(SHA-512(password+salt)) and receives an XSRF-TOKEN
//     session cookie that must accompany every request as both a cookie
//     and an X-XSRF-TOKEN header.
//
//   - G3100 (Fios Home Router): status-polling login against a token
//     session. The device list is not JSON at all but a JavaScript
//     fragment served from cgi_owl.js; see rod.go for the extractor.
//
// The Scanner probes the router once at construction to decide which
// family applies and then exposes a uniform scan surface:
//
//	scanner := gateway.NewScanner("192.168.1.1", "admin-password", true)
//	if !scanner.SuccessInit {
//	    log.Fatal("could not authenticate against gateway")
//	}
//
//	macs, err := scanner.ScanDevices()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, mac := range macs {
//	    fmt.Println(mac, scanner.DeviceName(mac))
//	}
//
// # Error Handling
//
// Authentication failures are never surfaced as errors: CheckAuth (and
// the SuccessInit flag) report a plain boolean, with transport failures
// treated the same as rejected credentials. Device-fetch operations
// return typed *GatewayError values that callers can classify with the
// Is* predicates in errors.go.
//
// # Thread Safety
//
// Gateway and Scanner instances hold mutable session state and are
// single-owner by contract: they must not be used from multiple
// goroutines concurrently. Run one instance per caller instead.
package gateway
