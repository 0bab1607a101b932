// Package discovery locates Fios gateways on the local network via
// mDNS/DNS-SD, so callers do not have to know the router address up
// front. Gateways advertise their admin UI as an _http._tcp service;
// entries whose instance or host name looks like a Fios router are
// reported, everything else on the network is filtered out.
//
// Discovery is best-effort: a gateway with mDNS disabled will not be
// found and must be addressed by IP (typically 192.168.1.1).
package discovery
