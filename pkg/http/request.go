package http

import (
	"net"
	"net/http"
	"strings"
)

// FallbackOrigin is attributed to requests whose network identity cannot
// be determined (direct local calls, tests without a RemoteAddr).
const FallbackOrigin = "127.0.0.1"

// OriginConfig controls how the client origin is derived. Forwarded
// headers are only honored when the immediate peer is a listed proxy;
// without a trusted reverse proxy in front, the headers are
// client-controlled and must be ignored.
type OriginConfig struct {
	TrustedProxies []string // CIDR ranges
}

// ExtractOrigin derives the rate-limit origin identity for a request.
//
// From a trusted proxy, X-Forwarded-For (first valid hop) wins, then
// X-Real-IP. Otherwise the peer address itself is the origin, with a
// loopback placeholder when even that is missing.
func ExtractOrigin(r *http.Request, config *OriginConfig) string {
	peer := peerAddr(r)

	if config != nil && isTrustedProxy(peer, config.TrustedProxies) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			for _, hop := range strings.Split(xff, ",") {
				hop = strings.TrimSpace(hop)
				if net.ParseIP(hop) != nil {
					return hop
				}
			}
		}

		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			if net.ParseIP(xri) != nil {
				return xri
			}
		}
	}

	return peer
}

// peerAddr extracts the IP from RemoteAddr, dropping the port.
func peerAddr(r *http.Request) string {
	if r.RemoteAddr == "" {
		return FallbackOrigin
	}
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}

func isTrustedProxy(ip string, trustedProxies []string) bool {
	if len(trustedProxies) == 0 {
		return false
	}

	peer := net.ParseIP(ip)
	if peer == nil {
		return false
	}

	for _, cidr := range trustedProxies {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			continue // skip invalid ranges
		}
		if ipNet.Contains(peer) {
			return true
		}
	}

	return false
}
