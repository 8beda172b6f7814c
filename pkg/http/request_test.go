package http

import (
	"net/http/httptest"
	"testing"
)

func TestExtractOrigin_RemoteAddrOnly(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/admin/login", nil)
	req.RemoteAddr = "203.0.113.7:51234"

	if got := ExtractOrigin(req, nil); got != "203.0.113.7" {
		t.Errorf("expected 203.0.113.7, got %q", got)
	}
}

func TestExtractOrigin_UntrustedPeerIgnoresHeaders(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/admin/login", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	req.Header.Set("X-Forwarded-For", "198.51.100.1")
	req.Header.Set("X-Real-IP", "198.51.100.2")

	config := &OriginConfig{TrustedProxies: []string{"10.0.0.0/8"}}
	if got := ExtractOrigin(req, config); got != "203.0.113.7" {
		t.Errorf("spoofable header honored from untrusted peer: got %q", got)
	}
}

func TestExtractOrigin_TrustedProxyForwardedFor(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/admin/login", nil)
	req.RemoteAddr = "10.1.2.3:443"
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.1.2.3")

	config := &OriginConfig{TrustedProxies: []string{"10.0.0.0/8"}}
	if got := ExtractOrigin(req, config); got != "198.51.100.1" {
		t.Errorf("expected first forwarded hop, got %q", got)
	}
}

func TestExtractOrigin_TrustedProxyRealIPFallback(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/admin/login", nil)
	req.RemoteAddr = "10.1.2.3:443"
	req.Header.Set("X-Forwarded-For", "not-an-ip")
	req.Header.Set("X-Real-IP", "198.51.100.2")

	config := &OriginConfig{TrustedProxies: []string{"10.0.0.0/8"}}
	if got := ExtractOrigin(req, config); got != "198.51.100.2" {
		t.Errorf("expected X-Real-IP value, got %q", got)
	}
}

func TestExtractOrigin_LoopbackPlaceholder(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/admin/login", nil)
	req.RemoteAddr = ""

	if got := ExtractOrigin(req, nil); got != FallbackOrigin {
		t.Errorf("expected fallback origin, got %q", got)
	}
}
