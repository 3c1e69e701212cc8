package requestmeta

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsHTTPS(t *testing.T) {
	plain := httptest.NewRequest(http.MethodGet, "/", nil)
	if IsHTTPS(plain, SchemePolicy{}) {
		t.Fatal("plain request should not be https")
	}

	tlsReq := httptest.NewRequest(http.MethodGet, "/", nil)
	tlsReq.TLS = &tls.ConnectionState{}
	if !IsHTTPS(tlsReq, SchemePolicy{}) {
		t.Fatal("tls request should be https")
	}

	forwarded := httptest.NewRequest(http.MethodGet, "/", nil)
	forwarded.Header.Set("X-Forwarded-Proto", "https")
	if IsHTTPS(forwarded, SchemePolicy{}) {
		t.Fatal("forwarded proto must be ignored without trust")
	}
	if !IsHTTPS(forwarded, SchemePolicy{TrustForwardedProto: true}) {
		t.Fatal("forwarded proto should be honored when trusted")
	}
	if IsHTTPS(nil, SchemePolicy{}) {
		t.Fatal("nil request should not be https")
	}
}

func TestIsCrossOrigin(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		referer string
		want    bool
	}{
		{name: "no headers"},
		{name: "same origin", origin: "http://example.com"},
		{name: "same referer", referer: "http://example.com/downloads"},
		{name: "other origin", origin: "https://evil.test", want: true},
		{name: "other referer", referer: "https://evil.test/page", want: true},
		{name: "garbage origin", origin: "null", want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/login", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			if got := IsCrossOrigin(req); got != tc.want {
				t.Fatalf("IsCrossOrigin() = %v, want %v", got, tc.want)
			}
		})
	}
}
