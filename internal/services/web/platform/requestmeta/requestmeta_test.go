package requestmeta

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSchemeHonorsForwardedProtoOnlyWhenTrusted(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://example.com/login", nil)
	req.Header.Set("X-Forwarded-Proto", "https")

	if IsHTTPS(req) {
		t.Fatal("untrusted forwarded proto should be ignored")
	}
	if !IsHTTPSWithPolicy(req, SchemePolicy{TrustForwardedProto: true}) {
		t.Fatal("trusted forwarded proto should be honored")
	}

	tlsReq := httptest.NewRequest(http.MethodGet, "https://example.com/login", nil)
	tlsReq.TLS = &tls.ConnectionState{}
	if !IsHTTPS(tlsReq) {
		t.Fatal("TLS request should be https")
	}
}

func TestHasSameOriginProof(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		host    string
		origin  string
		referer string
		want    bool
	}{
		{name: "matching origin", host: "example.com", origin: "http://example.com", want: true},
		{name: "matching origin default port", host: "example.com:80", origin: "http://example.com", want: true},
		{name: "matching referer", host: "localhost:8080", referer: "http://localhost:8080/signup", want: true},
		{name: "other host", host: "example.com", origin: "http://evil.test", want: false},
		{name: "other port", host: "localhost:8080", origin: "http://localhost:9090", want: false},
		{name: "scheme mismatch", host: "example.com", origin: "https://example.com", want: false},
		{name: "no proof", host: "example.com", want: false},
		{name: "garbage", host: "example.com", origin: "::", want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/login", nil)
			req.Host = tc.host
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			if got := HasSameOriginProof(req, SchemePolicy{}); got != tc.want {
				t.Fatalf("HasSameOriginProof() = %v, want %v", got, tc.want)
			}
		})
	}
}
