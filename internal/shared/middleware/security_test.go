package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"plain host", "example.com", "example.com"},
		{"host with port", "example.com:8080", "example.com"},
		{"uppercase", "EXAMPLE.COM", "example.com"},
		{"surrounding whitespace", "  example.com  ", "example.com"},
		{"ipv4 with port", "192.168.1.1:443", "192.168.1.1"},
		{"bracketed ipv6", "[::1]", "::1"},
		{"bracketed ipv6 with port", "[::1]:8080", "::1"},
		{"bare ipv6", "::1", "::1"},
		{"bracketed full ipv6 with port", "[2001:db8::1]:443", "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeHost(tt.host); got != tt.want {
				t.Errorf("normalizeHost(%q) = %q, want %q", tt.host, got, tt.want)
			}
		})
	}
}

func TestIsHostAllowed(t *testing.T) {
	tests := []struct {
		name         string
		host         string
		allowedHosts []string
		want         bool
	}{
		{"empty list allows everything", "evil.com", nil, true},
		{"exact match", "bolso.example.com", []string{"bolso.example.com"}, true},
		{"match ignores request port", "bolso.example.com:8443", []string{"bolso.example.com"}, true},
		{"match ignores case", "Bolso.Example.Com", []string{"bolso.example.com"}, true},
		{"not in list", "evil.com", []string{"bolso.example.com"}, false},
		{"subdomain is not a match", "api.bolso.example.com", []string{"bolso.example.com"}, false},
		{"second entry matches", "localhost", []string{"bolso.example.com", "localhost"}, true},
		{"ipv6 loopback with port", "[::1]:8080", []string{"::1"}, true},
		{"bracketed allowed entry", "::1", []string{"[::1]"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHostAllowed(tt.host, tt.allowedHosts); got != tt.want {
				t.Errorf("IsHostAllowed(%q, %v) = %v, want %v", tt.host, tt.allowedHosts, got, tt.want)
			}
		})
	}
}

func TestHSTS(t *testing.T) {
	handler := HSTS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/overview", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	got := rec.Header().Get("Strict-Transport-Security")
	want := "max-age=31536000; includeSubDomains"
	if got != want {
		t.Errorf("Strict-Transport-Security = %q, want %q", got, want)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireHTTPS(t *testing.T) {
	handler := RequireHTTPS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("plain http is redirected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://bolso.example.com/api/cards/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusMovedPermanently {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusMovedPermanently)
		}
		want := "https://bolso.example.com/api/cards/"
		if got := rec.Header().Get("Location"); got != want {
			t.Errorf("Location = %q, want %q", got, want)
		}
	})

	t.Run("forwarded https passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://bolso.example.com/api/cards/", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})
}
