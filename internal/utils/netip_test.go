package utils

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{"remote only", "198.51.100.7:5000", nil, false, "198.51.100.7"},
		{"headers ignored without trust", "198.51.100.7:5000", map[string]string{"X-Forwarded-For": "10.0.0.1"}, false, "198.51.100.7"},
		{"cloudflare first", "127.0.0.1:5000", map[string]string{"CF-Connecting-IP": "203.0.113.1", "X-Forwarded-For": "10.0.0.1"}, true, "203.0.113.1"},
		{"left-most forwarded", "127.0.0.1:5000", map[string]string{"X-Forwarded-For": " 10.0.0.1 , 10.0.0.2"}, true, "10.0.0.1"},
		{"real ip", "127.0.0.1:5000", map[string]string{"X-Real-IP": "10.0.0.9"}, true, "10.0.0.9"},
		{"ipv6 remote", "[2001:db8::1]:443", nil, false, "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.0.2.4 ", "", "garbage"})

	if m.IsEmpty() {
		t.Fatal("matcher should not be empty")
	}
	for ip, want := range map[string]bool{
		"10.20.30.40": true,
		"192.0.2.4":   true,
		"192.0.2.5":   false,
		"not-an-ip":   false,
	} {
		if got := m.Allow(ip); got != want {
			t.Errorf("Allow(%q) = %v, want %v", ip, got, want)
		}
	}

	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("nil list should give an empty matcher")
	}
}
