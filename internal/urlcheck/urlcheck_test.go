package urlcheck

import "testing"

func TestAllowed(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"public http", "http://example.com/prices", true},
		{"public https", "https://shop.example.com/catalog.html", true},
		{"public with port", "https://example.com:8443/", true},
		{"empty", "", false},
		{"not a url", "://nope", false},
		{"ftp scheme", "ftp://example.com/file.pdf", false},
		{"file scheme", "file:///etc/passwd", false},
		{"javascript scheme", "javascript:alert(1)", false},
		{"scheme only", "https://", false},
		{"localhost", "http://localhost/admin", false},
		{"localhost with port", "http://localhost:8080/", false},
		{"localhost subdomain", "http://foo.localhost/", false},
		{"loopback v4", "http://127.0.0.1/", false},
		{"loopback v4 high", "http://127.0.0.53:53/", false},
		{"unspecified", "http://0.0.0.0:9000/", false},
		{"loopback v6", "http://[::1]/", false},
		{"rfc1918 10", "http://10.0.0.5/metadata", false},
		{"rfc1918 10 deep", "https://10.255.255.254/", false},
		{"rfc1918 172 low edge", "http://172.16.0.1/", false},
		{"rfc1918 172 high edge", "http://172.31.255.255/", false},
		{"172 below range", "http://172.15.0.1/", true},
		{"172 above range", "http://172.32.0.1/", true},
		{"rfc1918 192", "http://192.168.1.1/router", false},
		{"link local", "http://169.254.169.254/latest/meta-data", false},
		{"public ip", "http://93.184.216.34/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.url); got != tt.want {
				t.Errorf("Allowed(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
