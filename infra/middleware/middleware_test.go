package middleware

import "testing"

func TestAPIBasePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/acme/mapa", "/acme/verificador/api"},
		{"/acme", "/acme/verificador/api"},
		{"/verificador/mapa", "/verificador/api"},
		{"/rm/painel", "/verificador/api"},
		{"/admin", "/verificador/api"},
		{"/", "/verificador/api"},
		{"", "/verificador/api"},
	}
	for _, tt := range tests {
		if got := APIBasePath(tt.path); got != tt.want {
			t.Errorf("APIBasePath(%q) = %q, esperava %q", tt.path, got, tt.want)
		}
	}
}
