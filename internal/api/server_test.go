package api

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestIntParam(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing uses fallback", "", 20},
		{"valid value", "limit=50", 50},
		{"zero is accepted", "limit=0", 0},
		{"negative uses fallback", "limit=-5", 20},
		{"non-numeric uses fallback", "limit=abc", 20},
		{"trailing garbage uses fallback", "limit=50x", 20},
		{"overflow uses fallback", "limit=99999999999999999999", 20},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/notices?"+tt.query, nil)
			c := e.NewContext(req, httptest.NewRecorder())
			if got := intParam(c, "limit", 20); got != tt.want {
				t.Errorf("intParam(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}
