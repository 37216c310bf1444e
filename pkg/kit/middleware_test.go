package kit

import (
	"net/http"
	"testing"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusOK, "info"},
		{http.StatusNotFound, "warn"},
		{http.StatusTooManyRequests, "warn"},
		{http.StatusServiceUnavailable, "error"},
	}

	for _, tt := range tests {
		if got := levelFor(tt.status).String(); got != tt.want {
			t.Fatalf("status=%d level=%s want=%s", tt.status, got, tt.want)
		}
	}
}
