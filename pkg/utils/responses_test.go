package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{"application/json", true},
		{"application/json, text/plain, */*", true},
		{"text/html, application/json;q=0.9", true},
		{"text/html", false},
		{"", false},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.accept != "" {
			r.Header.Set("Accept", tt.accept)
		}
		if got := WantsJSON(r); got != tt.want {
			t.Errorf("WantsJSON(Accept: %q) = %v, want %v", tt.accept, got, tt.want)
		}
	}
}

func TestRedirectUsesSeeOther(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/films/x/reviews", nil)

	Redirect(w, r, "/films/x")

	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if got := w.Header().Get("Location"); got != "/films/x" {
		t.Errorf("Location = %q, want /films/x", got)
	}
}
