package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"sori/internal/domain/services"
)

func TestHealthProber(t *testing.T) {
	var gotPath string
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	prober := NewHealthProber(healthy.Client(), discardLogger())

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"healthy", healthy.URL, false},
		{"trailing slash", healthy.URL + "/", false},
		{"non-200", failing.URL, true},
		{"connection refused", closedURL, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := prober.Probe(context.Background(), tt.url)
			if tt.wantErr {
				if !errors.Is(err, services.ErrServerUnreachable) {
					t.Errorf("Probe() error = %v, want ErrServerUnreachable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Probe() error = %v", err)
			}
			if gotPath != "/health" {
				t.Errorf("path = %q, want /health", gotPath)
			}
		})
	}
}
