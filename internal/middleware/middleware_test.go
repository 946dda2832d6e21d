package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"sori/internal/auth"
	"sori/internal/httputil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body httputil.ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return body.Code
}

func TestBearerToken(t *testing.T) {
	var gotToken string
	h := BearerToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = httputil.GetBearerToken(r)
	}))

	tests := []struct {
		name      string
		header    string
		wantCode  string
		wantToken string
	}{
		{name: "missing", header: "", wantCode: "missing_authorization_header"},
		{name: "wrong scheme", header: "Basic abc", wantCode: "invalid_authorization_header"},
		{name: "no token", header: "Bearer ", wantCode: "invalid_authorization_header"},
		{name: "valid", header: "Bearer abc.def.ghi", wantToken: "abc.def.ghi"},
		{name: "case insensitive scheme", header: "bearer abc", wantToken: "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotToken = ""
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			if tt.wantCode != "" {
				if w.Code != http.StatusUnauthorized || errorCode(t, w) != tt.wantCode {
					t.Errorf("got %d %s, want 401 %s", w.Code, w.Body.String(), tt.wantCode)
				}
				return
			}
			if gotToken != tt.wantToken {
				t.Errorf("token = %q, want %q", gotToken, tt.wantToken)
			}
		})
	}
}

func TestRequireAccessToken(t *testing.T) {
	tokens := auth.NewTokenService("http://localhost:3000", "secret", discardLogger())
	pair, err := tokens.IssueTokenPair("user-1")
	if err != nil {
		t.Fatal(err)
	}

	var gotUser string
	h := RequireAccessToken(tokens, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = httputil.GetUserID(r)
	}))

	tests := []struct {
		name     string
		token    string
		wantCode string
	}{
		{name: "access token", token: pair.AccessToken},
		{name: "refresh token", token: pair.RefreshToken, wantCode: "invalid_token"},
		{name: "garbage", token: "not-a-jwt", wantCode: "invalid_token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser = ""
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			if tt.wantCode != "" {
				if w.Code != http.StatusUnauthorized || errorCode(t, w) != tt.wantCode {
					t.Errorf("got %d %s, want 401 %s", w.Code, w.Body.String(), tt.wantCode)
				}
				return
			}
			if gotUser != "user-1" {
				t.Errorf("user = %q, want user-1", gotUser)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError || errorCode(t, w) != "internal_server_error" {
		t.Errorf("got %d %s", w.Code, w.Body.String())
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
}
