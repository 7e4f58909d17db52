package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/templui/focusflow/internal/ctxkeys"
	"github.com/templui/focusflow/internal/db/dbtest"
	"github.com/templui/focusflow/internal/repository"
	"github.com/templui/focusflow/internal/schema"
	"github.com/templui/focusflow/internal/service"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("first"), mark("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got := strings.Join(order, ","); got != "first,second,handler" {
		t.Errorf("order = %s", got)
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"message":"Internal Server Error"}` {
		t.Errorf("body = %s", got)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("third request should be limited")
	}
	if !rl.Allow("5.6.7.8") {
		t.Fatal("other IPs have their own budget")
	}

	now = now.Add(2 * time.Minute)
	if !rl.Allow("1.2.3.4") {
		t.Fatal("budget should reset after the window")
	}
	if _, ok := rl.requests["5.6.7.8"]; ok {
		t.Error("stale IP not cleaned up")
	}
}

func TestRateLimitAuthResponds429(t *testing.T) {
	limited := RateLimitAuth(1, time.Minute, nil)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)

	rec := httptest.NewRecorder()
	limited(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("first status = %d", rec.Code)
	}

	// A fresh forwarding header from an untrusted peer must not reset the count
	req.Header.Set("X-Forwarded-For", "9.9.9.9")
	rec = httptest.NewRecorder()
	limited(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"message"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestClientIP(t *testing.T) {
	trusted := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}

	tests := []struct {
		name   string
		remote string
		xff    string
		xri    string
		want   string
	}{
		{name: "untrusted peer ignores headers", remote: "203.0.113.5:4000", xff: "1.1.1.1", xri: "2.2.2.2", want: "203.0.113.5"},
		{name: "trusted peer uses forwarded client", remote: "10.0.0.2:4000", xff: "198.51.100.7", want: "198.51.100.7"},
		{name: "spoofed leftmost hop is skipped", remote: "10.0.0.2:4000", xff: "1.1.1.1, 198.51.100.7, 10.0.0.9", want: "198.51.100.7"},
		{name: "trusted peer falls back to X-Real-IP", remote: "10.0.0.2:4000", xri: "198.51.100.8", want: "198.51.100.8"},
		{name: "trusted peer without headers", remote: "10.0.0.2:4000", want: "10.0.0.2"},
		{name: "ipv6 peer", remote: "[2001:db8::1]:4000", xff: "1.1.1.1", want: "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := clientIP(req, trusted); got != tt.want {
				t.Errorf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://localhost:5173"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	preflight := httptest.NewRequest(http.MethodOptions, "/api/goals", nil)
	preflight.Header.Set("Origin", "http://localhost:5173")
	preflight.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, preflight)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow origin = %q", got)
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), "PUT") {
		t.Errorf("allow methods = %q", rec.Header().Get("Access-Control-Allow-Methods"))
	}

	other := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
	other.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unknown origin must not be allowed")
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	for _, name := range []string{"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy", "Strict-Transport-Security"} {
		if rec.Header().Get(name) == "" {
			t.Errorf("%s not set", name)
		}
	}
}

func TestAuthMiddleware(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStorage(dbtest.New(t))
	auth := service.NewAuthService(store.Users, "secret", time.Hour, false, time.Now)

	user, err := auth.Register(ctx, schema.Register{Email: "ada@example.com", Password: "correct horse battery"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, _, err := auth.GenerateJWT(user)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	h := Chain(RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		u := ctxkeys.User(r.Context())
		if u.PasswordHash != nil {
			t.Error("password hash leaked into context")
		}
		io.WriteString(w, ctxkeys.UserID(r.Context()))
	}), AuthMiddleware(auth))

	tests := []struct {
		name       string
		prepare    func(*http.Request)
		wantStatus int
		clears     bool
	}{
		{name: "anonymous", prepare: func(*http.Request) {}, wantStatus: http.StatusUnauthorized},
		{name: "bearer", prepare: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, wantStatus: http.StatusOK},
		{name: "cookie", prepare: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: service.AuthCookieName, Value: token}) }, wantStatus: http.StatusOK},
		{name: "bad bearer", prepare: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, wantStatus: http.StatusUnauthorized},
		{name: "bad cookie", prepare: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: service.AuthCookieName, Value: "nope"}) }, wantStatus: http.StatusUnauthorized, clears: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && rec.Body.String() != user.ID {
				t.Errorf("user id = %q, want %q", rec.Body.String(), user.ID)
			}
			if tt.wantStatus == http.StatusUnauthorized && strings.TrimSpace(rec.Body.String()) != `{"message":"Unauthorized"}` {
				t.Errorf("body = %s", rec.Body.String())
			}
			if cleared := strings.Contains(rec.Header().Get("Set-Cookie"), service.AuthCookieName+"=;"); cleared != tt.clears {
				t.Errorf("cookie cleared = %v, want %v", cleared, tt.clears)
			}
		})
	}
}
