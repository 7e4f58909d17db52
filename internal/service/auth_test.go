package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/templui/focusflow/internal/schema"
)

func newAuthService(t *testing.T, clock *fakeClock) *AuthService {
	t.Helper()
	store := newStorage(t)
	return NewAuthService(store.Users, "test-secret", time.Hour, false, clock.Now)
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t, &fakeClock{t: time.Now()})

	user, err := svc.Register(ctx, schema.Register{Email: " Ada@Example.com ", Password: "correct horse battery"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if !user.HasPassword() || *user.PasswordHash == "correct horse battery" {
		t.Error("password must be stored hashed")
	}

	_, err = svc.Register(ctx, schema.Register{Email: "ada@example.com", Password: "another long phrase"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("duplicate Register = %v, want ErrEmailAlreadyExists", err)
	}

	logged, err := svc.Login(ctx, "ADA@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != user.ID {
		t.Errorf("logged in as %s, want %s", logged.ID, user.ID)
	}

	if _, err := svc.Login(ctx, "ada@example.com", "wrong password here"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "whatever works"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthServiceJWT(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Now()}
	svc := newAuthService(t, clock)

	user, err := svc.Register(ctx, schema.Register{Email: "ada@example.com", Password: "correct horse battery"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, expiry, err := svc.GenerateJWT(user)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if !expiry.Equal(clock.t.Add(time.Hour)) {
		t.Errorf("expiry = %v", expiry)
	}

	id, err := svc.VerifyJWT(token)
	if err != nil || id != user.ID {
		t.Fatalf("VerifyJWT = %q, %v", id, err)
	}

	other := NewAuthService(nil, "other-secret", time.Hour, false, clock.Now)
	if _, err := other.VerifyJWT(token); err == nil {
		t.Error("token signed with another secret accepted")
	}

	clock.t = clock.t.Add(2 * time.Hour)
	if _, err := svc.VerifyJWT(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestAuthServiceCookies(t *testing.T) {
	svc := NewAuthService(nil, "secret", time.Hour, true, time.Now)

	rec := httptest.NewRecorder()
	svc.SetJWTCookie(rec, "tok", time.Now().Add(time.Hour))
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != AuthCookieName || cookies[0].Value != "tok" {
		t.Fatalf("cookies = %v", cookies)
	}
	if !cookies[0].HttpOnly || !cookies[0].Secure || cookies[0].SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie flags = %+v", cookies[0])
	}

	rec = httptest.NewRecorder()
	svc.ClearJWTCookie(rec)
	cookies = rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Fatalf("clear cookie = %+v", cookies)
	}
}

func TestAuthServiceOAuth(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t, &fakeClock{t: time.Now()})

	first, err := svc.AuthenticateOAuth(ctx, OAuthProfile{Email: "Grace@Example.com"}, "github")
	if err != nil {
		t.Fatalf("AuthenticateOAuth: %v", err)
	}
	if first.HasPassword() {
		t.Error("OAuth user should not have a password")
	}

	if first.FirstName != nil || first.LastName != nil {
		t.Errorf("names = %v %v, want nil without a profile name", first.FirstName, first.LastName)
	}

	again, err := svc.AuthenticateOAuth(ctx, OAuthProfile{Email: "grace@example.com", FirstName: "Grace", LastName: "Hopper"}, "google")
	if err != nil {
		t.Fatalf("AuthenticateOAuth again: %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("second sign-in created a new user")
	}

	stored, err := svc.User(ctx, first.ID)
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if stored.FirstName == nil || *stored.FirstName != "Grace" || stored.LastName == nil || *stored.LastName != "Hopper" {
		t.Errorf("stored names = %v %v, want Grace Hopper", stored.FirstName, stored.LastName)
	}

	_, err = svc.AuthenticateOAuth(ctx, OAuthProfile{Email: "grace@example.com", FirstName: "Amazing"}, "github")
	if err != nil {
		t.Fatalf("AuthenticateOAuth third: %v", err)
	}
	stored, err = svc.User(ctx, first.ID)
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if *stored.FirstName != "Grace" {
		t.Errorf("first name overwritten with %q", *stored.FirstName)
	}

	if _, err := svc.Login(ctx, "grace@example.com", "anything at all"); !errors.Is(err, ErrPasswordlessLogin) {
		t.Errorf("password login for OAuth user = %v, want ErrPasswordlessLogin", err)
	}

	if _, err := svc.AuthenticateOAuth(ctx, OAuthProfile{Email: "not-an-email"}, "github"); err == nil {
		t.Error("invalid email accepted")
	}
}

func TestAuthServicePasswordTooLongForBcrypt(t *testing.T) {
	svc := newAuthService(t, &fakeClock{t: time.Now()})

	// 40 characters but 80 bytes
	password := strings.Repeat("é", 40)
	_, err := svc.Register(context.Background(), schema.Register{Email: "long@example.com", Password: password})

	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Register = %v, want *schema.ValidationError", err)
	}
	if verr.Field != "password" {
		t.Errorf("field = %q, want password", verr.Field)
	}
}
