package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"

	"github.com/templui/focusflow/internal/config"
	"github.com/templui/focusflow/internal/contract"
	"github.com/templui/focusflow/internal/ctxkeys"
	"github.com/templui/focusflow/internal/model"
	"github.com/templui/focusflow/internal/respond"
	"github.com/templui/focusflow/internal/schema"
	"github.com/templui/focusflow/internal/service"
)

const oauthStateCookie = "oauth_state"

// Session is the body returned after register and login. The token can be sent
// as a Bearer header by clients that do not keep cookies.
type Session struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

type oauthProvider struct {
	config  *oauth2.Config
	profile func(ctx context.Context, client *http.Client) (service.OAuthProfile, error)
}

type AuthHandler struct {
	authService  *service.AuthService
	providers    map[string]*oauthProvider
	appURL       string
	isProduction bool
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	h := &AuthHandler{
		authService:  authService,
		providers:    map[string]*oauthProvider{},
		appURL:       cfg.AppURL,
		isProduction: cfg.IsProduction(),
	}

	if cfg.GoogleEnabled() {
		h.providers["google"] = &oauthProvider{
			config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				RedirectURL:  cfg.AppURL + "/api/callback/google",
				Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
				Endpoint:     google.Endpoint,
			},
			profile: googleProfile,
		}
	}
	if cfg.GitHubEnabled() {
		h.providers["github"] = &oauthProvider{
			config: &oauth2.Config{
				ClientID:     cfg.GitHubClientID,
				ClientSecret: cfg.GitHubClientSecret,
				RedirectURL:  cfg.AppURL + "/api/callback/github",
				Scopes:       []string{"user:email"},
				Endpoint:     github.Endpoint,
			},
			profile: githubProfile,
		}
	}

	return h
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	in, err := bind[schema.Register](w, r, contract.API.Auth.Register)
	if respond.Invalid(w, err) {
		return
	}
	if err != nil {
		slog.Error("failed to parse registration", "error", err)
		respond.InternalError(w)
		return
	}

	user, err := h.authService.Register(r.Context(), *in)
	if respond.Invalid(w, err) {
		return
	}
	if errors.Is(err, service.ErrEmailAlreadyExists) {
		respond.Error(w, http.StatusConflict, "Email already registered")
		return
	}
	if err != nil {
		slog.Error("failed to register user", "error", err)
		respond.InternalError(w)
		return
	}

	h.startSession(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	in, err := bind[schema.Login](w, r, contract.API.Auth.Login)
	if respond.Invalid(w, err) {
		return
	}
	if err != nil {
		slog.Error("failed to parse login", "error", err)
		respond.InternalError(w)
		return
	}

	user, err := h.authService.Login(r.Context(), in.Email, in.Password)
	if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrPasswordlessLogin) {
		slog.Warn("password login failed", "error", err)
		respond.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		slog.Error("failed to log in", "error", err)
		respond.InternalError(w)
		return
	}

	slog.Info("user logged in with password", "user_id", user.ID)
	h.startSession(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	respond.NoContent(w)
}

// User returns the authenticated caller.
func (h *AuthHandler) User(w http.ResponseWriter, r *http.Request) {
	respond.OK(w, ctxkeys.User(r.Context()))
}

func (h *AuthHandler) startSession(w http.ResponseWriter, status int, user *model.User) {
	token, expiry, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate JWT", "error", err, "user_id", user.ID)
		respond.InternalError(w)
		return
	}

	h.authService.SetJWTCookie(w, token, expiry)
	respond.JSON(w, status, Session{User: user, Token: token})
}

// OAuthLogin redirects to the consent screen of the {provider} path value.
func (h *AuthHandler) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	provider, ok := h.providers[r.PathValue("provider")]
	if !ok {
		respond.NotFound(w, "Unknown login provider")
		return
	}

	// Generate secure state token for CSRF protection
	state := generateOAuthState()

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.isProduction,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600, // 10 minutes
	})

	url := provider.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// OAuthCallback finishes the provider flow, signs the user in and sends them
// back to the app.
func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("provider")
	provider, ok := h.providers[name]
	if !ok {
		respond.NotFound(w, "Unknown login provider")
		return
	}

	// Validate state parameter for CSRF protection
	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value != state || state == "" {
		slog.Warn("oauth state validation failed", "provider", name, "error", err)
		respond.Unauthorized(w)
		return
	}

	// Clear state cookie
	http.SetCookie(w, &http.Cookie{
		Name:   oauthStateCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		slog.Warn("oauth callback missing code", "provider", name)
		respond.BadRequest(w, "code", "Missing authorization code")
		return
	}

	token, err := provider.config.Exchange(r.Context(), code)
	if err != nil {
		slog.Error("oauth token exchange failed", "provider", name, "error", err)
		respond.Unauthorized(w)
		return
	}

	profile, err := provider.profile(r.Context(), provider.config.Client(r.Context(), token))
	if err != nil {
		slog.Error("failed to get oauth user profile", "provider", name, "error", err)
		respond.Unauthorized(w)
		return
	}

	user, err := h.authService.AuthenticateOAuth(r.Context(), profile, name)
	if respond.Invalid(w, err) {
		return
	}
	if err != nil {
		slog.Error("oauth authentication failed", "provider", name, "error", err)
		respond.InternalError(w)
		return
	}

	jwtToken, expiry, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate JWT", "error", err, "user_id", user.ID)
		respond.InternalError(w)
		return
	}

	h.authService.SetJWTCookie(w, jwtToken, expiry)

	slog.Info("user logged in with oauth", "provider", name, "user_id", user.ID)
	http.Redirect(w, r, h.appURL+"/", http.StatusSeeOther)
}

func googleProfile(ctx context.Context, client *http.Client) (service.OAuthProfile, error) {
	var info struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}
	err := getJSON(ctx, client, "https://www.googleapis.com/oauth2/v2/userinfo", &info)
	if err != nil {
		return service.OAuthProfile{}, err
	}
	return service.OAuthProfile{Email: info.Email, FirstName: info.GivenName, LastName: info.FamilyName}, nil
}

// githubProfile falls back to /user/emails when the profile email is private.
// GitHub has a single display name, split at its first space.
func githubProfile(ctx context.Context, client *http.Client) (service.OAuthProfile, error) {
	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	err := getJSON(ctx, client, "https://api.github.com/user", &info)
	if err != nil {
		return service.OAuthProfile{}, err
	}

	first, last, _ := strings.Cut(strings.TrimSpace(info.Name), " ")
	profile := service.OAuthProfile{Email: info.Email, FirstName: first, LastName: last}
	if profile.Email != "" {
		return profile, nil
	}

	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	err = getJSON(ctx, client, "https://api.github.com/user/emails", &emails)
	if err != nil {
		return service.OAuthProfile{}, err
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			profile.Email = e.Email
			return profile, nil
		}
	}
	return service.OAuthProfile{}, errors.New("no verified primary email on github account")
}

func getJSON(ctx context.Context, client *http.Client, url string, dst any) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

// generateOAuthState creates cryptographically secure random state token for OAuth CSRF protection
func generateOAuthState() string {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		panic("failed to generate oauth state: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(bytes)
}
