package routes

import (
	"net/http"

	"github.com/templui/focusflow/internal/app"
	"github.com/templui/focusflow/internal/contract"
	"github.com/templui/focusflow/internal/handler"
	"github.com/templui/focusflow/internal/middleware"
	"github.com/templui/focusflow/internal/respond"
)

type binding struct {
	route  contract.Route
	handle http.HandlerFunc
}

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	goals := handler.NewGoalHandler(app.GoalService)
	focus := handler.NewFocusHandler(app.FocusService)
	resources := handler.NewResourceHandler(app.ResourceService)
	auth := handler.NewAuthHandler(app.AuthService, app.Cfg)
	health := handler.NewHealthHandler(app.DB)

	// Auth - Authentication flow (rate limited)
	rateLimiter := middleware.RateLimitAuth(app.Cfg.AuthRateLimit, app.Cfg.AuthRateWindow, app.Cfg.TrustedProxies)

	api := contract.API
	bindings := []binding{
		{api.Goals.List, goals.List},
		{api.Goals.Export, goals.Export},
		{api.Goals.Create, goals.Create},
		{api.Goals.Update, goals.Update},
		{api.Goals.Delete, goals.Delete},
		{api.DailyFocus.GetToday, focus.Today},
		{api.DailyFocus.Upsert, focus.Upsert},
		{api.Resources.List, resources.List},
		{api.Resources.Get, resources.Get},
		{api.Auth.Register, rateLimiter(auth.Register)},
		{api.Auth.Login, rateLimiter(auth.Login)},
		{api.Auth.Logout, auth.Logout},
		{api.Auth.User, auth.User},
		{api.System.Health, health.Health},
	}

	mux := http.NewServeMux()

	for _, b := range bindings {
		h := b.handle
		if b.route.Auth || (app.Cfg.ResourcesAuth && isResourceRoute(b.route)) {
			h = middleware.RequireAuth(h)
		}
		mux.HandleFunc(b.route.Pattern(), h)
	}

	// OAuth
	mux.HandleFunc("GET /api/login/{provider}", rateLimiter(auth.OAuthLogin))
	mux.HandleFunc("GET /api/callback/{provider}", rateLimiter(auth.OAuthCallback))

	// 404
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		respond.NotFound(w, "Not found")
	})

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Recovery,
		middleware.SecurityHeaders(app.Cfg.IsProduction()),
		middleware.CORS(app.Cfg.CORSOrigins),
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService),
	)
}

func isResourceRoute(r contract.Route) bool {
	return r.Path == contract.API.Resources.List.Path || r.Path == contract.API.Resources.Get.Path
}
