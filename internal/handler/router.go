package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/becopy/becopy-api/internal/config"
	"github.com/becopy/becopy-api/shared/auth"
)

// Handlers bundles every route handler of the service.
type Handlers struct {
	Admin   *AdminHandler
	Auth    *AuthHandler
	User    *UserHandler
	Invite  *InviteHandler
	Setting *SettingHandler
	Job     *JobHandler
	Chat    *ChatHandler
	Convert *ConvertHandler
}

// NewRouter builds the chi router with every route of the service mounted.
func NewRouter(h Handlers, jwtAuth auth.JWTAuthenticator, cfg *config.Config, logger *zerolog.Logger) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(RequestLogger(logger))
	router.Use(middleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authMW := RequireAuth(jwtAuth, cfg)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	router.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(r chi.Router) {
			r.Post("/oauth/state", h.Auth.StartOAuth)
			r.Post("/oauth", h.Auth.OAuthLogin)
			r.Post("/verify-otp", h.Auth.VerifyOTP)
			r.Post("/resend-otp", h.Auth.ResendOTP)
			r.Post("/queue-action", h.Auth.QueueAction)
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/forgot-password/send", h.Auth.ForgotPasswordSend)
			r.Post("/forgot-password/verify", h.Auth.ForgotPasswordVerify)
			r.Post("/forgot-password/reset", h.Auth.ForgotPasswordReset)
		})

		api.Route("/admin", func(r chi.Router) {
			r.Post("/register", h.Admin.Register)
			r.Post("/login", h.Admin.Login)

			r.Group(func(r chi.Router) {
				r.Use(authMW, RequireAdmin)
				r.Put("/profile", h.Admin.UpdateProfile)
			})
		})

		api.Route("/setting", func(r chi.Router) {
			r.Get("/", h.Setting.Get)

			r.Group(func(r chi.Router) {
				r.Use(authMW, RequireAdmin)
				r.Put("/update", h.Setting.Update)
			})
		})

		api.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.Job.List)
			r.Get("/nearby", h.Job.Nearby)
			r.Get("/{id}", h.Job.Get)

			r.Group(func(r chi.Router) {
				r.Use(authMW)
				r.Post("/", h.Job.Create)
			})
		})

		api.Route("/invites", func(r chi.Router) {
			r.Use(authMW)
			r.Post("/", h.Invite.Send)
			r.Get("/", h.Invite.ListReceived)
			r.Get("/sent", h.Invite.ListSent)
			r.Post("/{id}/accept", h.Invite.Accept)
			r.Post("/{id}/decline", h.Invite.Decline)
		})

		api.Group(func(r chi.Router) {
			r.Use(authMW)
			r.Get("/users/directory", h.User.Directory)
			r.Get("/chat/session", h.Chat.CreateSession)
			r.Post("/gpt/convert", h.Convert.ConvertCode)
			r.Post("/gpt/chat", h.Convert.Chat)
		})
	})

	// Root-level aliases kept for the deployed frontend.
	router.Group(func(r chi.Router) {
		r.Use(authMW)
		r.Get("/profile", h.User.Profile)
		r.Put("/updateProfile", h.User.UpdateProfile)
	})

	return router
}
