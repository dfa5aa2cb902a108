package http

import (
	"net/http"

	"github.com/canopy-api/internal/application/auth"
	collegeapp "github.com/canopy-api/internal/application/college"
	fileapp "github.com/canopy-api/internal/application/file"
	listingapp "github.com/canopy-api/internal/application/listing"
	"github.com/canopy-api/internal/application/session"
	"github.com/canopy-api/internal/config"
	"github.com/canopy-api/internal/transport/http/cookies"
	"github.com/canopy-api/internal/transport/http/handler"
	appmiddleware "github.com/canopy-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		// Sessions ride on cookies, so credentialed CORS is required.
		AllowCredentials: true,
		MaxAge:           300,
	}))

	cw := cookies.Writer{
		Secure:     cfg.IsProduction(),
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}

	// A nil *Provider must stay a nil interface so the services can detect the
	// missing secret.
	var issuer auth.TokenIssuer
	var verifier session.TokenVerifier
	if deps.JWTProvider != nil {
		issuer = deps.JWTProvider
		verifier = deps.JWTProvider
	}

	authSvc := auth.NewService(auth.ServiceDeps{
		Users:    deps.UserRepo,
		Colleges: deps.CollegeRepo,
		Dir:      deps.Directory,
		Mailer:   deps.Mailer,
		Tokens:   issuer,
		Strict:   cfg.IsProduction(),
	})
	sessionSvc := session.NewService(deps.UserRepo, verifier)
	collegeSvc := collegeapp.NewService(deps.Directory)
	listingSvc := listingapp.NewService(deps.ListingRepo)

	var objectStore fileapp.ObjectStore
	if deps.S3Store != nil {
		objectStore = deps.S3Store
	}
	fileSvc := fileapp.NewService(objectStore, deps.FileRepo, "canopy")

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc, cw)
	sessionH := handler.NewSessionHandler()
	collegeH := handler.NewCollegeHandler(collegeSvc)
	listingH := handler.NewListingHandler(listingSvc)
	fileH := handler.NewFileHandler(fileSvc)

	sessionMw := appmiddleware.Session(sessionSvc, cw)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no session) ───────────────────────────────────────
		r.Get("/health", healthH.Ping)
		r.Post("/auth/send-otp", authH.SendOTP)
		r.Post("/auth/verify-otp", authH.VerifyOTP)
		r.Post("/auth/logout", authH.Logout)
		r.Get("/college", collegeH.Lookup)
		r.Get("/colleges", collegeH.Search)

		// ── Session routes ───────────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(sessionMw)

			r.Get("/session", sessionH.Get)

			r.Get("/listings", listingH.List)
			r.Post("/listings", listingH.Create)
			r.Put("/listings/{id}", listingH.Update)
			r.Delete("/listings/{id}", listingH.Delete)

			r.Post("/files/upload", fileH.Upload)
		})
	})

	return r
}
