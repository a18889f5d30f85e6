package http

import (
	"net/http"
	"time"

	"neevamind/internal/auth"
	"neevamind/internal/config"
	"neevamind/internal/diary"
	"neevamind/internal/http/handler"
	mw "neevamind/internal/http/middleware"
	"neevamind/internal/insight"
	"neevamind/internal/report"
	"neevamind/internal/textgen"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, db *gorm.DB, jwtSvc *auth.JWT, gen textgen.Completer) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	loc, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		loc = time.UTC
	}

	diaryStore := &diary.Store{DB: db}
	insightSvc := insight.NewService(diaryStore, &insight.GormStore{DB: db}, gen, insight.Options{
		MaxTokens:   cfg.TextGen.MaxTokens,
		Temperature: cfg.TextGen.Temperature,
	})
	reportSvc := report.NewService(diaryStore, loc)

	ah := &handler.AuthHandler{Users: &auth.Service{DB: db}, JWT: jwtSvc}
	dh := &handler.DiaryHandler{Store: diaryStore}
	ih := &handler.InsightHandler{Svc: insightSvc}
	rh := &handler.ReportHandler{Svc: reportSvc}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", ah.Signup)
			r.Post("/login", ah.Login)
			r.Post("/logout", ah.Logout)
			r.With(auth.RequireAuth(jwtSvc)).Get("/check", ah.Check)
		})

		r.Route("/diary", func(r chi.Router) {
			r.Use(auth.RequireAuth(jwtSvc))

			r.Post("/entry", dh.Create)
			r.Get("/entries", dh.List)
			r.Get("/tags", dh.Tags)
		})

		r.Route("/insights", func(r chi.Router) {
			r.Use(auth.RequireAuth(jwtSvc))

			r.Post("/generate", ih.Generate)
			r.Get("/", ih.List)
			r.Get("/weekly-report", rh.Weekly)
		})
	})

	return r
}
