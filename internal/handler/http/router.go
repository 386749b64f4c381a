package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/rotahr/payroll-backend-go/internal/handler/http/middleware"
	"github.com/rotahr/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	payrollHandler PayrollHandler,
	rateProfileHandler RateProfileHandler,
	bankHolidayHandler BankHolidayHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "rotahr-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/payrolls", func(r chi.Router) {
				r.Post("/generate", payrollHandler.Generate)
				r.Get("/", payrollHandler.ListRecords)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", payrollHandler.GetRecord)
					r.Patch("/", payrollHandler.UpdateRecord)
					r.Put("/", payrollHandler.UpdateRecord)
					r.Post("/regenerate", payrollHandler.Regenerate)
					r.Post("/approve", payrollHandler.Approve)
					r.Post("/reject", payrollHandler.Reject)
				})
			})

			r.Route("/rate-profiles", func(r chi.Router) {
				r.Post("/", rateProfileHandler.Create)
				r.Get("/", rateProfileHandler.List)
				r.Get("/{id}", rateProfileHandler.GetByID)
				r.Delete("/{id}", rateProfileHandler.Delete)
			})

			r.Route("/bank-holidays", func(r chi.Router) {
				r.Post("/", bankHolidayHandler.Create)
				r.Get("/", bankHolidayHandler.ListByYear)
				r.Delete("/{id}", bankHolidayHandler.Delete)
			})
		})
	})
	return r
}
