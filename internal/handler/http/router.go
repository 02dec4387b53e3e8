package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/paf-hr/hrms-backend-go/internal/config"
	"github.com/paf-hr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	penaltyHandler PenaltyHandler,
	ledgerHandler LedgerHandler,
	app config.AppConfig,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "paf-hrms"),
		slog.String("version", app.Version),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.FrontendOrigin,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.ListEmployees)
			r.Get("/{pakCode}", employeeHandler.GetEmployee)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", attendanceHandler.GetDaily)
			r.Get("/employees/{pakCode}", attendanceHandler.GetMonthly)

			r.Route("/biometric", func(r chi.Router) {
				r.Post("/preview", attendanceHandler.PreviewBiometric)
				r.Post("/import", attendanceHandler.ImportBiometric)
			})
		})

		r.Route("/penalties", func(r chi.Router) {
			r.Get("/settings", penaltyHandler.GetSettings)
			r.Put("/settings", penaltyHandler.UpdateSettings)
			r.Get("/calculate", penaltyHandler.Calculate)
			r.Post("/", penaltyHandler.SavePenalties)
		})

		r.Route("/ledger", func(r chi.Router) {
			r.Get("/", ledgerHandler.List)
			r.Post("/awards", ledgerHandler.Award)
		})
	})
	return r
}
