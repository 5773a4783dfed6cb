package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/kitabonkesaar/attendance-app-saas/internal/config"
	"github.com/kitabonkesaar/attendance-app-saas/internal/handler/http/middleware"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/database"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/jwt"
)

type RouterDeps struct {
	Config     *config.Config
	DB         *database.DB
	JWTService jwt.Service

	Auth       AuthHandler
	Attendance AttendanceHandler
	Employee   EmployeeHandler
	Settings   SettingsHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
	Events     EventsHandler
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-app"),
		slog.String("version", "v1.0.0"),
		slog.String("env", deps.Config.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.Config.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := deps.DB.Healthy(req.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unreachable\n"))
			return
		}
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.Auth.Register)
			r.Post("/refresh", deps.Auth.RefreshToken)
			r.Post("/forgot-password", deps.Auth.ForgotPassword)
			r.Post("/reset-password", deps.Auth.ResetPassword)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", deps.Auth.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", deps.Auth.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", deps.Auth.LoginWithGoogle)
				})
			})

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))

				r.Get("/session", deps.Auth.Session)
				r.Post("/logout", deps.Auth.Logout)
			})
		})

		// SSE stream authenticates via short-lived token in the query
		// string, outside the Authorization-header middleware chain.
		r.Get("/events/stream", deps.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))

			r.Get("/events/sse-token", deps.Events.GetSSEToken)

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/punch-in", deps.Attendance.PunchIn)
				r.Post("/punch-out", deps.Attendance.PunchOut)
				r.Get("/today", deps.Attendance.Today)
				r.Get("/my", deps.Attendance.GetMyAttendance)

				// Manager or admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", deps.Attendance.List)
					r.Post("/", deps.Attendance.CreateManual)
					r.Get("/{id}", deps.Attendance.Get)
					r.Put("/{id}", deps.Attendance.Update)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Delete("/{id}", deps.Attendance.Delete)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				// Manager or admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", deps.Employee.List)
					r.Get("/{id}", deps.Employee.Get)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", deps.Employee.Create)
					r.Put("/{id}", deps.Employee.Update)
					r.Delete("/{id}", deps.Employee.Delete)
				})
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", deps.Settings.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/deploy", deps.Settings.Deploy)
				})
			})

			// Manager or admin
			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/monthly", deps.Report.MonthlyPerformance)
				r.Get("/monthly/csv", deps.Report.ExportCSV)
				r.Get("/employees/{id}", deps.Report.EmployeeMonth)
			})

			// Manager or admin
			r.Route("/dashboard", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/overview", deps.Dashboard.Overview)
			})
		})
	})
	return r
}
