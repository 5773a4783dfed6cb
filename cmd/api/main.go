package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/kitabonkesaar/attendance-app-saas/internal/config"
	appHTTP "github.com/kitabonkesaar/attendance-app-saas/internal/handler/http"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/ai"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/cron"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/database"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/email"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/jwt"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/oauth"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/sse"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/storage"
	"github.com/kitabonkesaar/attendance-app-saas/internal/repository/postgresql"
	attendanceService "github.com/kitabonkesaar/attendance-app-saas/internal/service/attendance"
	serviceAuth "github.com/kitabonkesaar/attendance-app-saas/internal/service/auth"
	dashboardService "github.com/kitabonkesaar/attendance-app-saas/internal/service/dashboard"
	employeeService "github.com/kitabonkesaar/attendance-app-saas/internal/service/employee"
	reportService "github.com/kitabonkesaar/attendance-app-saas/internal/service/report"
	"github.com/kitabonkesaar/attendance-app-saas/internal/service/session"
	settingsService "github.com/kitabonkesaar/attendance-app-saas/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	hub := sse.NewHub(cfg.Realtime.Enabled)
	aiClient := ai.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	authService := serviceAuth.NewAuthService(userRepo, JWTService, GoogleService, emailService, cfg.Timeouts, cfg.App.FrontendURL)
	resolver := session.NewResolver(userRepo, JWTService, cfg.Timeouts)
	settingsSvc := settingsService.NewSettingsService(settingsRepo, auditRepo, hub)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		settingsSvc,
		auditRepo,
		fileStorage,
		aiClient,
		hub,
		cfg.Timeouts,
	)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, userRepo, auditRepo, hub)
	reportSvc := reportService.NewReportService(attendanceRepo, employeeRepo)
	dashboardSvc := dashboardService.NewDashboardService(attendanceRepo, employeeRepo, aiClient, hub)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo).RegisterJobs(scheduler)
	scheduler.Start()

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		Config:     cfg,
		DB:         db,
		JWTService: JWTService,

		Auth:       appHTTP.NewAuthHandler(authService, JWTService, resolver),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Settings:   appHTTP.NewSettingsHandler(settingsSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Events:     appHTTP.NewEventsHandler(JWTService, hub),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown error", "error", err)
	}
	if err := scheduler.Stop(shutdownCtx); err != nil {
		slog.Error("Scheduler shutdown error", "error", err)
	}
}
