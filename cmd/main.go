package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/app"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/config"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/controllers"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/middleware"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/repositories"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/routes"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/services"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/uploads"
	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize the application:", err)
	}
	defer application.Close()

	// Repositories
	staffRepo := repositories.NewStaffMemberRepository(application.DB)
	requestRepo := repositories.NewFOIRequestRepository(application.DB)
	reportRepo := repositories.NewReportRepository(application.DB)
	activityRepo := repositories.NewActivityLogRepository(application.DB)
	tokenRepo := repositories.NewTokenRepository(application.DB)
	attemptsRepo := repositories.NewLoginAttemptsRepository(application.DB)

	if err := app.SeedSystemAdmin(cfg, staffRepo); err != nil {
		utils.Logger.Fatal("Failed to seed system admin:", err)
	}

	// Services
	activityService := services.NewActivityLogService(activityRepo, staffRepo)
	activityService.Start()
	defer activityService.Close()

	uploader := uploads.NewClient(cfg.UploadFunctionURL, cfg.UploadServiceToken)
	intakeService := services.NewIntakeService(requestRepo, uploader)
	formService := services.NewFormService(requestRepo, activityService)
	reportService := services.NewReportService(reportRepo, activityService)
	staffService := services.NewStaffService(staffRepo, activityService)
	statsService := services.NewStatsService(requestRepo, reportRepo)
	jwtService := services.NewJWTService(cfg, tokenRepo)
	authService := services.NewAuthService(staffRepo, attemptsRepo, jwtService, activityService, cfg)
	monthlyService := services.NewMonthlyReportService(reportRepo, statsService, app.SystemAdminID)

	// Controllers
	healthController := controllers.NewHealthController(application)
	intakeController := controllers.NewIntakeController(intakeService)
	authController := controllers.NewAuthController(authService)
	formsController := controllers.NewFormsController(formService)
	reportsController := controllers.NewReportsController(reportService)
	staffController := controllers.NewStaffController(staffService)
	logsController := controllers.NewLogsController(activityService)
	dashboardController := controllers.NewDashboardController(statsService, activityService)

	// Scheduled jobs: monthly report draft + daily token cleanup.
	c := cron.New()
	if _, err := c.AddFunc("@monthly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := monthlyService.GenerateMonthly(ctx); err != nil {
			utils.Logger.WithError(err).Error("Scheduled monthly report generation failed")
		}
	}); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule monthly report job")
	}
	if _, err := c.AddFunc("@daily", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := tokenRepo.CleanupExpiredRefreshTokens(ctx); err != nil {
			utils.Logger.WithError(err).Error("Scheduled refresh token cleanup failed")
		}
	}); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule token cleanup job")
	}
	c.Start()
	defer c.Stop()

	// Router
	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.SubmitRequest, intakeController.SubmitHandler).Methods(http.MethodPost)

	auth := router.PathPrefix(routes.AuthBase).Subrouter()
	auth.HandleFunc(routes.AuthLogin, authController.LoginHandler).Methods(http.MethodPost)
	auth.HandleFunc(routes.AuthRefresh, authController.RefreshHandler).Methods(http.MethodPost)

	// Logout sits behind auth so the audit entry can name the actor.
	authSecured := router.PathPrefix(routes.AuthBase).Subrouter()
	authSecured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey, staffRepo))
	authSecured.HandleFunc(routes.AuthLogout, authController.LogoutHandler).Methods(http.MethodPost)

	// Protected routes (JWT middleware)
	secured := router.PathPrefix(routes.DashboardBase).Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey, staffRepo))

	secured.HandleFunc(routes.DashboardMenu, dashboardController.MenuHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.DashboardOverview, dashboardController.OverviewHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Forms, formsController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.FormByID, formsController.GetHandler).Methods(http.MethodGet)

	// Mutations require an operating role; viewers are read-only.
	operate := secured.NewRoute().Subrouter()
	operate.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleStaff))
	operate.HandleFunc(routes.FormStatus, formsController.UpdateStatusHandler).Methods(http.MethodPatch)
	operate.HandleFunc(routes.FormRefer, formsController.ReferHandler).Methods(http.MethodPost)
	operate.HandleFunc(routes.Reports, reportsController.CreateHandler).Methods(http.MethodPost)
	operate.HandleFunc(routes.ReportState, reportsController.UpdateStatusHandler).Methods(http.MethodPatch)
	operate.HandleFunc(routes.Logs, logsController.ListMineHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.Reports, reportsController.ListHandler).Methods(http.MethodGet)

	// Admin-only sections
	admin := secured.NewRoute().Subrouter()
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.HandleFunc(routes.Staff, staffController.ListHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.StaffByID, staffController.UpdateHandler).Methods(http.MethodPatch)
	admin.HandleFunc(routes.StaffActive, staffController.ToggleActiveHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.LogsAll, logsController.ListAllHandler).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	server := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      corsHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		utils.Logger.Infof("Listening on :%s", cfg.AppPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal("Server failed:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.Logger.WithError(err).Error("Graceful shutdown failed")
	}
	utils.Logger.Info("Server stopped.")
}
