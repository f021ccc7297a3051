package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timepulse/timepulse-backend/internal/config"
	"github.com/timepulse/timepulse-backend/internal/domain/holiday"
	appHTTP "github.com/timepulse/timepulse-backend/internal/handler/http"
	"github.com/timepulse/timepulse-backend/internal/pkg/cron"
	"github.com/timepulse/timepulse-backend/internal/pkg/database"
	"github.com/timepulse/timepulse-backend/internal/pkg/jwt"
	"github.com/timepulse/timepulse-backend/internal/pkg/session"
	"github.com/timepulse/timepulse-backend/internal/pkg/storage"
	"github.com/timepulse/timepulse-backend/internal/repository/postgresql"
	serviceAuth "github.com/timepulse/timepulse-backend/internal/service/auth"
	"github.com/timepulse/timepulse-backend/internal/service/file"
	"github.com/timepulse/timepulse-backend/internal/service/leave"
	"github.com/timepulse/timepulse-backend/internal/service/timesheet"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.App.LogLevel, err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})).With(
		slog.String("app", "timepulse"),
		slog.String("env", cfg.App.Env),
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	calendar, err := holiday.Load(cfg.Holiday.CalendarPath)
	if err != nil {
		return fmt.Errorf("load holiday calendar: %w", err)
	}
	slog.Info("holiday calendar loaded", "path", cfg.Holiday.CalendarPath, "holidays", len(calendar.All()))

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return fmt.Errorf("initialize local storage: %w", err)
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	weeklyHoursRepo := postgresql.NewWeeklyHoursRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	if err != nil {
		return fmt.Errorf("initialize jwt: %w", err)
	}
	sessions := session.NewMemoryStore(cfg.Session.TTL)

	fileService := file.NewFileService(fileStorage)
	authService := serviceAuth.NewAuthService(transactor, userRepo, refreshTokenRepo, JWTService, sessions)
	leaveService := leave.NewLeaveService(transactor, leaveRequestRepo, leaveBalanceRepo, fileService)
	timesheetService := timesheet.NewTimesheetService(transactor, weeklyHoursRepo, calendar)

	scheduler := cron.NewScheduler(ctx, cfg.Cron.JobTimeout)
	cron.NewAuthJobs(sessions, JWTService, refreshTokenRepo, cfg.Cron.Interval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	uploadsDir := ""
	if local, ok := fileStorage.(*storage.LocalStorage); ok {
		uploadsDir = local.BasePath()
	}

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:      appHTTP.NewAuthHandler(JWTService, authService),
		Leave:     appHTTP.NewLeaveHandler(leaveService),
		Timesheet: appHTTP.NewTimesheetHandler(timesheetService),
		Holiday:   appHTTP.NewHolidayHandler(calendar),
	}, appHTTP.RouterOptions{
		Env:            cfg.App.Env,
		Version:        version,
		LogLevel:       logLevel,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.App.RequestTimeout,
		UploadsDir:     uploadsDir,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
