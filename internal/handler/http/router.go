package http

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/timepulse/timepulse-backend/internal/domain/auth"
	"github.com/timepulse/timepulse-backend/internal/handler/http/middleware"
	"github.com/timepulse/timepulse-backend/internal/pkg/jwt"
)

// RouterOptions carries the deployment settings the router needs.
type RouterOptions struct {
	Env            string
	Version        string
	LogLevel       slog.Level
	AllowedOrigins []string
	RequestTimeout time.Duration
	// UploadsDir is served under /uploads when set.
	UploadsDir string
}

type Handlers struct {
	Auth      AuthHandler
	Leave     LeaveHandler
	Timesheet TimesheetHandler
	Holiday   HolidayHandler
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timepulse"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
		Skip: func(req *http.Request, respStatus int) bool {
			return respStatus == http.StatusOK && req.URL.Path == "/health"
		},
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	if opts.RequestTimeout > 0 {
		r.Use(chiMiddleware.Timeout(opts.RequestTimeout))
	}

	if opts.UploadsDir != "" {
		fs := http.StripPrefix("/uploads", http.FileServer(http.Dir(opts.UploadsDir)))
		r.Get("/uploads/*", func(w http.ResponseWriter, req *http.Request) {
			if strings.HasSuffix(req.URL.Path, "/") {
				http.NotFound(w, req)
				return
			}
			fs.ServeHTTP(w, req)
		})
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.With(chiMiddleware.AllowContentType("application/json")).Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/me", h.Auth.Me)

			r.With(middleware.RequirePermission(auth.PermissionHolidayView)).Get("/holidays", h.Holiday.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireTenant)

				r.Route("/leave", func(r chi.Router) {
					r.Route("/requests", func(r chi.Router) {
						r.With(middleware.RequirePermission(auth.PermissionLeaveCreate)).Post("/validate", h.Leave.ValidateRequest)
						r.With(middleware.RequirePermission(auth.PermissionLeaveCreate)).Post("/", h.Leave.CreateRequest)
						r.With(middleware.RequirePermission(auth.PermissionLeaveViewOwn)).Get("/my", h.Leave.GetMyRequests)
						r.With(middleware.RequirePermission(auth.PermissionLeaveViewAll)).Get("/", h.Leave.ListRequests)

						r.Route("/{id}", func(r chi.Router) {
							r.With(middleware.RequirePermission(auth.PermissionLeaveViewOwn)).Get("/", h.Leave.GetRequest)
							r.With(middleware.RequirePermission(auth.PermissionLeaveApprove)).Post("/approve", h.Leave.ApproveRequest)
							r.With(middleware.RequirePermission(auth.PermissionLeaveApprove)).Post("/reject", h.Leave.RejectRequest)
							r.With(middleware.RequirePermission(auth.PermissionLeaveCreate)).Post("/cancel", h.Leave.CancelRequest)
						})
					})

					r.Route("/balances", func(r chi.Router) {
						r.With(middleware.RequirePermission(auth.PermissionLeaveViewOwn)).Get("/my", h.Leave.GetMyBalances)
						r.With(middleware.RequirePermission(auth.PermissionLeaveManageBalance)).Put("/", h.Leave.SetBalance)
					})
				})

				r.Route("/timesheets", func(r chi.Router) {
					r.With(middleware.RequirePermission(auth.PermissionTimesheetSubmit)).Post("/classify", h.Timesheet.Classify)
					r.With(middleware.RequirePermission(auth.PermissionTimesheetSubmit)).Post("/", h.Timesheet.Submit)
					r.With(middleware.RequirePermission(auth.PermissionTimesheetViewOwn)).Get("/my", h.Timesheet.GetMyWeeklyHours)
					r.With(middleware.RequirePermission(auth.PermissionTimesheetViewAll)).Get("/", h.Timesheet.ListWeeklyHours)

					r.Route("/{id}", func(r chi.Router) {
						r.With(middleware.RequirePermission(auth.PermissionTimesheetViewOwn)).Get("/", h.Timesheet.GetWeeklyHours)
						r.With(middleware.RequirePermission(auth.PermissionTimesheetApprove)).Post("/approve", h.Timesheet.Approve)
						r.With(middleware.RequirePermission(auth.PermissionTimesheetApprove)).Post("/reject", h.Timesheet.Reject)
					})
				})
			})
		})
	})
	return r
}
