package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zenithhr/hrms-backend-go/internal/config"
	"github.com/zenithhr/hrms-backend-go/internal/domain/user"
	"github.com/zenithhr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler *AuthHandler,
	leaveHandler *LeaveHandler,
	employeeHandler *EmployeeHandler,
	attendanceHandler *AttendanceHandler,
	masterHandler *MasterHandler,
	companyHandler *CompanyHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "zenith-hrms"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
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
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Get("/me", authHandler.Me)
				r.Post("/change-password", authHandler.ChangePassword)
			})
		})

		// Everything below requires authentication.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", employeeHandler.Me)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.ModuleEmployees, user.CanView))
					r.Get("/", employeeHandler.List)
					r.Get("/{id}", employeeHandler.Get)
					r.Get("/{id}/balances", leaveHandler.GetEmployeeBalances)
					r.Get("/{id}/attendance", attendanceHandler.ListByEmployee)
					r.Get("/{id}/attendance/stats", attendanceHandler.Stats)
				})
				r.With(middleware.RequirePermission(user.ModuleEmployees, user.CanAdd)).
					Post("/", employeeHandler.Create)
				r.With(middleware.RequirePermission(user.ModuleEmployees, user.CanEdit)).
					Put("/{id}", employeeHandler.Update)
				r.With(middleware.RequirePermission(user.ModuleEmployees, user.CanDelete)).
					Delete("/{id}", employeeHandler.Delete)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Route("/types", func(r chi.Router) {
					r.Get("/", leaveHandler.ListLeaveTypes)
					r.Get("/{id}", leaveHandler.GetLeaveType)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.ModuleLeave, user.CanEdit))
						r.Post("/", leaveHandler.CreateLeaveType)
						r.Put("/{id}", leaveHandler.UpdateLeaveType)
						r.Delete("/{id}", leaveHandler.DeleteLeaveType)
						r.Put("/{id}/accrual-rule", leaveHandler.SetAccrualRule)
						r.Delete("/{id}/accrual-rule", leaveHandler.DeleteAccrualRule)
					})
					r.Get("/{id}/accrual-rule", leaveHandler.GetAccrualRule)
				})

				r.Get("/balances", leaveHandler.GetMyBalances)

				r.Route("/requests", func(r chi.Router) {
					r.Post("/", leaveHandler.CreateRequest)
					r.Get("/my", leaveHandler.ListMyRequests)
					r.Get("/{id}", leaveHandler.GetRequest)
					r.Post("/{id}/cancel", leaveHandler.CancelRequest)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.ModuleLeave, user.CanApprove))
						r.Get("/pending", leaveHandler.ListPendingRequests)
						r.Post("/{id}/approve", leaveHandler.ApproveRequest)
						r.Post("/{id}/reject", leaveHandler.RejectRequest)
					})
				})

				r.With(middleware.AdminOnly).Post("/accrual/run", leaveHandler.RunAccrual)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/my", attendanceHandler.ListMine)

				r.With(middleware.RequirePermission(user.ModuleAttendance, user.CanEdit)).
					Post("/", attendanceHandler.Mark)
			})

			r.Route("/masters", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.ModuleMasters, user.CanView))

				r.Route("/departments", func(r chi.Router) {
					r.Get("/", masterHandler.ListDepartments)
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.ModuleMasters, user.CanEdit))
						r.Post("/", masterHandler.CreateDepartment)
						r.Put("/{id}", masterHandler.UpdateDepartment)
						r.Delete("/{id}", masterHandler.DeleteDepartment)
					})
				})

				r.Route("/designations", func(r chi.Router) {
					r.Get("/", masterHandler.ListDesignations)
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.ModuleMasters, user.CanEdit))
						r.Post("/", masterHandler.CreateDesignation)
						r.Put("/{id}", masterHandler.UpdateDesignation)
						r.Delete("/{id}", masterHandler.DeleteDesignation)
					})
				})

				r.Route("/shifts", func(r chi.Router) {
					r.Get("/", masterHandler.ListShifts)
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.ModuleMasters, user.CanEdit))
						r.Post("/", masterHandler.CreateShift)
						r.Put("/{id}", masterHandler.UpdateShift)
						r.Delete("/{id}", masterHandler.DeleteShift)
					})
				})

				r.Route("/holidays", func(r chi.Router) {
					r.Get("/", masterHandler.ListHolidays)
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.ModuleMasters, user.CanEdit))
						r.Post("/", masterHandler.CreateHoliday)
						r.Put("/{id}", masterHandler.UpdateHoliday)
						r.Delete("/{id}", masterHandler.DeleteHoliday)
					})
				})

				r.Route("/work-weeks", func(r chi.Router) {
					r.Get("/", masterHandler.ListWorkWeeks)
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.ModuleMasters, user.CanEdit))
						r.Post("/", masterHandler.CreateWorkWeek)
						r.Put("/{id}", masterHandler.UpdateWorkWeek)
						r.Delete("/{id}", masterHandler.DeleteWorkWeek)
					})
				})

				r.Route("/payroll-periods", func(r chi.Router) {
					r.Get("/", masterHandler.ListPayrollPeriods)
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.ModuleMasters, user.CanEdit))
						r.Post("/", masterHandler.CreatePayrollPeriod)
						r.Patch("/{id}/status", masterHandler.UpdatePayrollPeriodStatus)
						r.Delete("/{id}", masterHandler.DeletePayrollPeriod)
					})
				})
			})

			r.Route("/settings", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.ModuleSettings, user.CanView)).
					Get("/company", companyHandler.GetSettings)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/company", companyHandler.UpdateSettings)
					r.Get("/smtp", companyHandler.GetSMTPSettings)
					r.Put("/smtp", companyHandler.UpdateSMTPSettings)
				})
			})
		})
	})

	return r
}
