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

	"github.com/spf13/cobra"
	"github.com/zenithhr/hrms-backend-go/internal/config"
	appHTTP "github.com/zenithhr/hrms-backend-go/internal/handler/http"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/cron"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/database"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/email"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/jwt"
	"github.com/zenithhr/hrms-backend-go/internal/repository/postgresql"
	attendanceservice "github.com/zenithhr/hrms-backend-go/internal/service/attendance"
	authservice "github.com/zenithhr/hrms-backend-go/internal/service/auth"
	companyservice "github.com/zenithhr/hrms-backend-go/internal/service/company"
	employeeservice "github.com/zenithhr/hrms-backend-go/internal/service/employee"
	leaveservice "github.com/zenithhr/hrms-backend-go/internal/service/leave"
	masterservice "github.com/zenithhr/hrms-backend-go/internal/service/master"
)

// app holds the wired dependency graph shared by the subcommands.
type app struct {
	cfg *config.Config
	db  *database.DB

	jwtService jwt.Service

	leaveService   *leaveservice.Service
	requestService *leaveservice.RequestService
	accrualService *leaveservice.AccrualService

	authService       *authservice.Service
	employeeService   *employeeservice.Service
	attendanceService *attendanceservice.Service
	masterService     *masterservice.Service
	companyService    *companyservice.Service
}

func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	accrualRuleRepo := postgresql.NewAccrualRuleRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	workflowRepo := postgresql.NewApprovalWorkflowRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	designationRepo := postgresql.NewDesignationRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	payrollPeriodRepo := postgresql.NewPayrollPeriodRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	workWeekRepo := postgresql.NewWorkWeekRepository(db)
	settingsRepo := postgresql.NewCompanySettingsRepository(db)
	smtpRepo := postgresql.NewSMTPSettingsRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	// Outgoing mail prefers the admin-managed smtp_settings row and falls
	// back to env config when none is stored.
	emailService, err := email.NewEmailServiceWithResolver(func() config.SMTPConfig {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		stored, err := smtpRepo.GetActive(ctx)
		if err != nil {
			return cfg.SMTP
		}
		return config.SMTPConfig{
			Host:       stored.Host,
			Port:       stored.Port,
			Username:   stored.Username,
			Password:   stored.Password,
			FromName:   stored.FromName,
			FromEmail:  stored.FromEmail,
			Encryption: stored.Encryption,
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize email service: %w", err)
	}

	evaluator := leaveservice.NewEligibilityEvaluator(attendanceRepo, cfg.Accrual.AttendanceWindow)
	calculator := leaveservice.NewAccrualCalculator()
	reconciler := leaveservice.NewBalanceReconciler(leaveBalanceRepo)

	return &app{
		cfg:        cfg,
		db:         db,
		jwtService: jwtService,

		leaveService: leaveservice.NewService(leaveTypeRepo, accrualRuleRepo, leaveBalanceRepo, db),
		requestService: leaveservice.NewRequestService(
			leaveRequestRepo, workflowRepo, leaveTypeRepo, leaveBalanceRepo,
			employeeRepo, userRepo, reconciler, db, emailService,
		),
		accrualService: leaveservice.NewAccrualService(
			accrualRuleRepo, leaveBalanceRepo, leaveTypeRepo, employeeRepo,
			evaluator, calculator, reconciler, cfg.Accrual.MaxConcurrentKeys,
		),

		authService:       authservice.NewService(userRepo, jwtService),
		employeeService:   employeeservice.NewService(employeeRepo, userRepo, db),
		attendanceService: attendanceservice.NewService(attendanceRepo, employeeRepo),
		masterService:     masterservice.NewService(departmentRepo, designationRepo, shiftRepo, payrollPeriodRepo, holidayRepo, workWeekRepo),
		companyService:    companyservice.NewService(settingsRepo, smtpRepo),
	}, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server with the accrual scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.db.Close()

			scheduler := cron.NewScheduler()
			cron.RegisterAccrualJobs(scheduler, a.accrualService, a.cfg.Accrual.Interval)
			scheduler.Start()
			defer scheduler.Stop()

			router := appHTTP.NewRouter(
				a.cfg,
				a.jwtService,
				appHTTP.NewAuthHandler(a.authService, a.jwtService),
				appHTTP.NewLeaveHandler(a.leaveService, a.requestService, a.accrualService),
				appHTTP.NewEmployeeHandler(a.employeeService),
				appHTTP.NewAttendanceHandler(a.attendanceService),
				appHTTP.NewMasterHandler(a.masterService),
				appHTTP.NewCompanyHandler(a.companyService),
			)

			server := &http.Server{
				Addr:              fmt.Sprintf(":%d", a.cfg.App.Port),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				slog.Info("server listening", "addr", server.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			slog.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}

func accrueCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "accrue",
		Short: "Run one leave accrual pass for an explicit period",
		RunE: func(cmd *cobra.Command, args []string) error {
			periodStart, err := time.Parse("2006-01-02", from)
			if err != nil {
				return fmt.Errorf("invalid --from date: %w", err)
			}
			periodEnd, err := time.Parse("2006-01-02", to)
			if err != nil {
				return fmt.Errorf("invalid --to date: %w", err)
			}

			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.db.Close()

			report, err := a.accrualService.RunAccrualForPeriod(cmd.Context(), periodStart, periodEnd)
			if err != nil {
				return err
			}

			slog.Info("accrual run finished",
				"employees_credited", report.EmployeesCredited,
				"days_credited", report.DaysCredited,
				"skipped", report.Skipped,
				"errors", report.Errors,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "period end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func main() {
	root := &cobra.Command{
		Use:   "hrms",
		Short: "Zenith HRMS backend",
	}
	root.AddCommand(serveCmd(), accrueCmd())

	if err := root.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
