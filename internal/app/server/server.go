package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"payrollpro/internal/domain/advances"
	"payrollpro/internal/domain/auth"
	"payrollpro/internal/domain/backup"
	"payrollpro/internal/domain/employees"
	"payrollpro/internal/domain/payroll"
	"payrollpro/internal/domain/receipts"
	"payrollpro/internal/domain/reports"
	"payrollpro/internal/domain/settings"
	"payrollpro/internal/platform/config"
	"payrollpro/internal/platform/crypto"
	"payrollpro/internal/platform/db"
	"payrollpro/internal/platform/metrics"
	"payrollpro/internal/transport/http/api"
	advancehandler "payrollpro/internal/transport/http/handlers/advances"
	authhandler "payrollpro/internal/transport/http/handlers/auth"
	backuphandler "payrollpro/internal/transport/http/handlers/backup"
	employeehandler "payrollpro/internal/transport/http/handlers/employees"
	receipthandler "payrollpro/internal/transport/http/handlers/receipts"
	reporthandler "payrollpro/internal/transport/http/handlers/reports"
	salaryhandler "payrollpro/internal/transport/http/handlers/salaries"
	settingshandler "payrollpro/internal/transport/http/handlers/settings"
	"payrollpro/internal/transport/http/middleware"
)

type App struct {
	Config    config.Config
	DB        *gorm.DB
	Router    http.Handler
	Scheduler *backup.Scheduler
}

// New wires every service and route. The caller owns starting the backup
// scheduler and the listener.
func New(cfg config.Config) (*App, error) {
	database, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(database,
		&employees.Employee{},
		&employees.Department{},
		&employees.Position{},
		&advances.Advance{},
		&payroll.SalaryPayment{},
		&receipts.Receipt{},
		&settings.Settings{},
	); err != nil {
		return nil, err
	}

	settingsService, err := settings.NewService(database)
	if err != nil {
		return nil, err
	}

	employeeStore := employees.NewStore(database)
	employeeService := employees.NewService(employeeStore)
	if err := seedLookups(context.Background(), employeeService, settingsService.Get()); err != nil {
		return nil, err
	}

	advanceStore := advances.NewStore(database)
	advanceService := advances.NewService(advanceStore, employeeStore)

	paymentStore := payroll.NewStore(database)
	paymentService := payroll.NewService(paymentStore, employeeStore, advanceStore)

	receiptStore := receipts.NewStore(database)
	receiptService := receipts.NewService(receiptStore, employeeStore, settingsService)

	reportService := reports.NewService(employeeStore, advanceStore, paymentStore)

	authService, err := auth.NewService(cfg.AdminPassword, cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	cryptoService, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		return nil, err
	}

	backupService := backup.NewService(database, settingsService)
	scheduler, err := backup.NewScheduler(backupService, cryptoService, slog.Default(), cfg.BackupDir(), cfg.BackupMaxSlots, cfg.BackupInterval)
	if err != nil {
		return nil, err
	}
	reminder := backup.NewReminder(settingsService, cfg.BackupReminderDays)

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.LoginRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		sqlDB, err := database.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authService).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(authService))

			employeehandler.NewHandler(employeeService).RegisterRoutes(r)
			advancehandler.NewHandler(advanceService).RegisterRoutes(r)
			salaryhandler.NewHandler(paymentService).RegisterRoutes(r)
			receipthandler.NewHandler(receiptService, paymentService, advanceService).RegisterRoutes(r)
			settingshandler.NewHandler(settingsService).RegisterRoutes(r)
			backuphandler.NewHandler(backupService, scheduler, reminder).RegisterRoutes(r)
			reporthandler.NewHandler(reportService).RegisterRoutes(r)

			if collector != nil {
				r.Get("/admin/metrics", func(w http.ResponseWriter, req *http.Request) {
					api.Success(w, collector.Snapshot(), middleware.GetRequestID(req.Context()))
				})
			}
		})
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return &App{Config: cfg, DB: database, Router: router, Scheduler: scheduler}, nil
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := New(cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.BackupEnabled {
		go app.Scheduler.Start(ctx)
	}

	log.Printf("payroll server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// seedLookups makes sure every department and position named in settings
// exists as a selectable record.
func seedLookups(ctx context.Context, service *employees.Service, current settings.Settings) error {
	for _, name := range current.Departments {
		if _, err := service.EnsureDepartment(ctx, name); err != nil {
			return err
		}
	}
	for _, name := range current.Positions {
		if _, err := service.EnsurePosition(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
