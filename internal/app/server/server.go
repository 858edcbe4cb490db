package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrcore/internal/domain/attendance"
	"hrcore/internal/domain/directory"
	"hrcore/internal/domain/leave"
	"hrcore/internal/domain/payroll"
	"hrcore/internal/platform/config"
	"hrcore/internal/platform/db"
	"hrcore/internal/platform/jobs"
	"hrcore/internal/platform/metrics"
	attendancehandler "hrcore/internal/transport/http/handlers/attendance"
	corehandler "hrcore/internal/transport/http/handlers/core"
	leavehandler "hrcore/internal/transport/http/handlers/leave"
	payrollhandler "hrcore/internal/transport/http/handlers/payroll"
	"hrcore/internal/transport/http/middleware"
)

const maxRequestBodyBytes = 1 << 20

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	schedule, err := attendance.NewShiftSchedule(cfg.WorkTimezone, cfg.ShiftStart, cfg.ShiftGraceMinutes, cfg.HalfDayThresholdHours)
	if err != nil {
		log.Fatalf("invalid shift schedule: %v", err)
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	directorySvc := directory.NewService(directory.NewStore(pool), cfg.ReferenceCacheTTL)
	leaveSvc := leave.NewService(leave.NewStore(pool), directorySvc)
	attendanceSvc := attendance.NewService(attendance.NewStore(pool), directorySvc, schedule)
	payrollSvc := payroll.NewService(payroll.NewStore(pool), directorySvc, cfg.PayslipDir)

	jobsSvc := jobs.New(attendanceSvc, collector, cfg.AbsenceSweepInterval)
	jobsSvc.Start(ctx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.BodyLimit(maxRequestBodyBytes))
	router.Use(middleware.RateLimit(300, time.Minute))

	corehandler.NewHandler(directorySvc, pool, collector).RegisterRoutes(router)

	router.Route("/api/v1", func(r chi.Router) {
		leavehandler.NewHandler(leaveSvc).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceSvc, collector).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollSvc, collector).RegisterRoutes(r)
	})

	log.Printf("hrcore server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
