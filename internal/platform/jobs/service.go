package jobs

import (
	"context"
	"log/slog"
	"time"

	"hrcore/internal/domain/attendance"
	"hrcore/internal/platform/metrics"
)

const JobAbsenceSweep = "absence_sweep"

// Sweeper is the attendance operation the scheduler drives.
type Sweeper interface {
	MarkAbsences(ctx context.Context, workDate string) (attendance.SweepResult, error)
	Schedule() attendance.ShiftSchedule
}

type Service struct {
	sweeper  Sweeper
	metrics  *metrics.Collector
	interval time.Duration
	queue    chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(sweeper Sweeper, collector *metrics.Collector, interval time.Duration) *Service {
	return &Service{
		sweeper:  sweeper,
		metrics:  collector,
		interval: interval,
		queue:    make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.interval > 0 {
		go s.scheduleSweeps(ctx, s.interval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			if _, err := j.Run(runCtx); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
			cancel()
		}
	}
}

// scheduleSweeps enqueues an absence sweep for the previous work date in the
// operating timezone on every tick.
func (s *Service) scheduleSweeps(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			workDate := time.Now().In(s.sweeper.Schedule().Location).
				AddDate(0, 0, -1).Format(attendance.WorkDateFormat)
			s.Enqueue(JobAbsenceSweep, func(runCtx context.Context) (any, error) {
				result, err := s.sweeper.MarkAbsences(runCtx, workDate)
				if err != nil {
					return nil, err
				}
				if s.metrics != nil {
					s.metrics.RecordSweep(result.Created)
				}
				slog.Info("absence sweep complete", "workDate", result.WorkDate, "created", result.Created)
				return result, nil
			})
		}
	}
}
