package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests    uint64
	errorRequests    uint64
	totalDurationMs  uint64
	absencesMarked   uint64
	payrollGenerated uint64
	sweepRuns        uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordSweep(created int) {
	atomic.AddUint64(&c.sweepRuns, 1)
	if created > 0 {
		atomic.AddUint64(&c.absencesMarked, uint64(created))
	}
}

func (c *Collector) RecordPayrollGenerated(created int) {
	if created > 0 {
		atomic.AddUint64(&c.payrollGenerated, uint64(created))
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":         total,
		"requestErrorsTotal":    errs,
		"requestAvgDurationMs":  avg,
		"absenceSweepRuns":      atomic.LoadUint64(&c.sweepRuns),
		"absencesMarkedTotal":   atomic.LoadUint64(&c.absencesMarked),
		"payrollGeneratedTotal": atomic.LoadUint64(&c.payrollGenerated),
	}
}
