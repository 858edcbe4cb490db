package metrics

import (
	"testing"
	"time"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(500, 30*time.Millisecond)
	c.RecordSweep(3)
	c.RecordSweep(0)
	c.RecordPayrollGenerated(2)

	snap := c.Snapshot()
	if snap["requestsTotal"] != uint64(2) {
		t.Fatalf("expected 2 requests, got %v", snap["requestsTotal"])
	}
	if snap["requestErrorsTotal"] != uint64(1) {
		t.Fatalf("expected 1 error, got %v", snap["requestErrorsTotal"])
	}
	if snap["requestAvgDurationMs"] != float64(20) {
		t.Fatalf("expected avg 20ms, got %v", snap["requestAvgDurationMs"])
	}
	if snap["absenceSweepRuns"] != uint64(2) {
		t.Fatalf("expected 2 sweep runs, got %v", snap["absenceSweepRuns"])
	}
	if snap["absencesMarkedTotal"] != uint64(3) {
		t.Fatalf("expected 3 absences marked, got %v", snap["absencesMarkedTotal"])
	}
	if snap["payrollGeneratedTotal"] != uint64(2) {
		t.Fatalf("expected 2 payroll records generated, got %v", snap["payrollGeneratedTotal"])
	}
}
