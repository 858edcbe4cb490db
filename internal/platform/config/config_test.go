package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.ShiftStart != "08:00" {
		t.Fatalf("expected default shift start 08:00, got %q", cfg.ShiftStart)
	}
	if cfg.ShiftGraceMinutes != 15 {
		t.Fatalf("expected default grace 15, got %d", cfg.ShiftGraceMinutes)
	}
	if cfg.HalfDayThresholdHours != 4 {
		t.Fatalf("expected default half-day threshold 4, got %v", cfg.HalfDayThresholdHours)
	}
	if cfg.DBMaxConns != 10 || cfg.DBMinConns != 2 {
		t.Fatalf("expected default pool sizing 10/2, got %d/%d", cfg.DBMaxConns, cfg.DBMinConns)
	}
}

func TestValidateRejectsBadPoolSizing(t *testing.T) {
	cfg := Load()
	cfg.DatabaseURL = "postgres://localhost/hrcore"

	cfg.DBMaxConns = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero DB_MAX_CONNS")
	}

	cfg.DBMaxConns = 2
	cfg.DBMinConns = 5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for DB_MIN_CONNS above DB_MAX_CONNS")
	}
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := Load()
	cfg.DatabaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestValidateRejectsBadTimezone(t *testing.T) {
	cfg := Load()
	cfg.DatabaseURL = "postgres://localhost/hrcore"
	cfg.WorkTimezone = "Mars/Olympus"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid timezone")
	}
}

func TestParseShiftStart(t *testing.T) {
	hour, minute, err := ParseShiftStart("09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hour != 9 || minute != 30 {
		t.Fatalf("expected 9:30, got %d:%d", hour, minute)
	}

	if _, _, err := ParseShiftStart("25:00"); err == nil {
		t.Fatal("expected error for invalid shift start")
	}
}
