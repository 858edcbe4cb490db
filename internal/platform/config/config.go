package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr                  string
	DatabaseURL           string
	DBMaxConns            int32
	DBMinConns            int32
	Environment           string
	RunMigrations         bool
	MigrationsDir         string
	WorkTimezone          string
	ShiftStart            string
	ShiftGraceMinutes     int
	HalfDayThresholdHours float64
	AbsenceSweepInterval  time.Duration
	ReferenceCacheTTL     time.Duration
	PayslipDir            string
	MetricsEnabled        bool
}

func Load() Config {
	return Config{
		Addr:                  getEnv("APP_ADDR", ":8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		DBMaxConns:            int32(getEnvInt("DB_MAX_CONNS", 10)),
		DBMinConns:            int32(getEnvInt("DB_MIN_CONNS", 2)),
		Environment:           getEnv("APP_ENV", "development"),
		RunMigrations:         getEnvBool("RUN_MIGRATIONS", true),
		MigrationsDir:         getEnv("MIGRATIONS_DIR", "migrations"),
		WorkTimezone:          getEnv("WORK_TIMEZONE", "UTC"),
		ShiftStart:            getEnv("SHIFT_START", "08:00"),
		ShiftGraceMinutes:     getEnvInt("SHIFT_GRACE_MINUTES", 15),
		HalfDayThresholdHours: getEnvFloat("HALF_DAY_THRESHOLD_HOURS", 4),
		AbsenceSweepInterval:  getEnvDuration("ABSENCE_SWEEP_INTERVAL", 24*time.Hour),
		ReferenceCacheTTL:     getEnvDuration("REFERENCE_CACHE_TTL", 5*time.Minute),
		PayslipDir:            getEnv("PAYSLIP_DIR", "storage/payslips"),
		MetricsEnabled:        getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.DBMaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS")
	}
	if _, err := time.LoadLocation(c.WorkTimezone); err != nil {
		return fmt.Errorf("WORK_TIMEZONE is not a valid IANA timezone: %w", err)
	}
	if _, _, err := ParseShiftStart(c.ShiftStart); err != nil {
		return err
	}
	if c.ShiftGraceMinutes < 0 {
		return fmt.Errorf("SHIFT_GRACE_MINUTES must not be negative")
	}
	if c.HalfDayThresholdHours <= 0 {
		return fmt.Errorf("HALF_DAY_THRESHOLD_HOURS must be positive")
	}
	return nil
}

// ParseShiftStart parses a HH:MM wall-clock value.
func ParseShiftStart(value string) (hour, minute int, err error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, 0, fmt.Errorf("SHIFT_START must be in HH:MM format: %w", err)
	}
	return parsed.Hour(), parsed.Minute(), nil
}
