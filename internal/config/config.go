package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"bouncearound.com/daycare/pkg/datetime"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string

	DBHost    string
	DBUser    string
	DBPass    string
	DBName    string
	DBPort    string
	DBSSLMode string

	RedisURL string

	JWTSecret string
	JWTTTL    time.Duration

	LoginRateLimit         int
	LoginRateWindow        time.Duration
	ReportGenerateCooldown time.Duration

	MeiliSearchHost string
	MeiliMasterKey  string

	CloudinaryURL          string
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string

	MaxUploadBytes        int64
	AllowedFileExtensions []string

	GeminiAPIKey string
	GeminiModel  string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	ComplianceScanCron string

	SeedAdminEmail    string
	SeedAdminPassword string

	Attendance AttendancePolicy
}

// AttendancePolicy holds the pickup rules handed to the attendance service.
type AttendancePolicy struct {
	Location           *time.Location
	StandardPickupTime datetime.Clock
	GraceMinutes       int
	FeePerMinute       float64
}

func DefaultAttendancePolicy() AttendancePolicy {
	return AttendancePolicy{
		Location:           time.UTC,
		StandardPickupTime: datetime.NewClock(18, 0, 0),
		GraceMinutes:       15,
		FeePerMinute:       1.00,
	}
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		DBHost:    getEnv("DB_HOST", "localhost"),
		DBUser:    getEnv("DB_USER", "postgres"),
		DBPass:    os.Getenv("DB_PASS"),
		DBName:    getEnv("DB_NAME", "daycare"),
		DBPort:    getEnv("DB_PORT", "5432"),
		DBSSLMode: getEnv("DB_SSLMODE", "disable"),

		RedisURL: os.Getenv("REDIS_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		CloudinaryURL:          os.Getenv("CLOUDINARY_URL"),
		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:       os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "daycare"),

		AllowedFileExtensions: splitList(strings.ToLower(getEnv("ALLOWED_FILE_EXTENSIONS", ".jpg,.jpeg,.png,.pdf,.heic"))),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: getEnv("SMTP_FROM", "no-reply@bouncearound.com"),

		ComplianceScanCron: getEnv("COMPLIANCE_SCAN_CRON", "0 6 * * *"),

		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@bouncearound.com"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}

	if cfg.JWTSecret == "" {
		if cfg.AppEnv != "development" {
			return nil, fmt.Errorf("JWT_SECRET must be set outside development")
		}
		cfg.JWTSecret = "change-me"
	}

	var err error
	ttlMinutes, err := getInt("JWT_TTL_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute

	if cfg.LoginRateLimit, err = getInt("LOGIN_RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.LoginRateWindow, err = getDuration("LOGIN_RATE_WINDOW", "15m"); err != nil {
		return nil, err
	}
	if cfg.ReportGenerateCooldown, err = getDuration("REPORT_GENERATE_COOLDOWN", "1m"); err != nil {
		return nil, err
	}

	maxUploadMB, err := getInt("MAX_UPLOAD_SIZE_MB", 10)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(maxUploadMB) << 20

	if cfg.SMTPPort, err = getInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}

	cfg.Attendance, err = loadAttendancePolicy()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadAttendancePolicy() (AttendancePolicy, error) {
	policy := DefaultAttendancePolicy()

	loc, err := time.LoadLocation(getEnv("FACILITY_TIMEZONE", "America/Chicago"))
	if err != nil {
		return policy, fmt.Errorf("invalid FACILITY_TIMEZONE: %w", err)
	}
	policy.Location = loc

	pickup, err := datetime.ParseClock(getEnv("STANDARD_PICKUP_TIME", "18:00"))
	if err != nil {
		return policy, fmt.Errorf("invalid STANDARD_PICKUP_TIME: %w", err)
	}
	policy.StandardPickupTime = pickup

	if policy.GraceMinutes, err = getInt("LATE_PICKUP_GRACE_MINUTES", 15); err != nil {
		return policy, err
	}
	if policy.GraceMinutes < 0 {
		return policy, fmt.Errorf("invalid LATE_PICKUP_GRACE_MINUTES: must not be negative")
	}

	fee := getEnv("LATE_PICKUP_FEE_PER_MINUTE", "1.00")
	if policy.FeePerMinute, err = strconv.ParseFloat(fee, 64); err != nil {
		return policy, fmt.Errorf("invalid LATE_PICKUP_FEE_PER_MINUTE: %w", err)
	}

	return policy, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
