package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"zendesk-analytics/internal/analytics"
	"zendesk-analytics/internal/zendesk"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Zendesk  zendesk.Config
	Calendar analytics.Calendar

	Env      string
	HTTPAddr string

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	TrustProxyHeaders  bool

	DataPath            string
	LogDir              string
	ReportsDir          string
	ReportTTL           time.Duration
	ReportSweepSchedule string
	EnableMermaidCharts bool

	SMTP SMTPConfig
}

// SMTPConfig configures e-mail delivery of generated reports.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Enabled reports whether enough settings are present to send mail.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}

// IsLocal reports whether error details may be exposed to callers.
func (c *AppConfig) IsLocal() bool {
	return strings.EqualFold(c.Env, "local")
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve Data Paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs"))
	reportsDir := getEnv("REPORTS_DIR", filepath.Join(os.TempDir(), "zendesk-reports"))

	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", reportsDir).Msg("Failed to create reports directory")
	}

	// 4. Calendar used for date grouping
	tzName := getEnv("TIMEZONE", "America/Bogota")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tzName, err)
	}
	weekStart, err := analytics.ParseWeekday(getEnv("WEEK_START", "sunday"))
	if err != nil {
		return nil, fmt.Errorf("invalid WEEK_START: %w", err)
	}

	baseURL := getEnv("URL_ZENDESK", getEnv("ZENDESK_URL", ""))
	if baseURL == "" {
		log.Warn().Msg("URL_ZENDESK is not set; Zendesk calls will fail")
	}
	token := getEnv("ZENDESK_API_TOKEN", "")
	if token == "" {
		log.Warn().Msg("ZENDESK_API_TOKEN is not set; Zendesk calls will be rejected as unauthenticated")
	}

	cfg := &AppConfig{
		Zendesk: zendesk.Config{
			BaseURL:  baseURL,
			Token:    token,
			Timeout:  time.Duration(getEnvInt("ZENDESK_TIMEOUT_SECONDS", 30)) * time.Second,
			MaxPages: getEnvInt("ZENDESK_MAX_PAGES", 10),
		},
		Calendar: analytics.Calendar{Location: loc, WeekStart: weekStart},

		Env:      getEnv("APP_ENV", getEnv("NODE_ENV", "production")),
		HTTPAddr: getEnv("HTTP_ADDR", ":3000"),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 20),
		TrustProxyHeaders:  getEnvBool("TRUST_PROXY_HEADERS", false),

		DataPath:            dataPath,
		LogDir:              logDir,
		ReportsDir:          reportsDir,
		ReportTTL:           time.Duration(getEnvInt("REPORT_TTL_MINUTES", 60)) * time.Minute,
		ReportSweepSchedule: getEnv("REPORT_SWEEP_SCHEDULE", "@every 10m"),
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),

		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-integer setting")
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric setting")
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
