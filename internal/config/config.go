package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fcvenelles/club-results/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	CORSAllowedOrigins         []string
	LogLevel                   logging.Level
	CacheEnabled               bool
	CacheTTL                   time.Duration
	DOFABaseURL                string
	DOFATimeout                time.Duration
	DOFAMaxRetries             int
	DOFACircuitEnabled         bool
	DOFACircuitFailureCount    int
	DOFACircuitOpenTimeout     time.Duration
	DOFACircuitHalfOpenMaxReq  int
	DefaultClubID              string
	RefreshMaxWorkers          int
	InternalJobToken           string
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	dofaTimeout, err := time.ParseDuration(getEnv("DOFA_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DOFA_TIMEOUT: %w", err)
	}
	if dofaTimeout <= 0 {
		return Config{}, fmt.Errorf("DOFA_TIMEOUT must be > 0")
	}
	dofaMaxRetries, err := getEnvAsInt("DOFA_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse DOFA_MAX_RETRIES: %w", err)
	}
	if dofaMaxRetries < 0 {
		return Config{}, fmt.Errorf("DOFA_MAX_RETRIES must be >= 0")
	}
	dofaCircuitEnabled, err := strconv.ParseBool(getEnv("DOFA_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DOFA_CIRCUIT_ENABLED: %w", err)
	}
	dofaCircuitFailureCount, err := getEnvAsInt("DOFA_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse DOFA_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if dofaCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("DOFA_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	dofaCircuitOpenTimeout, err := time.ParseDuration(getEnv("DOFA_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DOFA_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if dofaCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("DOFA_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	dofaCircuitHalfOpenMaxReq, err := getEnvAsInt("DOFA_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse DOFA_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if dofaCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("DOFA_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	defaultClubID := strings.TrimSpace(getEnv("DEFAULT_CLUB_ID", "547517"))
	if defaultClubID == "" {
		return Config{}, fmt.Errorf("DEFAULT_CLUB_ID cannot be empty")
	}

	refreshMaxWorkers, err := getEnvAsInt("REFRESH_MAX_WORKERS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_MAX_WORKERS: %w", err)
	}
	if refreshMaxWorkers < 1 {
		return Config{}, fmt.Errorf("REFRESH_MAX_WORKERS must be >= 1")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "club-results-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:                   parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		CacheEnabled:               cacheEnabled,
		CacheTTL:                   cacheTTL,
		DOFABaseURL:                strings.TrimSpace(getEnv("DOFA_BASE_URL", "https://api-dofa.fff.fr/api")),
		DOFATimeout:                dofaTimeout,
		DOFAMaxRetries:             dofaMaxRetries,
		DOFACircuitEnabled:         dofaCircuitEnabled,
		DOFACircuitFailureCount:    dofaCircuitFailureCount,
		DOFACircuitOpenTimeout:     dofaCircuitOpenTimeout,
		DOFACircuitHalfOpenMaxReq:  dofaCircuitHalfOpenMaxReq,
		DefaultClubID:              defaultClubID,
		RefreshMaxWorkers:          refreshMaxWorkers,
		InternalJobToken:           strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if cfg.DOFABaseURL == "" {
		return Config{}, fmt.Errorf("DOFA_BASE_URL cannot be empty")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
