package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	S3        S3Config
	HTTP      HTTPConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogLevel    string
}

func (c AppConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development") || strings.EqualFold(c.Environment, "dev")
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type S3Config struct {
	Region        string
	Bucket        string
	BaseEndpoint  string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	UsePathStyle  bool
}

type HTTPConfig struct {
	CORSOrigins         []string
	AuthRateLimitPerMin int
	CookieSecure        bool
}

type TelemetryConfig struct {
	OTLPEndpoint string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads the process environment, after merging a .env file from the
// working directory when one exists.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	dur := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	num := func(key string, def int) int {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			invalid = append(invalid, key)
			return def
		}
		return n
	}
	flag := func(key string, def bool) bool {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return b
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		LogLevel:    opt("LOG_LEVEL", "info"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST", "localhost"),
		DBPort:                opt("DB_PORT", "5432"),
		DBName:                opt("DB_NAME", "campus_jobs"),
		DBUser:                opt("DB_USER", "postgres"),
		DBPassword:            opt("DB_PASSWORD", ""),
		DBSSLMode:             opt("DB_SSL_MODE", "disable"),
		ConnectTimeout:        dur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(num("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(num("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   dur("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   dur("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: dur("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  dur("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: dur("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		DB:       num("REDIS_DB", 0),
		TTL:      dur("REDIS_TTL", 10*time.Minute),
	}

	cfg.S3 = S3Config{
		Region:        opt("S3_REGION", "us-east-1"),
		Bucket:        opt("S3_BUCKET", "resumes"),
		BaseEndpoint:  opt("S3_BASE_ENDPOINT", ""),
		AccessKey:     opt("S3_ACCESS_KEY", ""),
		SecretKey:     opt("S3_SECRET_KEY", ""),
		PublicBaseURL: strings.TrimRight(opt("S3_PUBLIC_BASE_URL", ""), "/"),
		UsePathStyle:  flag("S3_USE_PATH_STYLE", true),
	}

	cfg.HTTP = HTTPConfig{
		CORSOrigins:         splitList(opt("CORS_ORIGINS", "*")),
		AuthRateLimitPerMin: num("RATE_LIMIT_AUTH_PER_MIN", 10),
		CookieSecure:        flag("COOKIE_SECURE", false),
	}

	cfg.Telemetry = TelemetryConfig{
		OTLPEndpoint: opt("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
