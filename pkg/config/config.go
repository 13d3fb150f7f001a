package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServiceName    string
	ServiceVersion string

	ServerPort int
	LogLevel   string

	CORSOrigins []string

	DatabaseURL string

	JWTSecret []byte
	JWTTTL    time.Duration

	OTPTTL          time.Duration
	OTPResendLimit  int
	OTPVerifyLimit  int
	OTPResendWindow time.Duration

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	RedisURL string

	OTLPEndpoint string

	SeedAdminEmail    string
	SeedAdminPassword string
}

func Load() Config {
	return Config{
		ServiceName:    EnvDefault("SERVICE_NAME", "storefront"),
		ServiceVersion: EnvDefault("SERVICE_VERSION", "0.1.0"),

		ServerPort: EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		CORSOrigins: CSV(EnvDefault("CORS_ORIGINS", "*")),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),
		JWTTTL:    EnvDurationDefault("JWT_TTL", 7*24*time.Hour),

		OTPTTL:          EnvDurationDefault("OTP_TTL", 10*time.Minute),
		OTPResendLimit:  EnvIntDefault("OTP_RESEND_LIMIT", 3),
		OTPVerifyLimit:  EnvIntDefault("OTP_VERIFY_LIMIT", 5),
		OTPResendWindow: EnvDurationDefault("OTP_RESEND_WINDOW", 15*time.Minute),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "products"),

		RedisURL: os.Getenv("REDIS_URL"),

		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),

		SeedAdminEmail:    os.Getenv("SEED_ADMIN_EMAIL"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// EnvDurationDefault accepts time.ParseDuration syntax ("15m", "168h").
func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
