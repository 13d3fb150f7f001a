package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("OTP_TTL", "bogus")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("OTP_VERIFY_LIMIT", "")

	cfg := Load()

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 3, cfg.OTPResendLimit)
	assert.Equal(t, 5, cfg.OTPVerifyLimit)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Equal(t, "products", cfg.ESIndex)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("OTP_RESEND_WINDOW", "30m")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg := Load()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 30*time.Minute, cfg.OTPResendWindow)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestValidate(t *testing.T) {
	err := Config{}.Validate()
	assert.EqualError(t, err, "missing required env DATABASE_URL, JWT_SECRET")

	err = Config{DatabaseURL: "postgres://x", JWTSecret: []byte("s")}.Validate()
	assert.NoError(t, err)
}
