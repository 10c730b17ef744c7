package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s1")
	t.Setenv("JWT_REFRESH_SECRET", "s2")

	LoadEnv()

	require.Equal(t, "s1", JWTSecret)
	require.Equal(t, "s2", JWTRefreshSecret)
	require.Equal(t, "HS256", JWTAlgorithm)
	require.Equal(t, 30*time.Minute, AccessTokenExpiry)
	require.Equal(t, 7*24*time.Hour, RefreshTokenExpiry)
	require.InDelta(t, 0.05, LateFeePercentage, 1e-9)
	require.Equal(t, 7, GracePeriodDays)
	require.Equal(t, 2555, AuditLogRetentionDays)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s1")
	t.Setenv("JWT_REFRESH_SECRET", "s2")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "15")
	t.Setenv("LATE_FEE_PERCENTAGE", "0.1")
	t.Setenv("GRACE_PERIOD_DAYS", "3")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	LoadEnv()

	require.Equal(t, 15*time.Minute, AccessTokenExpiry)
	require.InDelta(t, 0.1, LateFeePercentage, 1e-9)
	require.Equal(t, 3, GracePeriodDays)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, CORSOrigins)
}

func TestGetEnvIntRejectsGarbage(t *testing.T) {
	t.Setenv("GRACE_PERIOD_DAYS", "soon")
	require.Equal(t, 7, GetEnvInt("GRACE_PERIOD_DAYS", 7))

	t.Setenv("GRACE_PERIOD_DAYS", " 14 ")
	require.Equal(t, 14, GetEnvInt("GRACE_PERIOD_DAYS", 7))
}

func TestGetEnvFloatRejectsGarbage(t *testing.T) {
	t.Setenv("LATE_FEE_PERCENTAGE", "five percent")
	require.InDelta(t, 0.05, GetEnvFloat("LATE_FEE_PERCENTAGE", 0.05), 1e-9)
}

func TestSplitCSV(t *testing.T) {
	require.Nil(t, splitCSV(""))
	require.Nil(t, splitCSV("  "))
	require.Equal(t, []string{"a", "b"}, splitCSV("a, b,"))
}
