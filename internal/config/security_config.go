package config

import "time"

type SecurityConfig interface {
	GetSessionSecret() string
	GetSessionAudience() string
	GetSessionIssuerURL() string
	GetSessionLeeway() time.Duration
	GetEnableRateLimiting() bool
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetSessionSecret is the app's shared secret used to sign shop session tokens (HS256)
func (Security) GetSessionSecret() string {
	return GetEnv("SESSION_SECRET", "")
}

// GetSessionAudience is the app's API key, carried in the token's aud claim
func (Security) GetSessionAudience() string {
	return GetEnv("SESSION_AUDIENCE", "")
}

// GetSessionIssuerURL switches verification to OIDC ID tokens when set
func (Security) GetSessionIssuerURL() string {
	return GetEnv("SESSION_ISSUER_URL", "")
}

func (Security) GetSessionLeeway() time.Duration {
	return GetEnvDuration("SESSION_LEEWAY", 5*time.Second)
}

func (Security) GetEnableRateLimiting() bool {
	return GetEnv("RATE_LIMIT_ENABLED", "true") == "true"
}

func (Security) GetRateLimitRPS() float64 {
	return GetEnvFloat("RATE_LIMIT_RPS", 5)
}

func (Security) GetRateLimitBurst() int {
	return GetEnvInt("RATE_LIMIT_BURST", 10)
}
