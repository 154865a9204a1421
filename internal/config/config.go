package config

import "os"

// Config collects the environment-driven settings for the service. An empty
// DatabaseURL selects the in-memory stores, which is what the demo deployment
// and the test suite run against.
type Config struct {
	ServiceName string
	Env         string
	Port        string
	DatabaseURL string
	JWTSecret   string

	// TrustUserIDHeader enables the explicit X-User-Id identity path. It
	// bypasses credential verification entirely, so it must stay off in
	// anything that is not an explicitly trusted environment.
	TrustUserIDHeader bool
}

func Load() Config {
	env := getenvDefault("ENV", "dev")
	return Config{
		ServiceName:       getenvDefault("SERVICE_NAME", "ecoliving-backend"),
		Env:               env,
		Port:              getenvDefault("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         getenvDefault("JWT_SECRET", "dev-only-secret"),
		TrustUserIDHeader: getenvDefault("TRUST_USER_ID_HEADER", defaultTrust(env)) == "true",
	}
}

func defaultTrust(env string) string {
	if env == "dev" || env == "demo" {
		return "true"
	}
	return "false"
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
