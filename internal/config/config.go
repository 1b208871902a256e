package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Username collision strategies for first OAuth login. The source's
// behavior here was undefined (the unique constraint would surface as a
// raw DB error), so it is an explicit configuration choice.
const (
	CollisionSuffix = "suffix" // append -2, -3, ... until unique
	CollisionReject = "reject" // fail the callback, create nothing
)

// Config holds the whole application configuration. Loaded once at
// startup and passed into handlers; treated as immutable afterwards.
type Config struct {
	DatabaseURL string

	GoogleClientID     string
	GoogleClientSecret string

	// BaseURL is where this server is reachable; the OAuth redirect URL
	// is derived from it. FrontendURL is where the callback sends the
	// browser after a successful login.
	BaseURL     string
	FrontendURL string

	SessionSecret string
	SessionMaxAge int
	CookieSecure  bool

	ServerPort         string
	CORSAllowedOrigins []string

	UsernameCollision string
	StatsCacheTTL     time.Duration
}

// Load reads the configuration from the environment. Only the
// collision strategy is validated here; missing Google credentials are
// tolerated so the server can come up and answer everything except
// login (the login endpoint reports the misconfiguration).
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		BaseURL:            getEnvString("BASE_URL", "http://localhost:8080"),
		FrontendURL:        getEnvString("FRONTEND_URL", "http://localhost:5173"),
		SessionSecret:      getEnvString("SESSION_SECRET", "secret_key_change_me"),
		SessionMaxAge:      getEnvInt("SESSION_MAX_AGE", 86400*7),
		ServerPort:         getEnvString("PORT", "8080"),
		UsernameCollision:  getEnvString("USERNAME_COLLISION", CollisionSuffix),
		StatsCacheTTL:      getEnvDuration("STATS_CACHE_TTL", 30*time.Second),
	}

	cfg.CookieSecure = strings.HasPrefix(cfg.BaseURL, "https://")

	origins := getEnvString("CORS_ALLOWED_ORIGINS", cfg.FrontendURL)
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	switch cfg.UsernameCollision {
	case CollisionSuffix, CollisionReject:
	default:
		return nil, fmt.Errorf("invalid USERNAME_COLLISION %q: want %q or %q",
			cfg.UsernameCollision, CollisionSuffix, CollisionReject)
	}

	return cfg, nil
}

// OAuthConfigured reports whether Google credentials are present.
func (c *Config) OAuthConfigured() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// RedirectURL is the OAuth callback URL registered with the provider.
func (c *Config) RedirectURL() string {
	return strings.TrimSuffix(c.BaseURL, "/") + "/api/auth/callback"
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
