package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Mutation policies for the admin dashboard.
const (
	MutationPolicyOptimistic = "optimistic"
	MutationPolicyRefetch    = "refetch"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	// Backend API
	BackendBaseURL string
	BackendTimeout time.Duration

	// Redis backs the durable admin token store. Empty address keeps tokens in memory.
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Visitor cookie and CSRF
	VisitorCookieName string
	VisitorCookieTTL  time.Duration
	CookieSecure      bool
	CSRFKey           string

	CORSAllowedOrigins []string

	ChatRateLimit        float64
	ChatRateBurst        int
	ChatSessionCacheSize int
	VisitorCacheSize     int

	AdminMutationPolicy string
	Timezone            string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8000"),
		BackendTimeout: getEnvAsDuration("BACKEND_TIMEOUT", 0),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		VisitorCookieName: getEnv("VISITOR_COOKIE_NAME", "elitecuts_visitor"),
		VisitorCookieTTL:  getEnvAsDuration("VISITOR_COOKIE_TTL", 365*24*time.Hour),
		CookieSecure:      getEnvAsBool("COOKIE_SECURE", false),
		CSRFKey:           getEnv("CSRF_KEY", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),

		ChatRateLimit:        getEnvAsFloat("CHAT_RATE_LIMIT", 1),
		ChatRateBurst:        getEnvAsInt("CHAT_RATE_BURST", 5),
		ChatSessionCacheSize: getEnvAsInt("CHAT_SESSION_CACHE_SIZE", 1024),
		VisitorCacheSize:     getEnvAsInt("VISITOR_CACHE_SIZE", 4096),

		AdminMutationPolicy: getEnvAsPolicy("ADMIN_MUTATION_POLICY", MutationPolicyOptimistic),
		Timezone:            getEnv("TIMEZONE", "Local"),
	}
}

// Location resolves the configured timezone, falling back to the host zone.
func (c *Config) Location() *time.Location {
	if c == nil || c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvAsPolicy(key, defaultValue string) string {
	switch strings.ToLower(strings.TrimSpace(getEnv(key, ""))) {
	case MutationPolicyOptimistic:
		return MutationPolicyOptimistic
	case MutationPolicyRefetch:
		return MutationPolicyRefetch
	default:
		return defaultValue
	}
}
