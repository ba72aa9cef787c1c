package config

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the loaded configuration
type Config struct {
	Port        string
	Environment string

	// APIBaseURL is the root of the commerce API, without the /api/v1 prefix.
	APIBaseURL     string
	RequestTimeout time.Duration

	// PublicURL is where the storefront is reachable; payment sessions return here.
	PublicURL string

	SessionSecret     string
	SessionSecretName string
	SessionMaxAge     time.Duration
	SecureCookies     bool

	RedisURL        string
	VisitorTTL      time.Duration
	CatalogCacheTTL time.Duration

	CartDebounce time.Duration
	PageSize     int
	Currency     string

	AllowedOrigins []string
	// ImageHosts may serve product images; defaults to the API host.
	ImageHosts []string

	CloudWatchEnabled bool
}

// Load reads the .env file (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	env := getEnv("ENVIRONMENT", "development")
	apiBaseURL := strings.TrimSuffix(getEnv("API_BASE_URL", "https://ecommerce.routemisr.com"), "/")

	return Config{
		Port:        getEnv("PORT", "3000"),
		Environment: env,

		APIBaseURL:     apiBaseURL,
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),

		PublicURL: strings.TrimSuffix(getEnv("PUBLIC_URL", "http://localhost:3000"), "/"),

		SessionSecret:     os.Getenv("SESSION_SECRET"),
		SessionSecretName: os.Getenv("SESSION_SECRET_NAME"),
		SessionMaxAge:     getDuration("SESSION_MAX_AGE", 30*24*time.Hour),
		SecureCookies:     getBool("SECURE_COOKIES", env == "production"),

		RedisURL:        os.Getenv("REDIS_URL"),
		VisitorTTL:      getDuration("VISITOR_TTL", 30*24*time.Hour),
		CatalogCacheTTL: getDuration("CATALOG_CACHE_TTL", 5*time.Minute),

		CartDebounce: getDuration("CART_DEBOUNCE", 500*time.Millisecond),
		PageSize:     getInt("PAGE_SIZE", 10),
		Currency:     getEnv("CURRENCY", "EGP"),

		AllowedOrigins: getList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		ImageHosts:     getList("IMAGE_HOSTS", hostOf(apiBaseURL)),

		CloudWatchEnabled: getBool("CLOUDWATCH_ENABLED", false),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return b
}

func getList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(strings.TrimSuffix(v, "/")); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func hostOf(rawURL string) []string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil
	}
	return []string{u.Host}
}
