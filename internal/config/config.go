package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	LogLevel    string
	DatabaseURL string
	RedisURL    string

	// TrustedProxies are addresses or CIDR ranges allowed to set
	// X-Forwarded-For.
	TrustedProxies []string

	TemplatesDir   string
	TemplatesWatch bool

	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	FrontendCallbackURL string
	BaseURL             string

	Google OAuthConfig

	SMTP SMTPConfig

	Quotes QuoteConfig

	ProductCacheTTL time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type QuoteConfig struct {
	NotifyEmail string
	RateLimit   int
	RateWindow  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		TrustedProxies: getList("TRUSTED_PROXIES"),

		TemplatesDir:   getEnv("TEMPLATES_DIR", "./templates"),
		TemplatesWatch: getBool("TEMPLATES_WATCH", false),

		JWTSecret:        getEnvOrPanic("JWT_SECRET"),
		JWTAccessExpiry:  getDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		JWTRefreshExpiry: getDuration("JWT_REFRESH_EXPIRY", 168*time.Hour),

		FrontendCallbackURL: getEnv("FRONTEND_CALLBACK_URL", "http://localhost:3000/auth/callback"),
		BaseURL:             getEnv("BASE_URL", "http://localhost:8080"),

		Google: OAuthConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		},

		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
		},

		Quotes: QuoteConfig{
			NotifyEmail: getEnv("QUOTE_NOTIFY_EMAIL", ""),
			RateLimit:   getInt("QUOTE_RATE_LIMIT", 5),
			RateWindow:  getDuration("QUOTE_RATE_WINDOW", time.Hour),
		},

		ProductCacheTTL: getCacheTTL("PRODUCT_CACHE_TTL", 10*time.Minute),
	}, nil
}

// LoadCLI loads the subset of configuration the command line tools need. It
// does not require JWT_SECRET.
func LoadCLI() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:          getEnv("ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		TemplatesDir: getEnv("TEMPLATES_DIR", "./templates"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// getCacheTTL is getDuration that also accepts zero, which turns the cache off.
func getCacheTTL(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

func getList(key string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}
