package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName       = "NanoTipBot"
	defaultAppEnv        = "development"
	defaultPort          = "8080"
	defaultLogLevel      = "info"
	defaultSQLitePath    = "data/accounts.db"
	defaultNodeURL       = "http://127.0.0.1:7076"
	defaultNodeTimeout   = 5 * time.Second
	defaultBotMention    = "@Nano Tip Bot"
	defaultQRTemplate    = "https://api.qrserver.com/v1/create-qr-code/?data=%s"
	defaultTokenURL      = "https://login.microsoftonline.com/botframework.com/oauth2/v2.0/token"
	defaultTokenScope    = "https://api.botframework.com/.default"
	defaultTickerURL     = "https://api.coinmarketcap.com/v2/ticker/1567/?convert=EUR"
	defaultPriceTTL      = time.Minute
	defaultShutdownDelay = 10 * time.Second

	nodeTimeoutEnvVar      = "NODE_TIMEOUT"
	priceTTLEnvVar         = "PRICE_CACHE_TTL"
	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName  string
	AppEnv   string
	Port     string
	LogLevel string

	// Account store. SQLitePath is the default backend; DATABASE_URL
	// switches the store to Postgres when set. REDIS_URL is optional and
	// only backs the price cache.
	SQLitePath  string
	DatabaseURL string
	RedisURL    string

	NodeURL     string
	NodeTimeout time.Duration

	BotMention     string
	TipEmailDomain string
	QRTemplate     string

	TeamsClientID     string
	TeamsClientSecret string
	TeamsTokenURL     string
	TeamsTokenScope   string

	TickerURL     string
	PriceCacheTTL time.Duration

	ShutdownPeriod time.Duration
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:  getEnv("APP_NAME", defaultAppName),
		AppEnv:   getEnv("APP_ENV", defaultAppEnv),
		Port:     getEnv("PORT", defaultPort),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),

		SQLitePath:  getEnv("SQLITE_PATH", defaultSQLitePath),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		NodeURL:     getEnv("NODE_URL", defaultNodeURL),
		NodeTimeout: defaultNodeTimeout,

		BotMention:     getEnv("BOT_MENTION", defaultBotMention),
		TipEmailDomain: os.Getenv("TIP_EMAIL_DOMAIN"),
		QRTemplate:     getEnv("QR_TEMPLATE", defaultQRTemplate),

		TeamsClientID:     os.Getenv("TEAMS_CLIENT_ID"),
		TeamsClientSecret: os.Getenv("TEAMS_CLIENT_SECRET"),
		TeamsTokenURL:     getEnv("TEAMS_TOKEN_URL", defaultTokenURL),
		TeamsTokenScope:   getEnv("TEAMS_TOKEN_SCOPE", defaultTokenScope),

		TickerURL:     getEnv("TICKER_URL", defaultTickerURL),
		PriceCacheTTL: defaultPriceTTL,

		ShutdownPeriod: defaultShutdownDelay,
	}

	if v := os.Getenv(nodeTimeoutEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", nodeTimeoutEnvVar, err)
		}
		cfg.NodeTimeout = d
	}

	if v := os.Getenv(priceTTLEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", priceTTLEnvVar, err)
		}
		cfg.PriceCacheTTL = d
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if cfg.DatabaseURL == "" && cfg.SQLitePath == "" {
		return Config{}, fmt.Errorf("SQLITE_PATH or DATABASE_URL must be set")
	}

	if cfg.NodeURL == "" {
		return Config{}, fmt.Errorf("NODE_URL must be set")
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
