package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string

	// Upstream feed
	FeedURL          string
	FeedPingInterval time.Duration

	// Aggregation engine
	SLThreshold      time.Duration
	RetentionHorizon time.Duration
	PruneThreshold   int
	WindowLabels     []string        // e.g. ["1h","2h","4h"]
	Windows          []time.Duration // parsed, index-aligned with WindowLabels

	// Day boundary. Fixed time zone so rollover never depends on the host
	// locale; defaults to UTC.
	DayBoundaryTZ string
	Location      *time.Location

	// Dashboard push
	BroadcastInterval time.Duration

	// Auth for the dashboard socket ("none" or "jwt")
	AuthMode string
	JWKSURL  string

	// Dashboard WebSocket timeouts
	WSReadTimeout  time.Duration
	WSWriteTimeout time.Duration
	PingPeriod     time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		FeedURL:        getEnv("FEED_URL", ""),
		DayBoundaryTZ:  getEnv("DAY_BOUNDARY_TZ", "UTC"),
		AuthMode:       getEnv("AUTH_MODE", "none"),
		JWKSURL:        getEnv("JWKS_URL", ""),
	}

	pingSecs, err := strconv.Atoi(getEnv("FEED_PING_INTERVAL", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid FEED_PING_INTERVAL: %w", err)
	}
	config.FeedPingInterval = time.Duration(pingSecs) * time.Second

	slSecs, err := strconv.Atoi(getEnv("SL_THRESHOLD_SECS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid SL_THRESHOLD_SECS: %w", err)
	}
	config.SLThreshold = time.Duration(slSecs) * time.Second

	config.RetentionHorizon, err = time.ParseDuration(getEnv("RETENTION_HORIZON", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RETENTION_HORIZON: %w", err)
	}

	config.PruneThreshold, err = strconv.Atoi(getEnv("EVENT_LOG_PRUNE_THRESHOLD", "4096"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_LOG_PRUNE_THRESHOLD: %w", err)
	}

	for _, raw := range strings.Split(getEnv("STAT_WINDOWS", "1h,2h,4h"), ",") {
		label := strings.TrimSpace(raw)
		d, err := time.ParseDuration(label)
		if err != nil {
			return nil, fmt.Errorf("invalid STAT_WINDOWS entry %q: %w", label, err)
		}
		if d > config.RetentionHorizon {
			return nil, fmt.Errorf("window %q exceeds retention horizon %s", label, config.RetentionHorizon)
		}
		config.WindowLabels = append(config.WindowLabels, label)
		config.Windows = append(config.Windows, d)
	}

	config.Location, err = time.LoadLocation(config.DayBoundaryTZ)
	if err != nil {
		return nil, fmt.Errorf("invalid DAY_BOUNDARY_TZ: %w", err)
	}

	config.BroadcastInterval, err = time.ParseDuration(getEnv("BROADCAST_INTERVAL", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BROADCAST_INTERVAL: %w", err)
	}

	// Parse WebSocket timeouts
	wsReadTimeout, err := strconv.Atoi(getEnv("WS_READ_TIMEOUT", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid WS_READ_TIMEOUT: %w", err)
	}
	config.WSReadTimeout = time.Duration(wsReadTimeout) * time.Second

	wsWriteTimeout, err := strconv.Atoi(getEnv("WS_WRITE_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid WS_WRITE_TIMEOUT: %w", err)
	}
	config.WSWriteTimeout = time.Duration(wsWriteTimeout) * time.Second

	// Calculate WebSocket constants
	config.PongWait = config.WSReadTimeout
	config.PingPeriod = (config.PongWait * 9) / 10 // Must be less than pongWait
	config.WriteWait = config.WSWriteTimeout
	config.MaxMessageSize = 512

	// Trim spaces from allowed origins
	for i, origin := range config.AllowedOrigins {
		config.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
