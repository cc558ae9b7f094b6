package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
// Values are read once at startup and never change afterwards.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Weather API configuration.
	WeatherAPIKey      string
	WeatherBaseURL     string
	WeatherIconBaseURL string
	WeatherTimeout     time.Duration

	// Search behaviour.
	SearchDebounce     time.Duration
	WeatherCountryCode string // appended as ",<code>" to queries when set

	// Recent searches sinks.
	RecentSearchesLimit int
	RedisURL            string
	RedisRecentKey      string
	KafkaBrokers        []string
	KafkaRecentTopic    string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	weatherTimeout, err := parsePositiveDuration("WEATHER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	debounce, err := parsePositiveDuration("SEARCH_DEBOUNCE", "500ms")
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		WeatherAPIKey:      os.Getenv("WEATHER_API_KEY"),
		WeatherBaseURL:     sharedcfg.EnvOrDefault("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/weather"),
		WeatherIconBaseURL: strings.TrimSuffix(sharedcfg.EnvOrDefault("WEATHER_ICON_BASE_URL", "https://openweathermap.org/img/w"), "/"),
		WeatherTimeout:     weatherTimeout,

		SearchDebounce:     debounce,
		WeatherCountryCode: strings.ToLower(strings.TrimSpace(os.Getenv("WEATHER_COUNTRY_CODE"))),

		RecentSearchesLimit: parseRecentSearchesLimit(),
		RedisURL:            os.Getenv("REDIS_URL"),
		RedisRecentKey:      sharedcfg.EnvOrDefault("REDIS_RECENT_KEY", "weather-search:recent"),
		KafkaBrokers:        brokers,
		KafkaRecentTopic:    sharedcfg.EnvOrDefault("KAFKA_RECENT_TOPIC", "recent-searches"),
	}

	if cfg.WeatherAPIKey == "" {
		return nil, errors.New("WEATHER_API_KEY is required")
	}
	if cfg.WeatherBaseURL == "" {
		return nil, errors.New("WEATHER_BASE_URL must not be empty")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaRecentTopic == "" {
		return nil, errors.New("KAFKA_RECENT_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseRecentSearchesLimit() int {
	if s := os.Getenv("RECENT_SEARCHES_LIMIT"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 10
}
