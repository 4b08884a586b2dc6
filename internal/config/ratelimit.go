package config

import (
	"time"

	"github.com/rs/zerolog/log"
)

type RateLimitConfig struct {
	Enabled bool
	MaxHits int
	Window  time.Duration
}

func GetRateLimitConfig(key string) RateLimitConfig {
	enabled := GetEnvOrDefault("RATELIMIT_ENABLED", "false") == "true"

	configs := map[string]RateLimitConfig{
		"global": {
			Enabled: enabled,
			MaxHits: parseEnvInt("RATELIMIT_GLOBAL", 1000), // 1000 requests per minute globally
			Window:  time.Minute,
		},
		"chat_stream": {
			Enabled: enabled,
			MaxHits: parseEnvInt("RATELIMIT_CHAT_STREAM", 60), // 60 requests per minute
			Window:  time.Minute,
		},
		"chat_analyze": {
			Enabled: enabled,
			MaxHits: parseEnvInt("RATELIMIT_CHAT_ANALYZE", 30), // 30 requests per minute
			Window:  time.Minute,
		},
		"reports": {
			Enabled: enabled,
			MaxHits: parseEnvInt("RATELIMIT_REPORTS", 10), // 10 requests per minute
			Window:  time.Minute,
		},
		"records_write": {
			Enabled: enabled,
			MaxHits: parseEnvInt("RATELIMIT_RECORDS_WRITE", 120), // 120 requests per minute
			Window:  time.Minute,
		},
	}

	if config, exists := configs[key]; exists {
		return config
	}

	log.Warn().Str("key", key).Msg("No rate limit config found for key")
	return RateLimitConfig{Enabled: false}
}
