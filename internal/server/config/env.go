package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays values from the environment. Variable names mirror the
// JSON keys in upper snake case.
func parseEnv(cfg *Config) {
	setIfNotEmpty(&cfg.EndpointAddr, os.Getenv("ADDRESS"))
	setIfNotEmpty(&cfg.PublicBaseURL, os.Getenv("PUBLIC_BASE_URL"))
	setIfNotEmpty(&cfg.Namespace, os.Getenv("NAMESPACE"))
	setIfNotEmpty(&cfg.RedisURL, os.Getenv("REDIS_URL"))
	setIfNotEmpty(&cfg.DatabaseDSN, os.Getenv("DATABASE_DSN"))
	setIfNotEmpty(&cfg.BadgerPath, os.Getenv("BADGER_PATH"))
	setIfNotEmpty(&cfg.AdminPassword, os.Getenv("ADMIN_PASSWORD"))
	setIfNotEmpty(&cfg.SecretKey, os.Getenv("SECRET_KEY"))
	setIfNotEmpty(&cfg.S3AccessKey, os.Getenv("S3_ACCESS_KEY"))
	setIfNotEmpty(&cfg.S3SecretKey, os.Getenv("S3_SECRET_KEY"))
	setIfNotEmpty(&cfg.S3Bucket, os.Getenv("S3_BUCKET"))
	setIfNotEmpty(&cfg.S3Region, os.Getenv("S3_REGION"))
	setIfNotEmpty(&cfg.S3BaseEndpoint, os.Getenv("S3_BASE_ENDPOINT"))

	if v := os.Getenv("LINK_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.LinkTTL = d
		}
	}
	if v := os.Getenv("ADMIN_TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AdminTokenValidity = d
		}
	}
	if v := os.Getenv("STATS_FALLBACK_COUNT"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.StatsFallbackCount = n
		}
	}
}
