package config

import (
	"encoding/json"
	"os"
	"strings"
	"time"
)

// jsonConfig is the DTO for the optional JSON config file. Duration fields
// are strings in time.ParseDuration syntax ("720h").
type jsonConfig struct {
	EndpointAddr       string `json:"endpoint_addr"`
	PublicBaseURL      string `json:"public_base_url"`
	Namespace          string `json:"namespace"`
	RedisURL           string `json:"redis_url"`
	DatabaseDSN        string `json:"database_dsn"`
	BadgerPath         string `json:"badger_path"`
	LinkTTL            string `json:"link_ttl"`
	StatsFallbackCount *int64 `json:"stats_fallback_count"`
	AdminPassword      string `json:"admin_password"`
	SecretKey          string `json:"secret_key"`
	AdminTokenValidity string `json:"admin_token_validity"`
	S3AccessKey        string `json:"s3_access_key"`
	S3SecretKey        string `json:"s3_secret_key"`
	S3Bucket           string `json:"s3_bucket"`
	S3Region           string `json:"s3_region"`
	S3BaseEndpoint     string `json:"s3_base_endpoint"`
}

// configFilePath extracts the value of -c/-config from args without
// disturbing the other flags, which are parsed later.
func configFilePath(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-c" || arg == "-config" || arg == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "-c="):
			return strings.TrimPrefix(arg, "-c=")
		case strings.HasPrefix(arg, "-config="):
			return strings.TrimPrefix(arg, "-config=")
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}

// parseJSON overlays values from the JSON file named by -c/-config, if any.
// An unreadable or invalid file is a startup error worth failing loudly on.
func parseJSON(cfg *Config, args []string) {
	path := configFilePath(args)
	if path == "" {
		return
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(raw, &jc); err != nil {
		panic(err)
	}

	setIfNotEmpty(&cfg.EndpointAddr, jc.EndpointAddr)
	setIfNotEmpty(&cfg.PublicBaseURL, jc.PublicBaseURL)
	setIfNotEmpty(&cfg.Namespace, jc.Namespace)
	setIfNotEmpty(&cfg.RedisURL, jc.RedisURL)
	setIfNotEmpty(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setIfNotEmpty(&cfg.BadgerPath, jc.BadgerPath)
	setDurationIfNotEmpty(&cfg.LinkTTL, jc.LinkTTL)
	if jc.StatsFallbackCount != nil {
		cfg.StatsFallbackCount = *jc.StatsFallbackCount
	}
	setIfNotEmpty(&cfg.AdminPassword, jc.AdminPassword)
	setIfNotEmpty(&cfg.SecretKey, jc.SecretKey)
	setDurationIfNotEmpty(&cfg.AdminTokenValidity, jc.AdminTokenValidity)
	setIfNotEmpty(&cfg.S3AccessKey, jc.S3AccessKey)
	setIfNotEmpty(&cfg.S3SecretKey, jc.S3SecretKey)
	setIfNotEmpty(&cfg.S3Bucket, jc.S3Bucket)
	setIfNotEmpty(&cfg.S3Region, jc.S3Region)
	setIfNotEmpty(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDurationIfNotEmpty(dst *time.Duration, v string) {
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
