// Package config handles configuration for the server component, layering
// defaults, an optional JSON file, environment variables and command-line
// flags, in that order of precedence.
package config

import "time"

// Config holds runtime settings for the LoveLab server.
//
// Exactly one store backend is selected at startup: RedisURL wins over
// DatabaseDSN, which wins over BadgerPath. With none configured the server
// still runs, but saves fail and clients fall back to embedded-token links.
type Config struct {
	EndpointAddr  string
	PublicBaseURL string
	Namespace     string

	RedisURL    string
	DatabaseDSN string
	BadgerPath  string

	// LinkTTL bounds the lifetime of stored links; 0 disables expiry.
	LinkTTL time.Duration
	// StatsFallbackCount is served when the counter cannot be read.
	StatsFallbackCount int64

	AdminPassword      string
	SecretKey          string
	AdminTokenValidity time.Duration

	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey and AdminPassword must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.PublicBaseURL = "http://localhost:8080"
	c.Namespace = "lovelab"
	c.LinkTTL = 30 * 24 * time.Hour
	c.StatsFallbackCount = 124
	c.SecretKey = "secretKey"
	c.AdminTokenValidity = 30 * time.Minute
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config from defaults, then an optional JSON file,
// then environment variables, then the given command-line arguments
// (usually os.Args[1:]).
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
