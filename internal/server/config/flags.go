package config

import "flag"

// parseFlags populates Config fields from command-line flags. Flags have
// the highest precedence.
//
//	-a string        bind address (e.g. ":8080")
//	-base-url string public base URL used in share links
//	-n string        store key namespace
//	-redis string    redis URL; selects the redis backend
//	-d string        PostgreSQL DSN; selects the postgres backend
//	-badger string   badger data dir; selects the embedded backend
//	-ttl duration    link lifetime, 0 = never expires
//	-fallback int    stats count served when the store is unreachable
//	-admin-password  string
//	-s string        JWT HMAC secret
//	-c/-config       path to a JSON config file (read before flags)
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("lovelab-server", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "address and port to run server")
	fs.StringVar(&cfg.PublicBaseURL, "base-url", cfg.PublicBaseURL, "public base URL for share links")
	fs.StringVar(&cfg.Namespace, "n", cfg.Namespace, "store key namespace")
	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "redis URL")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.BadgerPath, "badger", cfg.BadgerPath, "badger data directory")
	fs.DurationVar(&cfg.LinkTTL, "ttl", cfg.LinkTTL, "link TTL (0 disables expiry)")
	fs.Int64Var(&cfg.StatsFallbackCount, "fallback", cfg.StatsFallbackCount, "fallback stats count")
	fs.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "admin password")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")

	// Registered so Parse accepts them; the value was consumed by parseJSON.
	var configFile string
	fs.StringVar(&configFile, "config", "", "path to JSON config file")
	fs.StringVar(&configFile, "c", "", "path to JSON config file (short)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
