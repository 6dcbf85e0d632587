package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const ServiceName = "blogapi"

// DefaultSecret is the signing secret used when JWT_SECRET_KEY is unset.
// It is public knowledge; Insecure reports when it is in effect.
const DefaultSecret = "super-secret"

type Config struct {
	Routes      bool
	Addr        string
	DiagAddr    string
	DatabaseURL string
	Secret      string
	TokenTTL    time.Duration
	AdminUser   string
	AdminPass   string
	CORSOrigins []string
}

// Insecure reports whether tokens are signed with the built-in secret.
func (c Config) Insecure() bool {
	return c.Secret == DefaultSecret
}

// Load reads an optional .env file, then parses args into fs. Every flag
// defaults to its environment variable. The signing secret is read from
// JWT_SECRET_KEY only.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	// a missing .env file is normal outside development
	_ = godotenv.Load()

	var (
		c       Config
		origins string
		env     = strings.ToUpper(ServiceName) + "_"
	)

	fs.BoolVar(&c.Routes, "routes", getEnvBool(env+"ROUTES", false), "Generate router documentation")
	fs.StringVar(&c.Addr, "addr", getEnv(env+"ADDR", ":3333"), "application port")
	fs.StringVar(&c.DiagAddr, "diag_addr", getEnv(env+"DIAG_ADDR", ":9999"), "diag port")
	fs.StringVar(&c.DatabaseURL, "database_url", getEnv(env+"DATABASE_URL", "app.db"), "sqlite3 path or postgres:// URL")
	fs.DurationVar(&c.TokenTTL, "token_ttl", getEnvDuration(env+"TOKEN_TTL", 15*time.Minute), "token lifetime")
	fs.StringVar(&c.AdminUser, "admin_user", getEnv(env+"ADMIN_USER", ""), "username seeded at startup")
	fs.StringVar(&c.AdminPass, "admin_pass", getEnv(env+"ADMIN_PASS", ""), "password of the seeded user")
	fs.StringVar(&origins, "cors_origins", getEnv(env+"CORS_ORIGINS", "*"), "comma-separated allowed CORS origins")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// never a flag: argv is visible in the process list
	c.Secret = getEnv("JWT_SECRET_KEY", DefaultSecret)

	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			c.CORSOrigins = append(c.CORSOrigins, o)
		}
	}
	if c.Secret == "" {
		return Config{}, fmt.Errorf("jwt secret must not be empty")
	}
	if (c.AdminUser == "") != (c.AdminPass == "") {
		return Config{}, fmt.Errorf("admin user and password must be set together")
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}

	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}

	return fallback
}
