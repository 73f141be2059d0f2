package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port           int           `yaml:"port" env:"PORT" env-default:"4000"`
	DatabaseURL    string        `yaml:"database_url" env:"DATABASE_URL"`
	DatabaseType   string        `yaml:"database_type" env:"DATABASE_TYPE" env-default:"sqlite"`
	JWTSecret      string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	TokenTTL       time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

// ParseFlags builds the configuration from (lowest to highest precedence)
// an optional YAML file, a .env file, the environment and CLI flags.
func ParseFlags(args []string) (Config, error) {
	var (
		cfg        Config
		configFile string
		port       int
		dbURL      string
		dbType     string
		jwtSecret  string
		tokenTTL   time.Duration
	)

	fs := flag.NewFlagSet("feedback-hub", flag.ContinueOnError)

	fs.StringVar(&configFile, "c", "", "Path to YAML config file")

	// Network config (can be CLI args or env)
	fs.IntVar(&port, "p", 0, "Server port")
	fs.StringVar(&dbURL, "d", "", "Database URL")
	fs.StringVar(&dbType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&jwtSecret, "jwt-secret", "", "JWT signing secret (prefer env)")
	fs.DurationVar(&tokenTTL, "token-ttl", 0, "Lifetime of issued tokens")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// A missing .env is normal in production
	_ = godotenv.Load()

	if configFile == "" {
		configFile = os.Getenv("CONFIG_FILE")
	}
	if configFile != "" {
		if err := cleanenv.ReadConfig(configFile, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	// CLI overrides everything, but only for flags that were given
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Port = port
		case "d":
			cfg.DatabaseURL = dbURL
		case "t":
			cfg.DatabaseType = dbType
		case "jwt-secret":
			cfg.JWTSecret = jwtSecret
		case "token-ttl":
			cfg.TokenTTL = tokenTTL
		}
	})

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if c.DatabaseType != DatabaseSQLite && c.DatabaseType != DatabasePostgres {
		return fmt.Errorf("unsupported database type %q (sqlite or postgres)", c.DatabaseType)
	}

	// Secrets - MUST be provided
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("token TTL must be positive")
	}

	return nil
}
