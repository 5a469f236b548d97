package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cast"
	"golang.org/x/crypto/bcrypt"
)

// MinSessionSecretLen is the shortest accepted session signing key.
const MinSessionSecretLen = 32

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	SessionSecret string
	SecureCookies bool
	LogMode       string
	LogFile       string
	BcryptCost    int
}

// ParseFlags reads flags, falling back to environment variables for any flag
// not given on the command line.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("grocery-list", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 5000, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (file path for sqlite)")
	fs.StringVar(&cfg.DatabaseType, "t", "sqlite", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session signing key, at least 32 bytes (prefer env)")
	fs.BoolVar(&cfg.SecureCookies, "secure-cookies", false, "Mark session cookies Secure (HTTPS only)")

	fs.StringVar(&cfg.LogMode, "log-mode", "production", "Log mode (development or production)")
	fs.StringVar(&cfg.LogFile, "log-file", "", "Also write JSON logs to this rotating file")
	fs.IntVar(&cfg.BcryptCost, "bcrypt-cost", bcrypt.DefaultCost, "bcrypt work factor")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// Fall back to environment variables
	var err error
	if !set["p"] {
		if v := os.Getenv("PORT"); v != "" {
			if cfg.Port, err = cast.ToIntE(v); err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
		}
	}
	if !set["d"] {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			cfg.DatabaseURL = v
		}
	}
	if !set["t"] {
		if v := os.Getenv("DATABASE_TYPE"); v != "" {
			cfg.DatabaseType = v
		}
	}
	if !set["session-secret"] {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if !set["secure-cookies"] {
		if v := os.Getenv("SECURE_COOKIES"); v != "" {
			if cfg.SecureCookies, err = cast.ToBoolE(v); err != nil {
				return Config{}, errors.New("invalid SECURE_COOKIES env variable")
			}
		}
	}
	if !set["log-mode"] {
		if v := os.Getenv("LOG_MODE"); v != "" {
			cfg.LogMode = v
		}
	}
	if !set["log-file"] {
		cfg.LogFile = os.Getenv("LOG_FILE")
	}
	if !set["bcrypt-cost"] {
		if v := os.Getenv("BCRYPT_COST"); v != "" {
			if cfg.BcryptCost, err = cast.ToIntE(v); err != nil {
				return Config{}, errors.New("invalid BCRYPT_COST env variable")
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}

	switch cfg.DatabaseType {
	case "sqlite":
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = "grocery.db"
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			return errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	default:
		return fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		return errors.New("SESSION_SECRET required")
	}
	if len(cfg.SessionSecret) < MinSessionSecretLen {
		return fmt.Errorf("SESSION_SECRET must be at least %d bytes", MinSessionSecretLen)
	}

	if cfg.LogMode != "development" && cfg.LogMode != "production" {
		return fmt.Errorf("invalid log mode %q (use development or production)", cfg.LogMode)
	}

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	return nil
}
