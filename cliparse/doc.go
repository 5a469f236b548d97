// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseType: sqlite (default) or postgres
  - DatabaseURL: file path for sqlite (default: grocery.db), connection string for postgres
  - SessionSecret: Key used to sign session cookies (required, 32+ bytes)
  - SecureCookies: Restrict session cookies to HTTPS
  - LogMode: development (console) or production (JSON, default)
  - LogFile: Optional rotating log file
  - BcryptCost: Password hashing work factor (default: 10)

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	--session-secret  Session signing key
	--secure-cookies  HTTPS-only cookies
	--log-mode        Log mode
	--log-file        Log file path
	--bcrypt-cost     bcrypt work factor

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	SESSION_SECRET → --session-secret
	SECURE_COOKIES → --secure-cookies
	LOG_MODE       → --log-mode
	LOG_FILE       → --log-file
	BCRYPT_COST    → --bcrypt-cost

CLI flags take precedence over environment variables. main loads a .env
file into the environment first, when one exists.

# Validation

ParseFlags returns an error if:

  - SESSION_SECRET is missing or shorter than 32 bytes
  - DATABASE_TYPE is not sqlite or postgres
  - DATABASE_URL is missing for postgres
  - the port, log mode, or bcrypt cost is out of range

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(conn, cfg, logger)
*/
package cliparse
