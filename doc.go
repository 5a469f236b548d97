// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the grocery list server.

Users keep a shared catalogue of stores and the items they sell, and build
private shopping lists from those items. Each list shows its entries and the
running total price.

# Starting the Server

The server reads a .env file when present, then environment variables or CLI
flags:

	SESSION_SECRET=... go run .

Or with flags:

	go run . -p 5000 -t postgres -d "postgres://..." --session-secret ...

# Configuration

Required settings:

  - SESSION_SECRET (--session-secret): cookie signing key, at least 32 bytes

Optional settings:

  - PORT (-p): server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): connection string; sqlite defaults to grocery.db
  - SECURE_COOKIES (--secure-cookies): HTTPS-only session cookie
  - LOG_MODE (--log-mode): development or production (default: production)
  - LOG_FILE (--log-file): rotating JSON log file
  - BCRYPT_COST (--bcrypt-cost): password hashing work factor

Migrations run on startup.

# Architecture

  - handlers: HTTP request handlers (stores, items, shopping lists, auth)
  - router: Route definitions using Go 1.22+ routing
  - middleware: logging, recovery, login gate, body and JSON helpers
  - grocery: store, item, and shopping list rules
  - auth: sign up and log in with bcrypt
  - session: encrypted cookie sessions and flash messages
  - repository: sqlx queries and transactions
  - db: connection and embedded migrations
  - models: domain, input, view, and error types
  - validation: struct tag validation
  - logging: zap logger with optional file rotation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
