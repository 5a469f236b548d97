// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens database connections and applies schema migrations.

# Connections

Open returns an sqlx handle for either supported engine:

	conn, err := db.Open(db.TypeSQLite, "grocery.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite connections are opened with foreign keys enforced and a busy timeout.

# Migrations

Migrate applies the embedded golang-migrate files for the connection's dialect:

	if err := db.Migrate(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - already applied versions are skipped.

# Tables

  - users: accounts (unique username, bcrypt hash)
  - grocery_store: stores
  - grocery_item: items, priced and categorized
  - shopping_list: lists owned by a user
  - shopping_list_items: list/item join carrying quantity

# Relationships

	grocery_store 1──* grocery_item
	users 1──* shopping_list
	shopping_list *──* grocery_item (via shopping_list_items)

Join rows cascade when their list or item is deleted. Quantity and price
carry CHECK constraints (quantity >= 1, price >= 0).
*/
package db
