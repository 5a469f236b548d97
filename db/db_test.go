// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"path/filepath"
	"testing"
)

func TestMigrate_Idempotent(t *testing.T) {
	conn, err := Open(TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	if err := Migrate(conn); err != nil {
		t.Fatalf("first Migrate() error = %v", err)
	}
	if err := Migrate(conn); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	tables := []string{"users", "grocery_store", "grocery_item", "shopping_list", "shopping_list_items"}
	for _, table := range tables {
		var count int
		err := conn.Get(&count, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		if err != nil {
			t.Fatalf("failed to query sqlite_master: %v", err)
		}
		if count != 1 {
			t.Errorf("expected table %s to exist", table)
		}
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	conn, err := Open(TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	if err := Migrate(conn); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	_, err = conn.Exec(`INSERT INTO grocery_item (name, price, category, store_id) VALUES ('Milk', 3.5, 'Produce', 42)`)
	if err == nil {
		t.Error("expected foreign key violation for unknown store")
	}
}

func TestCheckConstraints(t *testing.T) {
	conn, err := Open(TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	if err := Migrate(conn); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	if _, err := conn.Exec(`INSERT INTO grocery_store (title, address) VALUES ('Shop', 'Street')`); err != nil {
		t.Fatalf("failed to insert store: %v", err)
	}

	_, err = conn.Exec(`INSERT INTO grocery_item (name, price, category, store_id) VALUES ('Bad', -1, 'Other', 1)`)
	if err == nil {
		t.Error("expected CHECK violation for negative price")
	}

	_, err = conn.Exec(`INSERT INTO grocery_item (name, price, category, store_id) VALUES ('Bad', 1, 'Candy', 1)`)
	if err == nil {
		t.Error("expected CHECK violation for unknown category")
	}
}

func TestOpen_UnsupportedType(t *testing.T) {
	if _, err := Open("mysql", "whatever"); err == nil {
		t.Error("expected error for unsupported database type")
	}
}
