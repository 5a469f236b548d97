// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/grocery-list/models"
)

// Queries holds every statement the service runs. All SQL is written with
// ? placeholders and rebound for the active driver.
type Queries struct {
	ext sqlx.ExtContext
}

func (q *Queries) get(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.GetContext(ctx, q.ext, dest, q.ext.Rebind(query), args...)
}

func (q *Queries) sel(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, q.ext, dest, q.ext.Rebind(query), args...)
}

func (q *Queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return q.ext.ExecContext(ctx, q.ext.Rebind(query), args...)
}

// notFound turns sql.ErrNoRows into a wrapped models.ErrNotFound.
func notFound(err error, what string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", what, id, models.ErrNotFound)
	}
	return err
}

func expectRow(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, models.ErrNotFound)
	}
	return nil
}

// Stores

func (q *Queries) InsertStore(ctx context.Context, s *models.Store) error {
	return q.get(ctx, &s.ID,
		`INSERT INTO grocery_store (title, address) VALUES (?, ?) RETURNING id`,
		s.Title, s.Address)
}

func (q *Queries) UpdateStore(ctx context.Context, s *models.Store) error {
	res, err := q.exec(ctx,
		`UPDATE grocery_store SET title = ?, address = ? WHERE id = ?`,
		s.Title, s.Address, s.ID)
	if err != nil {
		return err
	}
	return expectRow(res, "store", s.ID)
}

func (q *Queries) GetStore(ctx context.Context, id int64) (*models.Store, error) {
	var s models.Store
	err := q.get(ctx, &s, `SELECT id, title, address FROM grocery_store WHERE id = ?`, id)
	if err != nil {
		return nil, notFound(err, "store", id)
	}
	return &s, nil
}

func (q *Queries) ListStores(ctx context.Context) ([]models.Store, error) {
	stores := []models.Store{}
	err := q.sel(ctx, &stores, `SELECT id, title, address FROM grocery_store ORDER BY id`)
	return stores, err
}

// Items

const itemColumns = `id, name, price, category, photo_url, store_id`

func (q *Queries) InsertItem(ctx context.Context, it *models.Item) error {
	return q.get(ctx, &it.ID,
		`INSERT INTO grocery_item (name, price, category, photo_url, store_id)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`,
		it.Name, it.Price, it.Category, it.PhotoURL, it.StoreID)
}

func (q *Queries) UpdateItem(ctx context.Context, it *models.Item) error {
	res, err := q.exec(ctx,
		`UPDATE grocery_item SET name = ?, price = ?, category = ?, photo_url = ?, store_id = ?
		 WHERE id = ?`,
		it.Name, it.Price, it.Category, it.PhotoURL, it.StoreID, it.ID)
	if err != nil {
		return err
	}
	return expectRow(res, "item", it.ID)
}

func (q *Queries) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	var it models.Item
	err := q.get(ctx, &it, `SELECT `+itemColumns+` FROM grocery_item WHERE id = ?`, id)
	if err != nil {
		return nil, notFound(err, "item", id)
	}
	return &it, nil
}

func (q *Queries) ListItems(ctx context.Context) ([]models.Item, error) {
	items := []models.Item{}
	err := q.sel(ctx, &items, `SELECT `+itemColumns+` FROM grocery_item ORDER BY name, id`)
	return items, err
}

func (q *Queries) ItemsByStore(ctx context.Context, storeID int64) ([]models.Item, error) {
	items := []models.Item{}
	err := q.sel(ctx, &items,
		`SELECT `+itemColumns+` FROM grocery_item WHERE store_id = ? ORDER BY name, id`, storeID)
	return items, err
}

// Users

func (q *Queries) InsertUser(ctx context.Context, u *models.User) error {
	return q.get(ctx, &u.ID,
		`INSERT INTO users (username, password) VALUES (?, ?) RETURNING id`,
		u.Username, u.PasswordHash)
}

func (q *Queries) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := q.get(ctx, &u, `SELECT id, username, password FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return &u, nil
}

// GetUserByUsername returns models.ErrNotFound when no account matches.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := q.get(ctx, &u, `SELECT id, username, password FROM users WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Shopping lists

func (q *Queries) InsertShoppingList(ctx context.Context, l *models.ShoppingList) error {
	return q.get(ctx, &l.ID,
		`INSERT INTO shopping_list (name, created_at, user_id) VALUES (?, ?, ?) RETURNING id`,
		l.Name, l.CreatedAt, l.UserID)
}

func (q *Queries) GetShoppingList(ctx context.Context, id int64) (*models.ShoppingList, error) {
	var l models.ShoppingList
	err := q.get(ctx, &l,
		`SELECT id, name, created_at, user_id FROM shopping_list WHERE id = ?`, id)
	if err != nil {
		return nil, notFound(err, "shopping list", id)
	}
	return &l, nil
}

// ShoppingListsByUser returns the user's lists, newest first.
func (q *Queries) ShoppingListsByUser(ctx context.Context, userID int64) ([]models.ShoppingList, error) {
	lists := []models.ShoppingList{}
	err := q.sel(ctx, &lists,
		`SELECT id, name, created_at, user_id FROM shopping_list
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	return lists, err
}

// List entries

type entryRow struct {
	models.Item
	ShoppingListID int64 `db:"shopping_list_id"`
	Quantity       int   `db:"quantity"`
}

// Entries loads a list's entries joined with their items.
func (q *Queries) Entries(ctx context.Context, listID int64) ([]models.ListEntry, error) {
	var rows []entryRow
	err := q.sel(ctx, &rows,
		`SELECT i.id, i.name, i.price, i.category, i.photo_url, i.store_id,
		        e.shopping_list_id, e.quantity
		 FROM shopping_list_items e
		 JOIN grocery_item i ON i.id = e.item_id
		 WHERE e.shopping_list_id = ?
		 ORDER BY i.name, i.id`, listID)
	if err != nil {
		return nil, err
	}

	entries := make([]models.ListEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.ListEntry{
			ShoppingListID: row.ShoppingListID,
			ItemID:         row.Item.ID,
			Quantity:       row.Quantity,
			Item:           row.Item,
		})
	}
	return entries, nil
}

// AddEntry inserts the pair or, if it already exists, adds quantity to the
// stored quantity.
func (q *Queries) AddEntry(ctx context.Context, listID, itemID int64, quantity int) error {
	_, err := q.exec(ctx,
		`INSERT INTO shopping_list_items (shopping_list_id, item_id, quantity)
		 VALUES (?, ?, ?)
		 ON CONFLICT (shopping_list_id, item_id)
		 DO UPDATE SET quantity = shopping_list_items.quantity + excluded.quantity`,
		listID, itemID, quantity)
	return err
}

// EntryQuantity returns the stored quantity of itemID on listID, 0 if absent.
func (q *Queries) EntryQuantity(ctx context.Context, listID, itemID int64) (int, error) {
	var quantity int
	err := q.get(ctx, &quantity,
		`SELECT quantity FROM shopping_list_items WHERE shopping_list_id = ? AND item_id = ?`,
		listID, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return quantity, err
}

// DeleteEntry removes the pair. Deleting an absent pair is not an error.
func (q *Queries) DeleteEntry(ctx context.Context, listID, itemID int64) error {
	_, err := q.exec(ctx,
		`DELETE FROM shopping_list_items WHERE shopping_list_id = ? AND item_id = ?`,
		listID, itemID)
	return err
}
