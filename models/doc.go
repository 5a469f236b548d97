// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, view, and error types for the service.

# Domain Types

  - Store: a grocery location (title, address) owning items
  - Item: a priced, categorized good sold at one store
  - ShoppingList: a named list owned by one user
  - ListEntry: list/item association carrying a quantity
  - User: account with a bcrypt password hash (never serialized)

Prices are shopspring decimals so totals are exact:

	list.TotalPrice()      // Σ price × quantity, zero for an empty list
	list.QuantityOf(itemID) // 0 when the item is not on the list

# Categories

ParseCategory matches case-insensitively and falls back to Other:

	models.ParseCategory("PRODUCE") // Produce
	models.ParseCategory("candy")   // Other

# Request Types

  - StoreInput: title, address
  - ItemInput: name, price, category, photo_url, store_id
  - ShoppingListInput: name
  - ListEntryInput: item_id, quantity (optional, default 1)
  - SignUpInput: username, password, confirm_password
  - LoginInput: username, password, next

Fields carry validate tags consumed by the validation package.

# Errors

	ErrNotFound           → 404
	ErrPermission         → redirect with flash
	ErrInvalidCredentials → 401, fixed message
	ErrLoginRequired      → redirect to login
	*ValidationError      → 422 with per-field messages
*/
package models
