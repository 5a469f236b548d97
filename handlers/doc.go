// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for the grocery list app.

# Handler Types

Each handler is a struct holding a service, the session manager, and a logger:

  - StoreHandler: store catalogue and the home page
  - ItemHandler: items and their store and category choices
  - ShoppingListHandler: the signed-in user's own lists and their entries
  - AuthHandler: sign up, log in, log out

Handlers are created via constructor functions:

	storeHandler := handlers.NewStoreHandler(groceryService, sessions, logger)

# Responses

GET routes answer 200 with a JSON view that carries any pending flash
messages. Successful POSTs flash a message and answer 303 to the page that
shows the result. Bodies may be JSON or url-encoded forms.

Errors from the services map onto responses in one place (respond.go):

	*models.ValidationError   → 422 with per-field messages
	models.ErrNotFound        → 404
	models.ErrPermission      → 303 to /shopping_list with a flash
	models.ErrInvalidCredentials → 401
	models.ErrLoginRequired   → 303 to /auth/login

Malformed path ids are treated as missing and answer 404.

# Shopping Lists

Every shopping list route sits behind middleware.RequireLogin. Only the
owner may view or change a list:

	GET  /shopping_list/{id}                   → GetShoppingList
	POST /shopping_list/{id}                   → AddEntry
	POST /shopping_list/{id}/delete/{item_id}  → RemoveEntry

Adding an item that is already on the list increases its quantity.
*/
package handlers
