// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the grocery list app.

# Route Registration

NewRouter wires the repository, services, sessions, and handlers and returns
a configured http.ServeMux:

	mux, err := router.NewRouter(db, cfg, logger)

# Endpoints

Health:

	GET /health

Stores (public):

	GET  /                - Home, all stores
	GET  /new_store       - Empty store form
	POST /new_store       - Create store
	GET  /store/{id}      - Store with its items
	POST /store/{id}      - Update store

Items (public):

	GET  /new_item        - Store and category choices
	POST /new_item        - Create item
	GET  /item/{id}       - Item with its store
	POST /item/{id}       - Update item

Shopping lists (login required, owner only):

	GET  /shopping_list                        - Caller's lists, newest first
	POST /shopping_list                        - Create list
	GET  /shopping_list/{id}                   - List, entries, total price
	POST /shopping_list/{id}                   - Add item
	POST /shopping_list/{id}/delete/{item_id}  - Remove item

Accounts:

	GET/POST /auth/signup
	GET/POST /auth/login
	GET      /auth/logout   - login required

Every route except /health is wrapped with request logging and panic
recovery.
*/
package router
