// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/danielhkuo/grocery-list/auth"
	"github.com/danielhkuo/grocery-list/cliparse"
	"github.com/danielhkuo/grocery-list/grocery"
	"github.com/danielhkuo/grocery-list/handlers"
	"github.com/danielhkuo/grocery-list/middleware"
	"github.com/danielhkuo/grocery-list/repository"
	"github.com/danielhkuo/grocery-list/session"
)

func NewRouter(db *sqlx.DB, cfg cliparse.Config, logger *zap.Logger) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	repo := repository.New(db)
	sessions := session.NewManager([]byte(cfg.SessionSecret), cfg.SecureCookies)

	authService, err := auth.NewService(repo, auth.BcryptHasher{Cost: cfg.BcryptCost}, logger)
	if err != nil {
		return nil, err
	}
	groceryService := grocery.NewService(repo, logger)

	// Initialize handlers
	storeHandler := handlers.NewStoreHandler(groceryService, sessions, logger)
	itemHandler := handlers.NewItemHandler(groceryService, sessions, logger)
	listHandler := handlers.NewShoppingListHandler(groceryService, sessions, logger)
	authHandler := handlers.NewAuthHandler(authService, sessions, logger)

	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(logger, middleware.Recover(logger, h))
	}
	loggedIn := func(h http.HandlerFunc) http.HandlerFunc {
		return wrap(middleware.RequireLogin(sessions, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Stores (public)
	mux.HandleFunc("GET /{$}", wrap(storeHandler.Home))
	mux.HandleFunc("GET /new_store", wrap(storeHandler.NewStoreForm))
	mux.HandleFunc("POST /new_store", wrap(storeHandler.CreateStore))
	mux.HandleFunc("GET /store/{id}", wrap(storeHandler.GetStore))
	mux.HandleFunc("POST /store/{id}", wrap(storeHandler.UpdateStore))

	// Items (public)
	mux.HandleFunc("GET /new_item", wrap(itemHandler.NewItemForm))
	mux.HandleFunc("POST /new_item", wrap(itemHandler.CreateItem))
	mux.HandleFunc("GET /item/{id}", wrap(itemHandler.GetItem))
	mux.HandleFunc("POST /item/{id}", wrap(itemHandler.UpdateItem))

	// Shopping lists (owner only)
	mux.HandleFunc("GET /shopping_list", loggedIn(listHandler.ListShoppingLists))
	mux.HandleFunc("POST /shopping_list", loggedIn(listHandler.CreateShoppingList))
	mux.HandleFunc("GET /shopping_list/{id}", loggedIn(listHandler.GetShoppingList))
	mux.HandleFunc("POST /shopping_list/{id}", loggedIn(listHandler.AddEntry))
	mux.HandleFunc("POST /shopping_list/{id}/delete/{item_id}", loggedIn(listHandler.RemoveEntry))

	// Accounts
	mux.HandleFunc("GET /auth/signup", wrap(authHandler.SignUpForm))
	mux.HandleFunc("POST /auth/signup", wrap(authHandler.SignUp))
	mux.HandleFunc("GET /auth/login", wrap(authHandler.LoginForm))
	mux.HandleFunc("POST /auth/login", wrap(authHandler.LogIn))
	mux.HandleFunc("GET /auth/logout", loggedIn(authHandler.LogOut))

	return mux, nil
}
