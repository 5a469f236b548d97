// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/danielhkuo/grocery-list/grocery"
	"github.com/danielhkuo/grocery-list/middleware"
	"github.com/danielhkuo/grocery-list/models"
	"github.com/danielhkuo/grocery-list/session"
)

const (
	deniedView   = "You do not have permission to view this shopping list."
	deniedModify = "You do not have permission to modify this shopping list."
)

// ShoppingListHandler serves the caller's own lists. Every route sits behind
// middleware.RequireLogin.
type ShoppingListHandler struct {
	responder
	svc *grocery.Service
}

func NewShoppingListHandler(svc *grocery.Service, sessions *session.Manager, logger *zap.Logger) *ShoppingListHandler {
	return &ShoppingListHandler{responder: responder{sessions: sessions, logger: logger}, svc: svc}
}

// ListShoppingLists handles GET /shopping_list
func (h *ShoppingListHandler) ListShoppingLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.svc.ListShoppingLists(r.Context(), h.userID(r))
	if err != nil {
		h.writeError(w, r, err, deniedView)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ShoppingListsView{
		Lists:   lists,
		Flashes: h.flashes(w, r),
	})
}

// CreateShoppingList handles POST /shopping_list
func (h *ShoppingListHandler) CreateShoppingList(w http.ResponseWriter, r *http.Request) {
	var in models.ShoppingListInput
	if !h.parseBody(w, r, &in) {
		return
	}

	list, err := h.svc.CreateShoppingList(r.Context(), in, h.userID(r))
	if err != nil {
		h.writeError(w, r, err, deniedModify)
		return
	}

	h.redirect(w, r, listPath(list.ID), "Shopping list was created successfully.")
}

// GetShoppingList handles GET /shopping_list/{id}
// Includes the entries, their total, and the items that can be added
func (h *ShoppingListHandler) GetShoppingList(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	list, err := h.svc.GetShoppingList(r.Context(), id, h.userID(r))
	if err != nil {
		h.writeError(w, r, err, deniedView)
		return
	}

	items, err := h.svc.ListItems(r.Context())
	if err != nil {
		h.writeError(w, r, err, deniedView)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ShoppingListView{
		List:       *list,
		TotalPrice: list.TotalPrice(),
		Items:      items,
		Flashes:    h.flashes(w, r),
	})
}

// AddEntry handles POST /shopping_list/{id}
func (h *ShoppingListHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var in models.ListEntryInput
	if !h.parseBody(w, r, &in) {
		return
	}

	if err := h.svc.AddListEntry(r.Context(), id, in, h.userID(r)); err != nil {
		h.writeError(w, r, err, deniedModify)
		return
	}

	h.redirect(w, r, listPath(id), "Item was added to shopping list successfully.")
}

// RemoveEntry handles POST /shopping_list/{id}/delete/{item_id}
func (h *ShoppingListHandler) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := h.pathID(w, r, "item_id")
	if !ok {
		return
	}

	if err := h.svc.RemoveListEntry(r.Context(), id, itemID, h.userID(r)); err != nil {
		h.writeError(w, r, err, deniedModify)
		return
	}

	h.redirect(w, r, listPath(id), "Item was removed from shopping list successfully.")
}

func listPath(id int64) string {
	return "/shopping_list/" + strconv.FormatInt(id, 10)
}
