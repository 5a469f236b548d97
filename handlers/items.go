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

type ItemHandler struct {
	responder
	svc *grocery.Service
}

func NewItemHandler(svc *grocery.Service, sessions *session.Manager, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{responder: responder{sessions: sessions, logger: logger}, svc: svc}
}

// NewItemForm handles GET /new_item
// Returns the store and category choices for the form
func (h *ItemHandler) NewItemForm(w http.ResponseWriter, r *http.Request) {
	stores, err := h.svc.ListStores(r.Context())
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ItemFormView{
		Stores:     stores,
		Categories: models.Categories,
		Flashes:    h.flashes(w, r),
	})
}

// CreateItem handles POST /new_item
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var in models.ItemInput
	if !h.parseBody(w, r, &in) {
		return
	}

	item, err := h.svc.CreateItem(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	h.redirect(w, r, itemPath(item.ID), "Item was added successfully.")
}

// GetItem handles GET /item/{id}
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	stores, err := h.svc.ListStores(r.Context())
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ItemView{
		Item:       *item,
		Stores:     stores,
		Categories: models.Categories,
		Flashes:    h.flashes(w, r),
	})
}

// UpdateItem handles POST /item/{id}
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var in models.ItemInput
	if !h.parseBody(w, r, &in) {
		return
	}

	if _, err := h.svc.UpdateItem(r.Context(), id, in); err != nil {
		h.writeError(w, r, err, "")
		return
	}

	h.redirect(w, r, itemPath(id), "Item was updated successfully.")
}

func itemPath(id int64) string {
	return "/item/" + strconv.FormatInt(id, 10)
}
