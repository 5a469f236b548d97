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

type StoreHandler struct {
	responder
	svc *grocery.Service
}

func NewStoreHandler(svc *grocery.Service, sessions *session.Manager, logger *zap.Logger) *StoreHandler {
	return &StoreHandler{responder: responder{sessions: sessions, logger: logger}, svc: svc}
}

// Home handles GET /
func (h *StoreHandler) Home(w http.ResponseWriter, r *http.Request) {
	stores, err := h.svc.ListStores(r.Context())
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.HomeView{
		Stores:  stores,
		Flashes: h.flashes(w, r),
	})
}

// NewStoreForm handles GET /new_store
func (h *StoreHandler) NewStoreForm(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.FormView{
		Form:    "new_store",
		Flashes: h.flashes(w, r),
	})
}

// CreateStore handles POST /new_store
func (h *StoreHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var in models.StoreInput
	if !h.parseBody(w, r, &in) {
		return
	}

	store, err := h.svc.CreateStore(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	h.redirect(w, r, storePath(store.ID), "Store was added successfully.")
}

// GetStore handles GET /store/{id}
func (h *StoreHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	store, err := h.svc.GetStore(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StoreView{
		Store:   *store,
		Flashes: h.flashes(w, r),
	})
}

// UpdateStore handles POST /store/{id}
func (h *StoreHandler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var in models.StoreInput
	if !h.parseBody(w, r, &in) {
		return
	}

	if _, err := h.svc.UpdateStore(r.Context(), id, in); err != nil {
		h.writeError(w, r, err, "")
		return
	}

	h.redirect(w, r, storePath(id), "Store was updated successfully.")
}

func storePath(id int64) string {
	return "/store/" + strconv.FormatInt(id, 10)
}
