// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package grocery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/danielhkuo/grocery-list/models"
	"github.com/danielhkuo/grocery-list/repository"
	"github.com/danielhkuo/grocery-list/validation"
)

// Transactor runs fn inside a single database transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(q *repository.Queries) error) error
}

// maxPrice is the first value that no longer fits NUMERIC(10, 2).
var maxPrice = decimal.New(1, 8)

// MaxQuantity bounds one entry's quantity, including the sum of re-adds.
const MaxQuantity = 10000

type Service struct {
	repo   Transactor
	logger *zap.Logger
}

func NewService(repo Transactor, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Stores

func (s *Service) CreateStore(ctx context.Context, in models.StoreInput) (*models.Store, error) {
	in = normalizeStore(in)
	if verr := validation.Check(in); verr.HasErrors() {
		return nil, verr
	}

	store := &models.Store{Title: in.Title, Address: in.Address}
	err := s.repo.InTx(ctx, func(q *repository.Queries) error {
		return q.InsertStore(ctx, store)
	})
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	s.logger.Info("store created", zap.Int64("store_id", store.ID), zap.String("title", store.Title))
	return store, nil
}

func (s *Service) UpdateStore(ctx context.Context, id int64, in models.StoreInput) (*models.Store, error) {
	in = normalizeStore(in)
	if verr := validation.Check(in); verr.HasErrors() {
		return nil, verr
	}

	store := &models.Store{ID: id, Title: in.Title, Address: in.Address}
	err := s.repo.InTx(ctx, func(q *repository.Queries) error {
		return q.UpdateStore(ctx, store)
	})
	if err != nil {
		return nil, fmt.Errorf("update store: %w", err)
	}

	s.logger.Info("store updated", zap.Int64("store_id", id))
	return store, nil
}

func (s *Service) ListStores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	err := s.repo.InTx(ctx, func(q *repository.Queries) error {
		var err error
		stores, err = q.ListStores(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

// GetStore returns the store with its items.
func (s *Service) GetStore(ctx context.Context, id int64) (*models.Store, error) {
	var store *models.Store
	err := s.repo.InTx(ctx, func(q *repository.Queries) error {
		var err error
		if store, err = q.GetStore(ctx, id); err != nil {
			return err
		}
		store.Items, err = q.ItemsByStore(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	return store, nil
}

func normalizeStore(in models.StoreInput) models.StoreInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Address = strings.TrimSpace(in.Address)
	return in
}

// Items

func (s *Service) CreateItem(ctx context.Context, in models.ItemInput) (*models.Item, error) {
	item, verr := buildItem(in)
	if verr.HasErrors() {
		return nil, verr
	}

	err := s.repo.InTx(ctx, func(q *repository.Queries) error {
		store, err := q.GetStore(ctx, item.StoreID)
		if err != nil {
			return err
		}
		item.Store = store
		return q.InsertItem(ctx, item)
	})
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.logger.Info("item created",
		zap.Int64("item_id", item.ID),
		zap.Int64("store_id", item.StoreID),
		zap.String("category", string(item.Category)),
	)
	return item, nil
}

func (s *Service) UpdateItem(ctx context.Context, id int64, in models.ItemInput) (*models.Item, error) {
	item, verr := buildItem(in)
	if verr.HasErrors() {
		return nil, verr
	}
	item.ID = id

	err := s.repo.InTx(ctx, func(q *repository.Queries) error {
		if _, err := q.GetItem(ctx, id); err != nil {
			return err
		}
		store, err := q.GetStore(ctx, item.StoreID)
		if err != nil {
			return err
		}
		item.Store = store
		return q.UpdateItem(ctx, item)
	})
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.logger.Info("item updated", zap.Int64("item_id", id))
	return item, nil
}

func (s *Service) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := s.repo.InTx(ctx, func(q *repository.Queries) error {
		var err error
		items, err = q.ListItems(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// GetItem returns the item with its store.
func (s *Service) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	var item *models.Item
	err := s.repo.InTx(ctx, func(q *repository.Queries) error {
		var err error
		if item, err = q.GetItem(ctx, id); err != nil {
			return err
		}
		item.Store, err = q.GetStore(ctx, item.StoreID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// buildItem validates in and converts it to an Item. The category is
// normalized and a blank photo URL is stored as NULL.
func buildItem(in models.ItemInput) (*models.Item, *models.ValidationError) {
	in.Name = strings.TrimSpace(in.Name)
	in.PhotoURL = strings.TrimSpace(in.PhotoURL)

	verr := &models.ValidationError{}
	verr.Merge(validation.Check(in))

	switch {
	case in.Price == nil:
		verr.Add("price", "is required")
	case in.Price.IsNegative():
		verr.Add("price", "must be at least 0")
	case in.Price.GreaterThanOrEqual(maxPrice):
		verr.Add("price", "is too large")
	}

	if verr.HasErrors() {
		return nil, verr
	}

	item := &models.Item{
		Name:     in.Name,
		Price:    in.Price.Round(2),
		Category: models.ParseCategory(in.Category),
		StoreID:  in.StoreID,
	}
	if in.PhotoURL != "" {
		photo := in.PhotoURL
		item.PhotoURL = &photo
	}
	return item, nil
}

// Shopping lists

// CreateShoppingList creates a list owned by ownerID. It returns
// models.ErrLoginRequired unless ownerID names an existing user.
func (s *Service) CreateShoppingList(ctx context.Context, in models.ShoppingListInput, ownerID int64) (*models.ShoppingList, error) {
	if ownerID <= 0 {
		return nil, models.ErrLoginRequired
	}

	in.Name = strings.TrimSpace(in.Name)
	if verr := validation.Check(in); verr.HasErrors() {
		return nil, verr
	}

	list := &models.ShoppingList{
		Name:      in.Name,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		UserID:    ownerID,
	}
	err := s.repo.InTx(ctx, func(q *repository.Queries) error {
		if _, err := q.GetUser(ctx, ownerID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return models.ErrLoginRequired
			}
			return err
		}
		return q.InsertShoppingList(ctx, list)
	})
	if err != nil {
		return nil, fmt.Errorf("create shopping list: %w", err)
	}

	s.logger.Info("shopping list created", zap.Int64("list_id", list.ID), zap.Int64("user_id", ownerID))
	return list, nil
}

// ListShoppingLists returns only ownerID's lists, newest first.
func (s *Service) ListShoppingLists(ctx context.Context, ownerID int64) ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	err := s.repo.InTx(ctx, func(q *repository.Queries) error {
		var err error
		lists, err = q.ShoppingListsByUser(ctx, ownerID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list shopping lists: %w", err)
	}
	return lists, nil
}

// GetShoppingList returns the list with its entries. Callers other than the
// owner get models.ErrPermission.
func (s *Service) GetShoppingList(ctx context.Context, listID, callerID int64) (*models.ShoppingList, error) {
	var list *models.ShoppingList
	err := s.repo.InTx(ctx, func(q *repository.Queries) error {
		var err error
		if list, err = ownedList(ctx, q, listID, callerID); err != nil {
			return err
		}
		list.Entries, err = q.Entries(ctx, listID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get shopping list: %w", err)
	}
	return list, nil
}

// AddListEntry puts an item on the caller's list. A missing quantity means 1.
// Adding an item that is already on the list increases its quantity, up to
// MaxQuantity.
func (s *Service) AddListEntry(ctx context.Context, listID int64, in models.ListEntryInput, callerID int64) error {
	quantity := 1
	if in.Quantity != nil {
		quantity = *in.Quantity
	}

	err := s.repo.InTx(ctx, func(q *repository.Queries) error {
		if _, err := ownedList(ctx, q, listID, callerID); err != nil {
			return err
		}

		verr := &models.ValidationError{}
		verr.Merge(validation.Check(in))
		switch {
		case quantity < 1:
			verr.Add("quantity", "must be at least 1")
		case quantity > MaxQuantity:
			verr.Add("quantity", fmt.Sprintf("must be at most %d", MaxQuantity))
		}
		if verr.HasErrors() {
			return verr
		}

		if _, err := q.GetItem(ctx, in.ItemID); err != nil {
			return err
		}
		stored, err := q.EntryQuantity(ctx, listID, in.ItemID)
		if err != nil {
			return err
		}
		if stored+quantity > MaxQuantity {
			return models.NewValidationError("quantity",
				fmt.Sprintf("would bring the total on this list above %d", MaxQuantity))
		}
		return q.AddEntry(ctx, listID, in.ItemID, quantity)
	})
	if err != nil {
		return fmt.Errorf("add list entry: %w", err)
	}

	s.logger.Info("list entry added",
		zap.Int64("list_id", listID),
		zap.Int64("item_id", in.ItemID),
		zap.Int("quantity", quantity),
	)
	return nil
}

// RemoveListEntry takes an item off the caller's list. Removing an item that
// is not on the list succeeds and changes nothing.
func (s *Service) RemoveListEntry(ctx context.Context, listID, itemID, callerID int64) error {
	err := s.repo.InTx(ctx, func(q *repository.Queries) error {
		if _, err := ownedList(ctx, q, listID, callerID); err != nil {
			return err
		}
		return q.DeleteEntry(ctx, listID, itemID)
	})
	if err != nil {
		return fmt.Errorf("remove list entry: %w", err)
	}

	s.logger.Info("list entry removed", zap.Int64("list_id", listID), zap.Int64("item_id", itemID))
	return nil
}

func ownedList(ctx context.Context, q *repository.Queries, listID, callerID int64) (*models.ShoppingList, error) {
	list, err := q.GetShoppingList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.UserID != callerID {
		return nil, fmt.Errorf("shopping list %d: %w", listID, models.ErrPermission)
	}
	return list, nil
}
