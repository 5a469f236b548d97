package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category is the fixed set of item categories.
type Category string

const (
	CategoryProduce Category = "Produce"
	CategoryDeli    Category = "Deli"
	CategoryBakery  Category = "Bakery"
	CategoryPantry  Category = "Pantry"
	CategoryFrozen  Category = "Frozen"
	CategoryOther   Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryProduce,
	CategoryDeli,
	CategoryBakery,
	CategoryPantry,
	CategoryFrozen,
	CategoryOther,
}

// ParseCategory matches s against the category names ignoring case.
// Blank or unknown values resolve to CategoryOther.
func ParseCategory(s string) Category {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if strings.ToLower(string(c)) == s {
			return c
		}
	}
	return CategoryOther
}

// Domain types

type Store struct {
	ID      int64  `db:"id" json:"id"`
	Title   string `db:"title" json:"title"`
	Address string `db:"address" json:"address"`
	Items   []Item `db:"-" json:"items,omitempty"`
}

type Item struct {
	ID       int64           `db:"id" json:"id"`
	Name     string          `db:"name" json:"name"`
	Price    decimal.Decimal `db:"price" json:"price"`
	Category Category        `db:"category" json:"category"`
	PhotoURL *string         `db:"photo_url" json:"photo_url,omitempty"`
	StoreID  int64           `db:"store_id" json:"store_id"`
	Store    *Store          `db:"-" json:"store,omitempty"`
}

type ShoppingList struct {
	ID        int64       `db:"id" json:"id"`
	Name      string      `db:"name" json:"name"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	UserID    int64       `db:"user_id" json:"user_id"`
	Entries   []ListEntry `db:"-" json:"entries,omitempty"`
}

// ListEntry is one row of the list/item association.
type ListEntry struct {
	ShoppingListID int64 `db:"shopping_list_id" json:"shopping_list_id"`
	ItemID         int64 `db:"item_id" json:"item_id"`
	Quantity       int   `db:"quantity" json:"quantity"`
	Item           Item  `db:"-" json:"item"`
}

// Subtotal returns the entry's item price times its quantity.
func (e ListEntry) Subtotal() decimal.Decimal {
	return e.Item.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// QuantityOf returns how many of itemID are on the list, 0 if absent.
func (l *ShoppingList) QuantityOf(itemID int64) int {
	for _, e := range l.Entries {
		if e.ItemID == itemID {
			return e.Quantity
		}
	}
	return 0
}

// TotalPrice sums price × quantity over all entries. Never stored.
func (l *ShoppingList) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.Entries {
		total = total.Add(e.Subtotal())
	}
	return total
}

type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password" json:"-"` // Never expose in JSON
}

// Request types

type StoreInput struct {
	Title   string `json:"title" validate:"required,max=80"`
	Address string `json:"address" validate:"required,max=200"`
}

type ItemInput struct {
	Name     string           `json:"name" validate:"required,max=80"`
	Price    *decimal.Decimal `json:"price"`
	Category string           `json:"category"`
	PhotoURL string           `json:"photo_url" validate:"omitempty,http_url"`
	StoreID  int64            `json:"store_id" validate:"required"`
}

type ShoppingListInput struct {
	Name string `json:"name" validate:"required,max=80"`
}

// Quantity is optional and defaults to 1
type ListEntryInput struct {
	ItemID   int64 `json:"item_id" validate:"required"`
	Quantity *int  `json:"quantity"`
}

type SignUpInput struct {
	Username        string `json:"username" validate:"required,min=3,max=80"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Next     string `json:"next"`
}

// View types

type HomeView struct {
	Stores  []Store  `json:"stores"`
	Flashes []string `json:"flashes,omitempty"`
}

type StoreView struct {
	Store   Store    `json:"store"`
	Flashes []string `json:"flashes,omitempty"`
}

// ItemFormView carries the choices needed to fill an item form.
type ItemFormView struct {
	Stores     []Store    `json:"stores"`
	Categories []Category `json:"categories"`
	Flashes    []string   `json:"flashes,omitempty"`
}

type ItemView struct {
	Item       Item       `json:"item"`
	Stores     []Store    `json:"stores"`
	Categories []Category `json:"categories"`
	Flashes    []string   `json:"flashes,omitempty"`
}

type ShoppingListsView struct {
	Lists   []ShoppingList `json:"lists"`
	Flashes []string       `json:"flashes,omitempty"`
}

type ShoppingListView struct {
	List       ShoppingList    `json:"list"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Items      []Item          `json:"items"` // choices for the add-entry form
	Flashes    []string        `json:"flashes,omitempty"`
}

type FormView struct {
	Form    string   `json:"form"`
	Next    string   `json:"next,omitempty"`
	Flashes []string `json:"flashes,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}
