package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Unit is the sale unit of a product.
type Unit string

const (
	UnitPiece Unit = "piece"
	UnitPack  Unit = "pack"
	UnitBox   Unit = "box"
)

// Valid reports whether the unit is one of the supported values.
func (u Unit) Valid() bool {
	return u == UnitPiece || u == UnitPack || u == UnitBox
}

// LowStockThreshold is the fixed stock level below which a product counts as
// low stock.
const LowStockThreshold = 10

// Product is a catalog entry. StoreID is nil for unscoped legacy products
// that belong to no particular store.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	StoreID     *uuid.UUID      `json:"store_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Unit        Unit            `json:"unit"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsStoreOwned reports whether the product belongs to a store.
func (p *Product) IsStoreOwned() bool { return p.StoreID != nil }

// OwnedBy reports whether the product belongs to the given store.
func (p *Product) OwnedBy(storeID uuid.UUID) bool {
	return p.StoreID != nil && *p.StoreID == storeID
}

// IsLowStock reports whether stock is under the fixed threshold.
func (p *Product) IsLowStock() bool { return p.Stock < LowStockThreshold }

// CreateRequest is the payload for creating a product.
type CreateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Unit        Unit            `json:"unit"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	// StoreID may only be set by a super-admin; store accounts always
	// create products under their own id.
	StoreID *uuid.UUID `json:"store_id,omitempty"`
}

// UpdateRequest is a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Unit        *Unit            `json:"unit,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Category    *string          `json:"category,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
}
