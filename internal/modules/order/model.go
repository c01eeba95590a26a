package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/savdohub/savdo-backend/internal/modules/product"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// validTransitions defines the allowed status state machine. Completed and
// cancelled are terminal.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

// Terminal reports whether no further transition is allowed out of s.
func (s Status) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// CanTransition reports whether the from→to edge exists in the state machine.
func CanTransition(from, to Status) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Item is one line of an order. Name, unit price and unit label are
// snapshots taken at order time; later product edits never reach them.
type Item struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Unit      product.Unit    `json:"unit"`
}

// Extension is the line total: unit price times quantity.
func (it Item) Extension() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Order is a customer checkout. It is linked to the customer only by phone;
// customers can order without an account.
type Order struct {
	ID        uuid.UUID       `json:"id"`
	Phone     string          `json:"phone"`
	Address   string          `json:"address"`
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateItem names a product and quantity in a checkout request.
type CreateItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// CreateRequest is the payload for POST /api/orders. Totals are computed
// server-side; anything the client sends for them is ignored.
type CreateRequest struct {
	Phone   string       `json:"phone"`
	Name    string       `json:"name,omitempty"`
	Address string       `json:"address"`
	Items   []CreateItem `json:"items"`
}

// UpdateStatusRequest is the payload for PATCH /api/orders/{id}.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
