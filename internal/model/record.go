package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindBudget  Kind = "budget"
	KindExpense Kind = "expense"
	KindDebt    Kind = "debt"
	KindBill    Kind = "bill"
)

// Record is one logged financial event. CreatedAt is stamped once at insertion
// and drives expiration; it is never mutated afterwards.
type Record struct {
	ID        uuid.UUID
	Kind      Kind   `validate:"required,oneof=budget expense debt bill"`
	UserID    string `validate:"required"`
	Month     string // capitalized month name, set for budgets and expenses
	Category  string `validate:"required"`
	Amount    decimal.Decimal
	DueDate   time.Time // bills only
	CreatedAt time.Time
}
