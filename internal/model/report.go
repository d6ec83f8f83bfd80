package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type BillStatus string

const (
	BillOverdue  BillStatus = "overdue"
	BillUpcoming BillStatus = "upcoming"
	BillLater    BillStatus = "later"
)

// CategoryReport holds the numbers for one spending category in a month.
// Remaining may be negative when the category is over budget.
type CategoryReport struct {
	Budget     decimal.Decimal
	Spent      decimal.Decimal
	Remaining  decimal.Decimal
	Unbudgeted bool
}

type DebtReport struct {
	Description string
	Amount      decimal.Decimal
}

type BillReport struct {
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
	Status      BillStatus
}

// Report is the structured form of a month summary. Debts are not
// month-filtered: a live debt stays current until it expires.
type Report struct {
	UserID     string
	Month      string
	Categories map[string]CategoryReport
	Debts      []DebtReport
	Bills      []BillReport
}

// SpendStatus is returned after recording an expense so the caller can tell
// the user where the category stands against its budget.
type SpendStatus struct {
	Category string
	Month    string
	Amount   decimal.Decimal
	Spent    decimal.Decimal
	Budget   decimal.Decimal
	Budgeted bool
}

func (s *SpendStatus) Over() decimal.Decimal {
	return s.Spent.Sub(s.Budget)
}

// PowerComparison is the result of comparing purchasing power of two cities.
type PowerComparison struct {
	CityA  string
	CityB  string
	IndexA float64
	IndexB float64
	Ratio  float64
}

func (c *PowerComparison) Statement() string {
	return fmt.Sprintf("a salary of 100 in %s buys what %.2f buys in %s (index %.1f vs %.1f)",
		c.CityA, 100*c.Ratio, c.CityB, c.IndexA, c.IndexB)
}
