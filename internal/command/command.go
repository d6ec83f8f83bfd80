// Package command maps raw chat text onto a closed set of typed ledger
// commands. Parsing is pure: no I/O, no clock, no side effects.
package command

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Reason string

const (
	Unrecognized  Reason = "unrecognized"
	InvalidAmount Reason = "invalid amount"
	InvalidDate   Reason = "invalid date"
	MissingField  Reason = "missing field"
)

// ParseError reports why a message is not a valid ledger command. Token names
// the offending token where there is one. An Unrecognized error tells the
// caller to route the message elsewhere, it is never fatal.
type ParseError struct {
	Reason Reason
	Token  string
	Usage  string
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s: %q", e.Reason, e.Token)
	}
	return string(e.Reason)
}

type Command interface {
	isCommand()
}

type BudgetItem struct {
	Category string
	Amount   decimal.Decimal
}

// SetBudget carries one item per category/amount pair, all sharing Month.
type SetBudget struct {
	Month string
	Items []BudgetItem
}

type Spend struct {
	Category string
	Amount   decimal.Decimal
}

type Owe struct {
	Description string
	Amount      decimal.Decimal
}

type Bill struct {
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
}

// Summary with an empty Month means the current calendar month.
type Summary struct {
	Month string
}

func (SetBudget) isCommand() {}
func (Spend) isCommand()     {}
func (Owe) isCommand()       {}
func (Bill) isCommand()      {}
func (Summary) isCommand()   {}
