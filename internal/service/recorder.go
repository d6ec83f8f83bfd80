package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/gullak-ai/gullak/internal/command"
	"github.com/gullak-ai/gullak/internal/model"
	"github.com/gullak-ai/gullak/internal/repository"
)

// Recorder applies parsed commands to the ledger. Once a command has parsed,
// a failure here is returned upstream, never swallowed.
type Recorder struct {
	ledger   repository.Ledger
	validate *validator.Validate
}

func NewRecorder(ledger repository.Ledger, validate *validator.Validate) *Recorder {
	return &Recorder{
		ledger:   ledger,
		validate: validate,
	}
}

func (r *Recorder) SetBudget(ctx context.Context, userID, month string, items []command.BudgetItem) error {
	if err := r.validate.Var(userID, "required"); err != nil {
		return fmt.Errorf("recorder set budget: missing user id: %v", err)
	}
	for _, item := range items {
		if err := r.ledger.SetBudget(ctx, userID, month, item.Category, item.Amount); err != nil {
			return fmt.Errorf("recorder couldn't set budget %s/%s: %v", month, item.Category, err)
		}
	}
	return nil
}

// Spend records an expense in the current month and reports the running
// total against the category budget, if one is set.
func (r *Recorder) Spend(ctx context.Context, userID string, amount decimal.Decimal, category string) (*model.SpendStatus, error) {
	month := time.Now().UTC().Month().String()
	record := model.Record{
		Kind:     model.KindExpense,
		UserID:   userID,
		Month:    month,
		Category: category,
		Amount:   amount,
	}
	if err := r.insert(ctx, &record); err != nil {
		return nil, err
	}

	expenses, err := r.ledger.Query(ctx, userID, func(rec *model.Record) bool {
		return rec.Kind == model.KindExpense && rec.Month == month && rec.Category == category
	})
	if err != nil {
		return nil, fmt.Errorf("recorder couldn't query expenses: %v", err)
	}
	spent := decimal.Zero
	for i := range expenses {
		spent = spent.Add(expenses[i].Amount)
	}

	status := model.SpendStatus{
		Category: category,
		Month:    month,
		Amount:   amount,
		Spent:    spent,
	}
	budgets, err := r.ledger.Query(ctx, userID, func(rec *model.Record) bool {
		return rec.Kind == model.KindBudget && rec.Month == month && rec.Category == category
	})
	if err != nil {
		return nil, fmt.Errorf("recorder couldn't query budgets: %v", err)
	}
	if len(budgets) > 0 {
		status.Budgeted = true
		status.Budget = budgets[len(budgets)-1].Amount
	}
	return &status, nil
}

func (r *Recorder) Owe(ctx context.Context, userID, description string, amount decimal.Decimal) error {
	return r.insert(ctx, &model.Record{
		Kind:     model.KindDebt,
		UserID:   userID,
		Category: description,
		Amount:   amount,
	})
}

func (r *Recorder) AddBill(ctx context.Context, userID, description string, amount decimal.Decimal, due time.Time) error {
	return r.insert(ctx, &model.Record{
		Kind:     model.KindBill,
		UserID:   userID,
		Category: description,
		Amount:   amount,
		DueDate:  due,
	})
}

func (r *Recorder) insert(ctx context.Context, record *model.Record) error {
	if err := r.validate.Struct(record); err != nil {
		return fmt.Errorf("recorder refused invalid %s record: %v", record.Kind, err)
	}
	if record.Amount.IsNegative() {
		return fmt.Errorf("recorder refused negative %s amount: %s", record.Kind, record.Amount)
	}
	if err := r.ledger.Insert(ctx, record); err != nil {
		return fmt.Errorf("recorder couldn't insert %s record: %v", record.Kind, err)
	}
	return nil
}
