package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gullak-ai/gullak/internal/model"
	"github.com/gullak-ai/gullak/internal/repository"
)

// Reporter builds the month summary over a user's live records.
type Reporter struct {
	ledger    repository.Ledger
	lookahead time.Duration
}

func NewReporter(ledger repository.Ledger, lookahead time.Duration) *Reporter {
	return &Reporter{
		ledger:    ledger,
		lookahead: lookahead,
	}
}

// Summarize aggregates budgets, spending, debts and bills for the user. An
// empty month means the current calendar month. Debts and bills are not
// month-filtered: a live debt stays current until it expires, and bills are
// classified against the due date instead.
func (r *Reporter) Summarize(ctx context.Context, userID, month string) (*model.Report, error) {
	now := time.Now().UTC()
	if month == "" {
		month = now.Month().String()
	}

	records, err := r.ledger.Query(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("reporter couldn't query records: %v", err)
	}

	report := model.Report{
		UserID:     userID,
		Month:      month,
		Categories: make(map[string]model.CategoryReport),
	}
	for i := range records {
		rec := records[i]
		switch rec.Kind {
		case model.KindBudget:
			if rec.Month != month {
				continue
			}
			category := report.Categories[rec.Category]
			category.Budget = rec.Amount
			report.Categories[rec.Category] = category
		case model.KindExpense:
			if rec.Month != month {
				continue
			}
			category := report.Categories[rec.Category]
			category.Spent = category.Spent.Add(rec.Amount)
			report.Categories[rec.Category] = category
		case model.KindDebt:
			report.Debts = append(report.Debts, model.DebtReport{
				Description: rec.Category,
				Amount:      rec.Amount,
			})
		case model.KindBill:
			report.Bills = append(report.Bills, model.BillReport{
				Description: rec.Category,
				Amount:      rec.Amount,
				DueDate:     rec.DueDate,
				Status:      billStatus(rec.DueDate, now, r.lookahead),
			})
		}
	}

	for name, category := range report.Categories {
		category.Remaining = category.Budget.Sub(category.Spent)
		category.Unbudgeted = category.Budget.Equal(decimal.Zero) && category.Spent.GreaterThan(decimal.Zero)
		report.Categories[name] = category
	}
	return &report, nil
}

// billStatus classifies at day granularity: a bill due today is upcoming,
// not overdue.
func billStatus(due, now time.Time, lookahead time.Duration) model.BillStatus {
	today := now.Truncate(24 * time.Hour)
	switch {
	case due.Before(today):
		return model.BillOverdue
	case !due.After(today.Add(lookahead)):
		return model.BillUpcoming
	default:
		return model.BillLater
	}
}
