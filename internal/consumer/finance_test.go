package consumer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/gullak-ai/gullak/internal/repository"
	"github.com/gullak-ai/gullak/internal/service"
)

// newFinance wires a finance consumer over a fresh in-memory ledger. The bot
// and updates channel stay nil: handle never touches them.
func newFinance() *Finance {
	ledger := repository.NewLocalLedger(7 * 24 * time.Hour)
	validate := validator.New()
	recorder := service.NewRecorder(ledger, validate)
	reporter := service.NewReporter(ledger, 7*24*time.Hour)
	power := service.NewPower(repository.NewLocalCityIndex(map[string]float64{
		"Hyderabad, India": 154.1,
		"Bangalore, India": 149.7,
	}))
	return NewFinance(nil, "42", nil, validate, recorder, reporter, power, service.NewCanned())
}

func TestFinance_BudgetSpendSummaryFlow(t *testing.T) {
	f := newFinance()
	ctx := context.Background()
	month := time.Now().UTC().Month().String()

	reply := f.handle(ctx, "set budget "+strings.ToLower(month)+" groceries 3000")
	require.Contains(t, reply, "budget set for "+month)
	require.Contains(t, reply, "Groceries 3000.00")

	reply = f.handle(ctx, "spent 500 on groceries")
	require.Contains(t, reply, "recorded spending 500.00 on Groceries")
	require.Contains(t, reply, "500.00 / 3000.00")

	reply = f.handle(ctx, "spent 2700 on groceries")
	require.Contains(t, reply, "exceeded your Groceries budget by 200.00")

	reply = f.handle(ctx, "summary "+strings.ToLower(month))
	require.Contains(t, reply, "summary for "+month)
	require.Contains(t, reply, "Groceries - spent 3200.00 / budget 3000.00 (over by 200.00)")
}

func TestFinance_SpendWithoutBudget(t *testing.T) {
	f := newFinance()
	ctx := context.Background()

	reply := f.handle(ctx, "spent 500 on groceries")
	require.Contains(t, reply, "no budget set for Groceries")

	reply = f.handle(ctx, "summary")
	require.Contains(t, reply, "Groceries - spent 500.00 (unbudgeted)")
}

func TestFinance_OweAndBill(t *testing.T) {
	f := newFinance()
	ctx := context.Background()

	reply := f.handle(ctx, "owe Raju 500")
	require.Contains(t, reply, "debt recorded: owe Raju 500.00")

	reply = f.handle(ctx, "bill rent 12000 due 2024-07-01")
	require.Contains(t, reply, "bill recorded: rent 12000.00, due 2024-07-01")

	reply = f.handle(ctx, "summary")
	require.Contains(t, reply, "owe Raju - 500.00")
	require.Contains(t, reply, "rent - 12000.00 due 2024-07-01 (overdue)")
}

func TestFinance_UnrecognizedGoesToAssistant(t *testing.T) {
	f := newFinance()
	ctx := context.Background()

	reply := f.handle(ctx, "what's a mutual fund?")
	require.Contains(t, reply, "mutual fund")

	// the question must not have touched the ledger
	reply = f.handle(ctx, "summary")
	require.Contains(t, reply, "no budgets or spending for this month")
}

func TestFinance_Compare(t *testing.T) {
	f := newFinance()
	ctx := context.Background()

	reply := f.handle(ctx, "compare hyderabad vs bangalore")
	require.Contains(t, reply, "Hyderabad, India")
	require.Contains(t, reply, "Bangalore, India")

	reply = f.handle(ctx, "compare Atlantis vs Bangalore")
	require.Contains(t, reply, "Atlantis")
	require.Contains(t, reply, "not found")

	reply = f.handle(ctx, "compare hyderabad")
	require.Contains(t, reply, "compare <cityA> vs <cityB>")
}

func TestFinance_CorrectionPrompts(t *testing.T) {
	f := newFinance()
	ctx := context.Background()

	reply := f.handle(ctx, "spent abc on food")
	require.Contains(t, reply, "abc")

	reply = f.handle(ctx, "bill rent 100 due tomorrow")
	require.Contains(t, reply, "tomorrow")

	reply = f.handle(ctx, "spent 100 food")
	require.Contains(t, reply, "spent <amount> on <category>")

	reply = f.handle(ctx, strings.Repeat("a", 600))
	require.Contains(t, reply, "512")
}
