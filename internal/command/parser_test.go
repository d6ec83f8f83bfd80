package command

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParse_SetBudget(t *testing.T) {
	cmd, err := Parse("set budget june groceries 3000 transport 1500")
	require.NoError(t, err)

	budget, ok := cmd.(SetBudget)
	require.True(t, ok)
	require.Equal(t, "June", budget.Month)
	require.Len(t, budget.Items, 2)
	require.Equal(t, "Groceries", budget.Items[0].Category)
	require.True(t, budget.Items[0].Amount.Equal(decimal.NewFromInt(3000)))
	require.Equal(t, "Transport", budget.Items[1].Category)
	require.True(t, budget.Items[1].Amount.Equal(decimal.NewFromInt(1500)))
}

func TestParse_SetBudgetNumericMonth(t *testing.T) {
	cmd, err := Parse("SET BUDGET 2024-06 Groceries 3000")
	require.NoError(t, err)

	budget, ok := cmd.(SetBudget)
	require.True(t, ok)
	require.Equal(t, "June", budget.Month)
}

func TestParse_SpendRoundTrip(t *testing.T) {
	cmd, err := Parse("spent 500 on groceries")
	require.NoError(t, err)

	spend, ok := cmd.(Spend)
	require.True(t, ok)
	require.Equal(t, "Groceries", spend.Category)
	require.True(t, spend.Amount.Equal(decimal.NewFromInt(500)))
}

func TestParse_Owe(t *testing.T) {
	cmd, err := Parse("owe Raju from work 500.50")
	require.NoError(t, err)

	owe, ok := cmd.(Owe)
	require.True(t, ok)
	require.Equal(t, "Raju from work", owe.Description)
	require.True(t, owe.Amount.Equal(decimal.RequireFromString("500.50")))
}

func TestParse_Bill(t *testing.T) {
	cmd, err := Parse("bill rent 12000 due 2024-07-01")
	require.NoError(t, err)

	bill, ok := cmd.(Bill)
	require.True(t, ok)
	require.Equal(t, "rent", bill.Description)
	require.True(t, bill.Amount.Equal(decimal.NewFromInt(12000)))
	require.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), bill.DueDate)
}

func TestParse_Summary(t *testing.T) {
	cmd, err := Parse("summary")
	require.NoError(t, err)
	require.Equal(t, Summary{}, cmd)

	cmd, err = Parse("summary june")
	require.NoError(t, err)
	require.Equal(t, Summary{Month: "June"}, cmd)
}

func TestParse_Errors(t *testing.T) {
	testTable := []struct {
		name   string
		text   string
		reason Reason
		token  string
	}{
		{
			name:   "question goes to the assistant",
			text:   "what's a mutual fund?",
			reason: Unrecognized,
		},
		{
			name:   "empty message",
			text:   "   ",
			reason: Unrecognized,
		},
		{
			name:   "set without budget keyword",
			text:   "set groceries 3000",
			reason: Unrecognized,
		},
		{
			name:   "budget without amount pair",
			text:   "set budget june groceries",
			reason: MissingField,
		},
		{
			name:   "budget with dangling category",
			text:   "set budget june groceries 3000 transport",
			reason: MissingField,
		},
		{
			name:   "budget with bad amount",
			text:   "set budget june groceries lots",
			reason: InvalidAmount,
			token:  "lots",
		},
		{
			name:   "spend without on",
			text:   "spent 500 groceries",
			reason: MissingField,
		},
		{
			name:   "spend with bad amount",
			text:   "spent abc on groceries",
			reason: InvalidAmount,
			token:  "abc",
		},
		{
			name:   "spend with negative amount",
			text:   "spent -5 on groceries",
			reason: InvalidAmount,
			token:  "-5",
		},
		{
			name:   "owe without amount",
			text:   "owe raju",
			reason: MissingField,
		},
		{
			name:   "owe with bad amount",
			text:   "owe raju five",
			reason: InvalidAmount,
			token:  "five",
		},
		{
			name:   "bill without due date",
			text:   "bill rent 12000",
			reason: MissingField,
		},
		{
			name:   "bill with impossible date",
			text:   "bill rent 12000 due 2024-13-01",
			reason: InvalidDate,
			token:  "2024-13-01",
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			cmd, err := Parse(testCase.text)
			require.Nil(t, cmd)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			require.Equal(t, testCase.reason, parseErr.Reason)
			if testCase.token != "" {
				require.Equal(t, testCase.token, parseErr.Token)
			}
		})
	}
}

func TestNormalizeMonth(t *testing.T) {
	testTable := []struct {
		token  string
		result string
	}{
		{token: "june", result: "June"},
		{token: "JUNE", result: "June"},
		{token: "2024-06", result: "June"},
		{token: "2023-12", result: "December"},
		{token: "juneish", result: "Juneish"},
	}

	for _, testCase := range testTable {
		t.Run(testCase.token, func(t *testing.T) {
			require.Equal(t, testCase.result, NormalizeMonth(testCase.token))
		})
	}
}
