package command

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	setBudgetUsage = "set budget <month> <category1> <amount1> <category2> <amount2> ..."
	spendUsage     = "spent <amount> on <category>"
	oweUsage       = "owe <person/description> <amount>"
	billUsage      = "bill <description> <amount> due YYYY-MM-DD"
)

var (
	spendExp = regexp.MustCompile(`(?i)^spent\s+(\S+)\s+on\s+(.+)$`)
	oweExp   = regexp.MustCompile(`(?i)^owe\s+(.+?)\s+(\S+)$`)
	billExp  = regexp.MustCompile(`(?i)^bill\s+(.+?)\s+(\S+)\s+due\s+(\S+)$`)
)

// Parse maps one chat message onto a typed command. Matching is
// case-insensitive and whitespace-tolerant. Any text outside the fixed
// grammar comes back as an Unrecognized parse error so the caller can route
// it to the conversational assistant instead.
func Parse(raw string) (Command, error) {
	text := strings.TrimSpace(raw)
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, &ParseError{Reason: Unrecognized}
	}

	switch strings.ToLower(fields[0]) {
	case "set":
		if len(fields) < 2 || !strings.EqualFold(fields[1], "budget") {
			return nil, &ParseError{Reason: Unrecognized}
		}
		return parseSetBudget(fields)
	case "spent":
		return parseSpend(text)
	case "owe":
		return parseOwe(text)
	case "bill":
		return parseBill(text)
	case "summary":
		if len(fields) == 1 {
			return Summary{}, nil
		}
		return Summary{Month: NormalizeMonth(fields[1])}, nil
	}
	return nil, &ParseError{Reason: Unrecognized}
}

func parseSetBudget(fields []string) (Command, error) {
	// set budget <month> plus at least one category/amount pair
	if len(fields) < 5 || (len(fields)-3)%2 != 0 {
		return nil, &ParseError{Reason: MissingField, Usage: setBudgetUsage}
	}
	cmd := SetBudget{Month: NormalizeMonth(fields[2])}
	for i := 3; i < len(fields); i += 2 {
		amount, err := parseAmount(fields[i+1])
		if err != nil {
			return nil, err
		}
		cmd.Items = append(cmd.Items, BudgetItem{
			Category: capitalize(fields[i]),
			Amount:   amount,
		})
	}
	return cmd, nil
}

func parseSpend(text string) (Command, error) {
	m := spendExp.FindStringSubmatch(text)
	if m == nil {
		return nil, &ParseError{Reason: MissingField, Usage: spendUsage}
	}
	amount, err := parseAmount(m[1])
	if err != nil {
		return nil, err
	}
	return Spend{Category: capitalize(m[2]), Amount: amount}, nil
}

func parseOwe(text string) (Command, error) {
	m := oweExp.FindStringSubmatch(text)
	if m == nil {
		return nil, &ParseError{Reason: MissingField, Usage: oweUsage}
	}
	amount, err := parseAmount(m[2])
	if err != nil {
		return nil, err
	}
	return Owe{Description: strings.TrimSpace(m[1]), Amount: amount}, nil
}

func parseBill(text string) (Command, error) {
	m := billExp.FindStringSubmatch(text)
	if m == nil {
		return nil, &ParseError{Reason: MissingField, Usage: billUsage}
	}
	amount, err := parseAmount(m[2])
	if err != nil {
		return nil, err
	}
	due, perr := time.Parse("2006-01-02", m[3])
	if perr != nil {
		return nil, &ParseError{Reason: InvalidDate, Token: m[3], Usage: billUsage}
	}
	return Bill{Description: strings.TrimSpace(m[1]), Amount: amount, DueDate: due}, nil
}

func parseAmount(token string) (decimal.Decimal, *ParseError) {
	amount, err := decimal.NewFromString(token)
	if err != nil || amount.IsNegative() {
		return decimal.Zero, &ParseError{Reason: InvalidAmount, Token: token}
	}
	return amount, nil
}

// NormalizeMonth canonicalises a month token to the capitalized English month
// name. Accepts full month names in any case and the YYYY-MM form; anything
// else is kept as entered, capitalized.
func NormalizeMonth(token string) string {
	if t, err := time.Parse("2006-01", token); err == nil {
		return t.Month().String()
	}
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), token) {
			return m.String()
		}
	}
	return capitalize(token)
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
