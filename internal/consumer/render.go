package consumer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gullak-ai/gullak/internal/model"
)

func formatReport(report *model.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "summary for %s\n", report.Month)

	if len(report.Categories) == 0 {
		b.WriteString("no budgets or spending for this month\n")
	} else {
		sortedCategories := make([]string, 0, len(report.Categories))
		for name := range report.Categories {
			sortedCategories = append(sortedCategories, name)
		}
		sort.Strings(sortedCategories)

		totalSpent := decimal.Zero
		for _, name := range sortedCategories {
			category := report.Categories[name]
			totalSpent = totalSpent.Add(category.Spent)
			switch {
			case category.Unbudgeted:
				fmt.Fprintf(&b, "%s - spent %s (unbudgeted)\n", name, category.Spent.StringFixed(2))
			case category.Remaining.IsNegative():
				fmt.Fprintf(&b, "%s - spent %s / budget %s (over by %s)\n",
					name, category.Spent.StringFixed(2), category.Budget.StringFixed(2), category.Remaining.Neg().StringFixed(2))
			default:
				fmt.Fprintf(&b, "%s - spent %s / budget %s (remaining %s)\n",
					name, category.Spent.StringFixed(2), category.Budget.StringFixed(2), category.Remaining.StringFixed(2))
			}
		}
		fmt.Fprintf(&b, "total spent - %s\n", totalSpent.StringFixed(2))
	}

	if len(report.Debts) > 0 {
		b.WriteString("\ndebts\n")
		for _, debt := range report.Debts {
			fmt.Fprintf(&b, "owe %s - %s\n", debt.Description, debt.Amount.StringFixed(2))
		}
	}

	if len(report.Bills) > 0 {
		b.WriteString("\nbills\n")
		for _, bill := range report.Bills {
			fmt.Fprintf(&b, "%s - %s due %s (%s)\n",
				bill.Description, bill.Amount.StringFixed(2), bill.DueDate.Format("2006-01-02"), bill.Status)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
