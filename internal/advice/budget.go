package advice

import (
	"fmt"
	"strings"

	"finbot/internal/core"
)

const (
	highExpenseShare = 0.8 // expenses above this share of income get flagged
	lowSavingsShare  = 0.1 // savings below this share of income get flagged
)

// BudgetSummary reports ledger totals, net cash flow and conditional
// recommendations.
func BudgetSummary(totals core.LedgerTotals) string {
	income := totals.Income.Rupees()
	expenses := totals.Expenses.Rupees()
	savings := totals.Savings.Rupees()
	net := core.Money{Cents: totals.Income.Cents - totals.Expenses.Cents}

	var b strings.Builder
	b.WriteString("Budget Summary\n\n")
	fmt.Fprintf(&b, "Total Income:   %s\n", totals.Income.Format())
	fmt.Fprintf(&b, "Total Expenses: %s\n", totals.Expenses.Format())
	fmt.Fprintf(&b, "Total Savings:  %s\n", totals.Savings.Format())
	fmt.Fprintf(&b, "Net Cash Flow:  %s\n\n", net.Format())

	b.WriteString("Recommendations:\n")
	if income > 0 {
		if expenses > income*highExpenseShare {
			b.WriteString("- Your expenses are high relative to income. Consider reducing non-essential spending.\n")
		}
		if savings < income*lowSavingsShare {
			b.WriteString("- Aim to save at least 10-20% of your income for emergencies and future goals.\n")
		}
	}
	if net.Cents > 0 {
		b.WriteString("- Great job! You have positive cash flow. Consider investing the surplus.\n")
	} else {
		b.WriteString("- You're spending more than you earn. Focus on reducing expenses or increasing income.\n")
	}
	return b.String()
}
