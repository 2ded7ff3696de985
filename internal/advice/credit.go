package advice

import (
	"fmt"
	"strings"

	"finbot/internal/core"
)

// CreditAnalysis renders a score result with its factor breakdown and the
// recommendations that apply to the weaker factors.
func CreditAnalysis(res core.ScoreResult) string {
	f := res.Factors

	var b strings.Builder
	b.WriteString("Credit Score Analysis (Simulation)\n\n")
	fmt.Fprintf(&b, "Your Simulated Score: %d\n", res.Score)
	fmt.Fprintf(&b, "Rating: %s\n\n", res.Rating)

	b.WriteString("Factors Analyzed:\n")
	fmt.Fprintf(&b, "- Debt-to-Income Ratio: %.1f%%\n", f.DebtToIncome*100)
	fmt.Fprintf(&b, "- Savings Rate: %.1f%%\n", f.SavingsRate*100)
	fmt.Fprintf(&b, "- Payment History: %s\n", f.PaymentHistory)
	fmt.Fprintf(&b, "- Credit Utilization: %.1f%%\n", f.CreditUtilization*100)
	fmt.Fprintf(&b, "- Credit History: %d years\n\n", f.CreditHistoryYears)

	b.WriteString("Recommendations:\n")
	var recs []string
	if f.DebtToIncome > 0.43 {
		recs = append(recs, "- Reduce your debt-to-income ratio. A ratio below 36-43% is generally considered healthy.")
	}
	if f.SavingsRate < 0.1 {
		recs = append(recs, "- Increase your savings rate. Aiming for 15-20% is a great goal for financial security.")
	}
	if f.CreditUtilization > 0.3 {
		recs = append(recs, "- Lower your credit utilization. Keeping used credit below 30% of your total limit is ideal.")
	}
	if len(recs) == 0 {
		b.WriteString("- Keep up the great work! Your financial habits are strong. Continue to monitor your finances regularly.\n")
	} else {
		b.WriteString(strings.Join(recs, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}
