package advice

import (
	"fmt"
	"strings"

	"finbot/internal/core"
)

// NeedIncomeMessage directs the user to the data-entry panel when savings
// advice is requested before any income has been recorded.
const NeedIncomeMessage = "Please add your income details in the Financial Data tab for personalized savings advice."

const (
	healthCoverFloor           = 500000.0 // minimum health insurance cover
	healthCoverExpenseMonths   = 24
	criticalCoverExpenseMonths = 36
	emergencyFundMonthsMin     = 6
	emergencyFundMonthsMax     = 12
)

// Savings produces the comprehensive savings plan text from the ledger
// totals and an optional profile (the profile contributes only the age
// band; when absent, age 30 is assumed as in the original behavior).
func Savings(p *core.Profile, totals core.LedgerTotals) string {
	income := totals.Income.Rupees()
	if income == 0 {
		return NeedIncomeMessage
	}
	expenses := totals.Expenses.Rupees()
	savings := totals.Savings.Rupees()

	rate := core.SavingsRate(income, savings) * 100
	age := 30
	if p != nil {
		age = p.Age
	}

	var b strings.Builder
	b.WriteString("Comprehensive Savings Plan\n\nCurrent Status:\n")
	fmt.Fprintf(&b, "- Monthly Income: %s\n", totals.Income.Format())
	fmt.Fprintf(&b, "- Monthly Expenses: %s\n", totals.Expenses.Format())
	fmt.Fprintf(&b, "- Current Savings Rate: %.1f%%\n", rate)
	fmt.Fprintf(&b, "- Net Monthly Surplus: %s\n\n", core.FormatRupees(income-expenses))

	b.WriteString("Essential Financial Goals:\n\n")

	b.WriteString("1. Emergency Fund\n")
	fmt.Fprintf(&b, "   - Target: %d-%d months of expenses\n", emergencyFundMonthsMin, emergencyFundMonthsMax)
	fmt.Fprintf(&b, "   - Required: %s - %s\n", core.FormatRupees(expenses*emergencyFundMonthsMin), core.FormatRupees(expenses*emergencyFundMonthsMax))
	b.WriteString("   - Keep in high-liquidity options: savings account, short-term fixed deposits, liquid mutual funds\n\n")

	health := expenses * healthCoverExpenseMonths
	if health < healthCoverFloor {
		health = healthCoverFloor
	}
	lifeCoverCr := float64(int(income*12*10/100000+0.5)) / 10
	if lifeCoverCr < 10 {
		lifeCoverCr = 10
	}
	b.WriteString("2. Insurance Coverage\n")
	fmt.Fprintf(&b, "   - Health Insurance: %s minimum cover\n", core.FormatRupees(health))
	fmt.Fprintf(&b, "   - Term Life: %.1f Cr cover suggested\n", lifeCoverCr)
	fmt.Fprintf(&b, "   - Critical Illness Cover: %s\n\n", core.FormatRupees(expenses*criticalCoverExpenseMonths))

	b.WriteString("3. Monthly Savings Allocation\n")
	fmt.Fprintf(&b, "   - Minimum Target: 20%% (%s)\n", core.FormatRupees(income*0.2))
	fmt.Fprintf(&b, "   - Ideal Target: 30%% (%s)\n", core.FormatRupees(income*0.3))
	fmt.Fprintf(&b, "   - Your Potential: %s\n", core.FormatRupees(income-expenses))
	b.WriteString(`   Suggested split: emergency fund 40% until target reached, retirement 30%, short-term goals 20%, discretionary 10%

4. Goal-based Savings
   - Short-term (1-3 years): emergency fund, large purchases, debt repayment plan
   - Medium-term (3-7 years): house down payment, higher education, vehicle
   - Long-term (7+ years): retirement corpus, children's education, wealth creation

5. Retirement Planning
`)
	b.WriteString(retirementPlan(age, income))

	b.WriteString(`
Smart Saving Strategies:
1. Automate your savings
2. Use the 50-30-20 rule: 50% needs, 30% wants, 20% savings
3. Track expenses regularly
4. Review and adjust monthly
5. Consider tax-saving investments
6. Build multiple income streams
`)

	b.WriteString(savingsRateActions(rate))
	return b.String()
}

// retirementPlan emits the corpus target and required monthly contribution
// for the age band: corpus = annual income times a band multiplier, saved
// over the band's horizon.
func retirementPlan(age int, monthlyIncome float64) string {
	annual := monthlyIncome * 12
	var (
		label      string
		multiplier float64
		horizonYrs float64
		focus      string
	)
	switch {
	case age < 30:
		label, multiplier, horizonYrs = "Start Early Advantage", 25, 35
		focus = "Focus on an equity-heavy portfolio"
	case age < 45:
		label, multiplier, horizonYrs = "Mid-Career Planning", 20, 20
		focus = "Balance between equity and debt"
	default:
		label, multiplier, horizonYrs = "Pre-Retirement Strategy", 15, 10
		focus = "Focus on capital preservation"
	}
	corpus := annual * multiplier
	required := corpus / (horizonYrs * 12)
	return fmt.Sprintf(`   - %s
   - Target Retirement Corpus: %s
   - Required Monthly Saving: %s
   - %s
`, label, core.FormatRupees(corpus), core.FormatRupees(required), focus)
}

func savingsRateActions(ratePct float64) string {
	switch {
	case ratePct < 10:
		return `
Priority Actions:
- Cut non-essential expenses
- Look for additional income sources
- Renegotiate bills and subscriptions
- Create a strict budget
- Build the emergency fund first
`
	case ratePct < 20:
		return `
Next Steps:
- Increase savings by 5% every 6 months
- Start investment SIPs
- Optimize tax savings
- Build the emergency fund
- Review insurance coverage
`
	default:
		return `
Growth Opportunities:
- Maximize retirement contributions
- Explore investment opportunities
- Consider real estate investment
- Start tax planning early
- Look into passive income sources
`
	}
}
