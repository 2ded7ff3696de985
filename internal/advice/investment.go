// Package advice generates the formatted recommendation texts shown in the
// assistant panels. Every function is a pure transform over a profile and
// ledger aggregates; nothing in here mutates state.
package advice

import (
	"fmt"
	"strings"

	"finbot/internal/core"
)

const (
	// Monthly cap derived from the ₹1.5L annual section-80C limit.
	taxSavingMonthlyCap = 12500.0

	investmentShareOfIncome = 0.3
	taxSavingShareOfIncome  = 0.15
)

// NeedProfileMessage directs the user to the profile panel when advice that
// requires a profile is requested before one exists.
const NeedProfileMessage = "Please set up your profile in the Profile Setup tab first for personalized investment advice."

// EquityAllocation returns the recommended equity percentage for a profile:
// a base of 40/60/80 by risk tolerance, +10 below age 30, -10 above age 50.
func EquityAllocation(p core.Profile) int {
	equity := 60
	switch p.RiskTolerance {
	case core.Conservative:
		equity = 40
	case core.Moderate:
		equity = 60
	case core.Aggressive:
		equity = 80
	}
	if p.Age < 30 {
		equity += 10
	} else if p.Age > 50 {
		equity -= 10
	}
	return equity
}

// Investment produces the personalized investment strategy text. A nil
// profile yields the guidance message instead of advice.
func Investment(p *core.Profile) string {
	if p == nil {
		return NeedProfileMessage
	}

	income := p.MonthlyIncome.Rupees()
	equity := EquityAllocation(*p)
	debt := 100 - equity
	monthly := income * investmentShareOfIncome
	taxSaving := income * taxSavingShareOfIncome
	if taxSaving > taxSavingMonthlyCap {
		taxSaving = taxSavingMonthlyCap
	}

	var b strings.Builder
	b.WriteString("Personalized Investment Strategy\n\n")
	b.WriteString("Based on your profile:\n")
	fmt.Fprintf(&b, "- Age: %d years\n", p.Age)
	fmt.Fprintf(&b, "- Risk Tolerance: %s\n", p.RiskTolerance)
	fmt.Fprintf(&b, "- Monthly Income: %s\n", p.MonthlyIncome.Format())
	fmt.Fprintf(&b, "- Recommended Monthly Investment: %s\n\n", core.FormatRupees(monthly))

	b.WriteString("Suggested Portfolio Allocation:\n")
	fmt.Fprintf(&b, "- Equity: %d%% (%s/month)\n", equity, core.FormatRupees(monthly*float64(equity)/100))
	fmt.Fprintf(&b, "- Debt: %d%% (%s/month)\n\n", debt, core.FormatRupees(monthly*float64(debt)/100))

	b.WriteString(ageBandStrategy(p.Age))
	b.WriteString(riskBandAllocation(p.RiskTolerance))

	b.WriteString("Tax-Saving Investment Options:\n")
	fmt.Fprintf(&b, "- Recommended Monthly Tax-Saving: %s\n", core.FormatRupees(taxSaving))
	b.WriteString(`- ELSS Mutual Funds
- PPF (Public Provident Fund)
- NPS (National Pension System)
- Term Insurance Premiums
- Tax-Saving Fixed Deposits

Current Market Strategy:
- Invest through systematic investment plans (SIP)
- Diversify across market caps
- Consider international diversification
- Review and rebalance quarterly
- Keep the emergency fund separate
`)
	return b.String()
}

func ageBandStrategy(age int) string {
	switch {
	case age < 30:
		return `Young Investor Focus:
- Higher equity exposure for long-term growth
- Start SIPs in equity mutual funds
- Consider aggressive growth stocks
- Begin retirement planning early

`
	case age < 45:
		return `Mid-Career Focus:
- Balanced portfolio with growth and stability
- Mix of equity and debt mutual funds
- Consider real estate investment
- Maximize tax-saving investments

`
	default:
		return `Pre-Retirement Focus:
- Focus on capital preservation
- Increase allocation to debt instruments
- Consider dividend-paying stocks
- Look into senior citizen saving schemes

`
	}
}

func riskBandAllocation(r core.RiskTolerance) string {
	switch r {
	case core.Conservative:
		return `Based on Your Risk Profile:
- Fixed Income (50-60%): bank fixed deposits, government bonds, AAA corporate bonds, post office schemes
- Equity (30-40%): large-cap mutual funds, blue-chip stocks, index funds, balanced advantage funds
- Alternative (0-10%): gold ETFs, REITs

`
	case core.Aggressive:
		return `Based on Your Risk Profile:
- Equity (70-80%): mid-cap funds, small-cap funds, sectoral funds, international funds
- Fixed Income (10-20%): dynamic bond funds, credit risk funds
- Alternative (10-20%): small-cap direct stocks, commodity funds

`
	default:
		return `Based on Your Risk Profile:
- Equity (50-60%): large-cap funds, mid-cap funds, index funds
- Fixed Income (30-40%): corporate bonds, government securities, banking and PSU debt funds
- Alternative (10-20%): REITs, gold funds, international funds

`
	}
}
