package core

// Credit score simulation. The model is a weighted sum of five bucketed
// factors on top of a base of 300, clamped to the standard [300,850] range.
// It is a pure computation with no side effects.

const (
	ScoreMin = 300
	ScoreMax = 850
)

const (
	RatingExceptional = "Exceptional"
	RatingVeryGood    = "Very Good"
	RatingGood        = "Good"
	RatingFair        = "Fair"
	RatingPoor        = "Poor"
)

// ScoreInputs carries the raw financial figures for one score computation.
// Values are monthly rupee amounts except where noted. Inputs are transient;
// nothing here is stored.
type ScoreInputs struct {
	Income             float64
	Expenses           float64
	Savings            float64
	DebtPayments       float64
	CreditHistoryYears int
	PaymentHistory     PaymentHistory
	CreditUtilization  float64 // expected in [0,1], accepted as-is
}

// FactorBreakdown reports the derived ratios and echoed inputs that went
// into a score, for display alongside the result.
type FactorBreakdown struct {
	DebtToIncome       float64
	SavingsRate        float64
	PaymentHistory     PaymentHistory
	CreditUtilization  float64
	CreditHistoryYears int
}

type ScoreResult struct {
	Score   int
	Rating  string
	Factors FactorBreakdown
}

// DebtToIncome computes (expenses + debt payments) / income. A zero income
// saturates to 1 rather than dividing by zero: no income means any debt
// load is maximal.
func DebtToIncome(income, expenses, debtPayments float64) float64 {
	if income > 0 {
		return (expenses + debtPayments) / income
	}
	return 1
}

// SavingsRate computes savings / income, saturating to 0 when income is
// zero.
func SavingsRate(income, savings float64) float64 {
	if income > 0 {
		return savings / income
	}
	return 0
}

// ComputeScore runs the simulation. Factor weights mirror the usual credit
// bureau split: payment history 35%, utilization 30%, history length 15%,
// debt-to-income 10%, savings rate 10%.
func ComputeScore(in ScoreInputs) ScoreResult {
	score := ScoreMin

	switch in.PaymentHistory {
	case PaymentExcellent:
		score += 175
	case PaymentGood:
		score += 150
	case PaymentFair:
		score += 100
	default:
		score += 50
	}

	switch {
	case in.CreditUtilization < 0.1:
		score += 150
	case in.CreditUtilization < 0.3:
		score += 125
	case in.CreditUtilization < 0.5:
		score += 75
	case in.CreditUtilization < 0.8:
		score += 40
	default:
		score += 10
	}

	switch {
	case in.CreditHistoryYears > 10:
		score += 100
	case in.CreditHistoryYears > 5:
		score += 75
	case in.CreditHistoryYears > 2:
		score += 50
	default:
		score += 25
	}

	dti := DebtToIncome(in.Income, in.Expenses, in.DebtPayments)
	switch {
	case dti < 0.3:
		score += 75
	case dti < 0.43:
		score += 50
	case dti < 0.6:
		score += 25
	}

	rate := SavingsRate(in.Income, in.Savings)
	switch {
	case rate > 0.2:
		score += 75
	case rate > 0.1:
		score += 50
	default:
		score += 25
	}

	if score < ScoreMin {
		score = ScoreMin
	}
	if score > ScoreMax {
		score = ScoreMax
	}

	return ScoreResult{
		Score:  score,
		Rating: ratingFor(score),
		Factors: FactorBreakdown{
			DebtToIncome:       dti,
			SavingsRate:        rate,
			PaymentHistory:     in.PaymentHistory,
			CreditUtilization:  in.CreditUtilization,
			CreditHistoryYears: in.CreditHistoryYears,
		},
	}
}

func ratingFor(score int) string {
	switch {
	case score >= 800:
		return RatingExceptional
	case score >= 740:
		return RatingVeryGood
	case score >= 670:
		return RatingGood
	case score >= 580:
		return RatingFair
	default:
		return RatingPoor
	}
}
