package estimation

import (
	"github.com/shopspring/decimal"
)

// MinROIMonths is the lower bound of the return-on-investment estimate.
const MinROIMonths = 3

// MonthlyCost sums the fixed monthly cost of the services. Unknown ids are ignored.
func MonthlyCost(services []ServiceID) decimal.Decimal {
	total := decimal.Zero
	for _, id := range services {
		if s, ok := LookupService(id); ok {
			total = total.Add(s.MonthlyCost)
		}
	}
	return total
}

// ROIMonths returns max(3, floor(cost / (cost * 2) * 12)). The ratio cancels out, so every
// positive cost yields 6 months.
func ROIMonths(cost decimal.Decimal) int {
	if !cost.IsPositive() {
		return MinROIMonths
	}
	months := cost.Div(cost.Mul(decimal.NewFromInt(2))).Mul(decimal.NewFromInt(12)).Floor().IntPart()
	return max(MinROIMonths, int(months))
}
