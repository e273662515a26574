// backend/src/engine/amortization.go
package engine

import "github.com/meridian-capital/appraisal/backend/src/models"

// AmortizationSchedule builds the equal-principal amortisation
// schedule for a single loan (spec §4.2, C2). Interest declines over
// time because it is charged on the beginning balance and principal
// is repaid in equal instalments after the grace period.
func AmortizationSchedule(f models.Financing) []models.AmortizationRow {
	if !f.IsLoan() || f.TermYears <= 0 {
		return nil
	}

	rate := f.InterestRate / 100
	rows := make([]models.AmortizationRow, 0, f.TermYears)
	balance := f.Amount

	repaymentYears := f.TermYears - f.GracePeriod
	if repaymentYears <= 0 {
		// Entirely within grace: principal never amortises (spec §4.2
		// "Failures"). ValidateModel rejects such a loan before a
		// projection runs; called directly, this still returns an
		// interest-only schedule.
		for period := 1; period <= f.TermYears; period++ {
			interest := balance * rate
			rows = append(rows, models.AmortizationRow{
				Period:           period,
				BeginningBalance: balance,
				Interest:         interest,
				PrincipalPaid:    0,
				Payment:          interest,
				EndingBalance:    balance,
			})
		}
		return rows
	}

	principalPerPeriod := f.Amount / float64(repaymentYears)

	for period := 1; period <= f.TermYears; period++ {
		beginning := balance
		interest := beginning * rate

		var principalPaid float64
		if period > f.GracePeriod {
			principalPaid = principalPerPeriod
		}

		ending := beginning - principalPaid
		if ending < 0 {
			ending = 0
		}
		// The final repayment period absorbs any float rounding so the
		// schedule always closes to exactly zero.
		if period == f.TermYears {
			ending = 0
			principalPaid = beginning
		}

		rows = append(rows, models.AmortizationRow{
			Period:           period,
			BeginningBalance: beginning,
			Interest:         interest,
			PrincipalPaid:    principalPaid,
			Payment:          principalPaid + interest,
			EndingBalance:    ending,
		})
		balance = ending
	}

	return rows
}

// debtServiceForYear sums principal and interest due in absolute
// project year Y across every loan financing, per spec §4.2's
// "Debt service aggregation". Equity and grants contribute nothing.
func debtServiceForYear(financings []models.Financing, year int) models.DebtService {
	var svc models.DebtService
	for _, f := range financings {
		if !f.IsLoan() {
			continue
		}
		offset := year - f.RepaymentStartYear
		if offset < 0 || offset >= f.TermYears {
			continue
		}
		rows := AmortizationSchedule(f)
		period := offset + 1
		for _, row := range rows {
			if row.Period == period {
				svc.Principal += row.PrincipalPaid
				svc.Interest += row.Interest
				break
			}
		}
	}
	return svc
}

// remainingPrincipal returns the outstanding principal on a loan as of
// absolute project year Y, used by the balance sheet's long-term debt
// line (spec §4.4).
func remainingPrincipal(f models.Financing, year int) float64 {
	if !f.IsLoan() {
		return 0
	}
	if year < f.RepaymentStartYear {
		return f.Amount
	}
	offset := year - f.RepaymentStartYear
	rows := AmortizationSchedule(f)
	if offset >= len(rows) {
		return 0
	}
	return rows[offset].EndingBalance
}
