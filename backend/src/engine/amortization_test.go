package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridian-capital/appraisal/backend/src/models"
)

func baseLoan() models.Financing {
	return models.Financing{
		ID: "loan-1", Type: models.FinancingLoan, Name: "Term loan",
		Amount: 100000, InterestRate: 10, TermYears: 5, GracePeriod: 0,
		DisbursementYear: 0, RepaymentStartYear: 1,
	}
}

func TestAmortizationSchedule_S4(t *testing.T) {
	rows := AmortizationSchedule(baseLoan())
	assert.Len(t, rows, 5)
	assert.InDelta(t, 10000.0, rows[0].Interest, 1e-9)

	var totalPrincipal float64
	for _, r := range rows {
		totalPrincipal += r.PrincipalPaid
	}
	assert.InDelta(t, 100000.0, totalPrincipal, 1e-6)
	assert.Equal(t, 0.0, rows[len(rows)-1].EndingBalance)
}

func TestAmortizationSchedule_GracePeriod_S5(t *testing.T) {
	loan := baseLoan()
	loan.GracePeriod = 2
	rows := AmortizationSchedule(loan)
	assert.Len(t, rows, 5)

	assert.Equal(t, 0.0, rows[0].PrincipalPaid)
	assert.Equal(t, 0.0, rows[1].PrincipalPaid)
	assert.InDelta(t, 100000.0/3, rows[2].PrincipalPaid, 1e-6)
	assert.InDelta(t, 100000.0/3, rows[3].PrincipalPaid, 1e-6)

	var total float64
	for _, r := range rows {
		total += r.PrincipalPaid
	}
	assert.InDelta(t, 100000.0, total, 1e-6)
	assert.Equal(t, 0.0, rows[len(rows)-1].EndingBalance)
}

func TestAmortizationSchedule_GraceEqualsTermMinusOne(t *testing.T) {
	loan := baseLoan()
	loan.TermYears = 5
	loan.GracePeriod = 4
	rows := AmortizationSchedule(loan)
	assert.Len(t, rows, 5)
	for i := 0; i < 4; i++ {
		assert.Equal(t, 0.0, rows[i].PrincipalPaid)
	}
	assert.InDelta(t, 100000.0, rows[4].PrincipalPaid, 1e-9)
	assert.Equal(t, 0.0, rows[4].EndingBalance)
}

func TestAmortizationSchedule_TermZero(t *testing.T) {
	loan := baseLoan()
	loan.TermYears = 0
	assert.Empty(t, AmortizationSchedule(loan))
}

func TestAmortizationSchedule_EntirelyWithinGrace(t *testing.T) {
	loan := baseLoan()
	loan.TermYears = 3
	loan.GracePeriod = 3
	rows := AmortizationSchedule(loan)
	assert.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, 0.0, r.PrincipalPaid)
		assert.Equal(t, loan.Amount, r.EndingBalance)
	}
}

func TestDebtServiceForYear_AggregatesAcrossLoans(t *testing.T) {
	loanA := baseLoan()
	loanB := baseLoan()
	loanB.ID = "loan-2"
	loanB.Amount = 50000
	loanB.RepaymentStartYear = 1

	svc := debtServiceForYear([]models.Financing{loanA, loanB}, 1)
	assert.InDelta(t, 10000+5000, svc.Interest, 1e-6)
	assert.InDelta(t, 20000+10000, svc.Principal, 1e-6)
}

func TestDebtServiceForYear_IgnoresEquityAndGrants(t *testing.T) {
	equity := models.Financing{Type: models.FinancingEquity, Amount: 100000, DisbursementYear: 0}
	grant := models.Financing{Type: models.FinancingGrant, Amount: 20000, DisbursementYear: 0}
	svc := debtServiceForYear([]models.Financing{equity, grant}, 1)
	assert.Equal(t, models.DebtService{}, svc)
}

func TestRemainingPrincipal(t *testing.T) {
	loan := baseLoan()
	assert.Equal(t, loan.Amount, remainingPrincipal(loan, 0))
	assert.InDelta(t, 80000.0, remainingPrincipal(loan, 1), 1e-6)
	assert.Equal(t, 0.0, remainingPrincipal(loan, 5))
}
