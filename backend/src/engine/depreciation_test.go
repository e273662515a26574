package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridian-capital/appraisal/backend/src/models"
)

func straightLineAsset() models.Investment {
	return models.Investment{
		ID: "inv-1", Category: models.CategoryMachinery,
		Amount: 10000, SalvageValue: 1000, UsefulLife: 10,
		Year: 1, DepreciationMethod: models.DepreciationStraightLine,
	}
}

func TestStraightLineDepreciation_S3(t *testing.T) {
	inv := straightLineAsset()

	for y := 1; y <= 10; y++ {
		assert.InDelta(t, 900.0, annualDepreciation(inv, y), 1e-9)
	}
	assert.Equal(t, 0.0, annualDepreciation(inv, 0))
	assert.Equal(t, 0.0, annualDepreciation(inv, 11))

	assert.InDelta(t, 4500.0, accumulatedDepreciation(inv, 5), 1e-9)
	assert.InDelta(t, 9000.0, accumulatedDepreciation(inv, 20), 1e-9, "accumulated depreciation clamps to cost-salvage")
}

func TestDepreciation_ZeroUsefulLife(t *testing.T) {
	inv := straightLineAsset()
	inv.UsefulLife = 0
	assert.Equal(t, 0.0, annualDepreciation(inv, 1))
}

func TestDepreciation_CostLessThanOrEqualSalvage(t *testing.T) {
	inv := straightLineAsset()
	inv.Amount = 1000
	inv.SalvageValue = 1000
	for y := 1; y <= 10; y++ {
		assert.Equal(t, 0.0, annualDepreciation(inv, y))
	}
}

func TestDepreciation_NoneMethod(t *testing.T) {
	inv := straightLineAsset()
	inv.DepreciationMethod = models.DepreciationNone
	assert.Equal(t, 0.0, annualDepreciation(inv, 1))
}

func TestDepreciation_LandAndWorkingCapitalAreNonDepreciable(t *testing.T) {
	land := straightLineAsset()
	land.Category = models.CategoryLand
	assert.Equal(t, models.DepreciationNone, land.EffectiveMethod())
	assert.Equal(t, 0.0, annualDepreciation(land, 1))

	wc := straightLineAsset()
	wc.Category = models.CategoryWorkingCapital
	assert.Equal(t, models.DepreciationNone, wc.EffectiveMethod())
}

func TestDecliningBalanceDepreciation_ClampsAtSalvage(t *testing.T) {
	inv := models.Investment{
		ID: "inv-2", Category: models.CategoryEquipment,
		Amount: 10000, SalvageValue: 2000, UsefulLife: 20,
		Year: 0, DepreciationMethod: models.DepreciationDecliningBalance,
		DepreciationRate: 30,
	}

	total := 0.0
	for y := 0; y <= 25; y++ {
		total += annualDepreciation(inv, y)
	}
	assert.InDelta(t, 8000.0, total, 1e-6)
	assert.InDelta(t, 8000.0, accumulatedDepreciation(inv, 25), 1e-6)

	// Once book value reaches salvage, charges stay at zero.
	late := annualDepreciation(inv, 24)
	assert.Equal(t, 0.0, late)
}

func TestAccumulatedDepreciation_MonotonicAndBounded(t *testing.T) {
	inv := straightLineAsset()
	prev := 0.0
	for y := 0; y <= 30; y++ {
		acc := accumulatedDepreciation(inv, y)
		assert.GreaterOrEqual(t, acc, prev)
		assert.LessOrEqual(t, acc, inv.Amount-inv.SalvageValue+1e-9)
		prev = acc
	}
}
