package carbon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEstimateStaghornMediumTwoMonths(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	inStock := date(2026, 1, 1)
	at := date(2026, 3, 2) // 60 days later

	est, ok := calc.Estimate("鹿角蕨", "medium", 70, &inStock, at)
	require.True(t, ok)

	// 70 × 0.06 × 1.0 × (60/30) = 8.4 kg, ±20% band
	assert.Equal(t, "8.4", est.Value.Round(2).String())
	assert.Equal(t, "6.72", est.Low.Round(2).String())
	assert.Equal(t, "10.08", est.High.Round(2).String())
	assert.Equal(t, 60, est.ElapsedDays)
	assert.Equal(t, "2", est.ElapsedMonths.Round(2).String())
}

func TestEstimateYearlyIsAgeIndependent(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	inStock := date(2026, 1, 1)

	early, ok := calc.Estimate("龜背芋", "large", 10, &inStock, date(2026, 1, 11))
	require.True(t, ok)
	late, ok := calc.Estimate("龜背芋", "large", 10, &inStock, date(2026, 7, 1))
	require.True(t, ok)

	// 10 × 0.08 × 1.5 × 12 = 14.4 regardless of elapsed time
	assert.Equal(t, "14.4", early.Yearly.Round(2).String())
	assert.True(t, early.Yearly.Equal(late.Yearly))
}

func TestEstimateMonotonicInTime(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	inStock := date(2026, 1, 1)

	prev := decimal.Zero
	for _, days := range []int{1, 7, 30, 90, 365} {
		est, ok := calc.Estimate("黃金葛", "small", 25, &inStock, inStock.AddDate(0, 0, days))
		require.True(t, ok)
		assert.True(t, est.Value.GreaterThan(prev), "absorption must grow with elapsed days")
		prev = est.Value
	}
}

func TestEstimateMonotonicInQuantity(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	inStock := date(2026, 1, 1)
	at := date(2026, 2, 1)

	small, ok := calc.Estimate("虎尾蘭", "medium", 10, &inStock, at)
	require.True(t, ok)
	big, ok := calc.Estimate("虎尾蘭", "medium", 40, &inStock, at)
	require.True(t, ok)

	assert.True(t, big.Value.GreaterThan(small.Value))
	// Linear in quantity: 4× the plants, 4× the absorption
	assert.True(t, big.Value.Equal(small.Value.Mul(decimal.NewFromInt(4))))
}

func TestNoEstimateCases(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	inStock := date(2026, 6, 1)
	at := date(2026, 6, 15)

	_, ok := calc.Estimate("鹿角蕨", "medium", 0, &inStock, at)
	assert.False(t, ok, "zero quantity")

	_, ok = calc.Estimate("鹿角蕨", "medium", -3, &inStock, at)
	assert.False(t, ok, "negative quantity")

	_, ok = calc.Estimate("鹿角蕨", "medium", 10, nil, at)
	assert.False(t, ok, "missing in-stock date")

	_, ok = calc.Estimate("鹿角蕨", "medium", 10, &at, at)
	assert.False(t, ok, "same-day intake, no full day elapsed")

	future := date(2026, 7, 1)
	_, ok = calc.Estimate("鹿角蕨", "medium", 10, &future, at)
	assert.False(t, ok, "future in-stock date")
}

func TestEstimateIgnoresTimeOfDay(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	inStock := time.Date(2026, 1, 1, 23, 50, 0, 0, time.UTC)
	at := time.Date(2026, 1, 31, 0, 5, 0, 0, time.UTC)

	est, ok := calc.Estimate("波士頓蕨", "medium", 5, &inStock, at)
	require.True(t, ok)
	assert.Equal(t, 30, est.ElapsedDays)
}

func TestEffectiveFactorFallbacks(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	// Unknown plant type → default factor 0.05
	assert.Equal(t, "0.05", calc.EffectiveFactor("仙人掌", "medium").String())
	// Unknown size → medium multiplier 1.0
	assert.Equal(t, "0.06", calc.EffectiveFactor("鹿角蕨", "gigantic").String())
	// Both unknown
	assert.Equal(t, "0.05", calc.EffectiveFactor("", "").String())
}

func TestEffectiveFactorSizeMultipliers(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	// fiddle leaf fig base 0.09 times 0.6 / 1.0 / 1.5
	assert.Equal(t, "0.054", calc.EffectiveFactor("琴葉榕", "small").String())
	assert.Equal(t, "0.09", calc.EffectiveFactor("琴葉榕", "medium").String())
	assert.Equal(t, "0.135", calc.EffectiveFactor("琴葉榕", "large").String())
}

func TestUncertaintyBandBracketsValue(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	inStock := date(2025, 3, 10)

	est, ok := calc.Estimate("龜背芋", "small", 33, &inStock, date(2026, 1, 7))
	require.True(t, ok)
	assert.True(t, est.Low.LessThan(est.Value))
	assert.True(t, est.High.GreaterThan(est.Value))
	// Band is symmetric around the point value
	assert.True(t, est.Value.Sub(est.Low).Equal(est.High.Sub(est.Value)))
}
