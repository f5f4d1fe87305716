// Package carbon derives time-decayed CO2 absorption estimates from a batch's
// current quantity and its elapsed time in stock. The calculator is pure and
// stateless; all tunables live on an immutable Config injected at construction.
package carbon

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config is the factor table for the absorption model. Factors are
// kg CO2 per plant per month.
type Config struct {
	BaseFactors     map[string]decimal.Decimal // per plant type
	DefaultFactor   decimal.Decimal            // unrecognized plant types
	SizeMultipliers map[string]decimal.Decimal // per size class
	Uncertainty     decimal.Decimal            // fractional band width, e.g. 0.20
}

// DefaultConfig returns the production factor table. The default factor of
// 0.05 matches the historical sink rate; the uncertainty band is ±20%.
func DefaultConfig() Config {
	return Config{
		BaseFactors: map[string]decimal.Decimal{
			"鹿角蕨":  decimal.NewFromFloat(0.06), // staghorn fern
			"龜背芋":  decimal.NewFromFloat(0.08), // monstera
			"琴葉榕":  decimal.NewFromFloat(0.09), // fiddle leaf fig
			"虎尾蘭":  decimal.NewFromFloat(0.04), // snake plant
			"黃金葛":  decimal.NewFromFloat(0.05), // pothos
			"波士頓蕨": decimal.NewFromFloat(0.06), // boston fern
		},
		DefaultFactor: decimal.NewFromFloat(0.05),
		SizeMultipliers: map[string]decimal.Decimal{
			"small":  decimal.NewFromFloat(0.6),
			"medium": decimal.NewFromInt(1),
			"large":  decimal.NewFromFloat(1.5),
		},
		Uncertainty: decimal.NewFromFloat(0.20),
	}
}

// Estimate is a point absorption value with its uncertainty band. All figures
// are unrounded; presentation rounding (2 dp) happens at the DTO edge so that
// aggregation never compounds rounding error.
type Estimate struct {
	Value         decimal.Decimal
	Low           decimal.Decimal
	High          decimal.Decimal
	Yearly        decimal.Decimal // quantity × factor × 12, age-independent
	Factor        decimal.Decimal // effective factor actually used
	ElapsedDays   int
	ElapsedMonths decimal.Decimal // days / 30, fixed approximation
}

// Calculator computes absorption estimates from an immutable Config.
type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

var (
	thirty = decimal.NewFromInt(30)
	twelve = decimal.NewFromInt(12)
	one    = decimal.NewFromInt(1)
)

// EffectiveFactor resolves base_factor(type) × size_multiplier(size).
// Unknown plant types use the default factor; unknown sizes use the medium
// multiplier of 1.0.
func (c *Calculator) EffectiveFactor(plantType, plantSize string) decimal.Decimal {
	base, ok := c.cfg.BaseFactors[plantType]
	if !ok {
		base = c.cfg.DefaultFactor
	}
	mult, ok := c.cfg.SizeMultipliers[plantSize]
	if !ok {
		mult = one
	}
	return base.Mul(mult)
}

// Estimate computes the absorption estimate for a batch evaluated at the
// given instant. Returns ok=false ("no estimate", not an error) when the
// quantity is non-positive, the in-stock date is absent, or no full calendar
// day has elapsed yet.
func (c *Calculator) Estimate(plantType, plantSize string, quantity int, inStock *time.Time, at time.Time) (Estimate, bool) {
	if quantity <= 0 || inStock == nil {
		return Estimate{}, false
	}
	days := daysBetween(*inStock, at)
	if days <= 0 {
		return Estimate{}, false
	}

	factor := c.EffectiveFactor(plantType, plantSize)
	months := decimal.NewFromInt(int64(days)).Div(thirty)
	qty := decimal.NewFromInt(int64(quantity))

	value := qty.Mul(factor).Mul(months)
	return Estimate{
		Value:         value,
		Low:           value.Mul(one.Sub(c.cfg.Uncertainty)),
		High:          value.Mul(one.Add(c.cfg.Uncertainty)),
		Yearly:        qty.Mul(factor).Mul(twelve),
		Factor:        factor,
		ElapsedDays:   days,
		ElapsedMonths: months,
	}, true
}

// daysBetween returns the whole calendar days from a to b, ignoring the
// time-of-day component of both instants.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
