// Package engine projects the baseline business plan over the horizon under
// a set of scale multipliers. Compute is pure: it reads the shared plan,
// allocates a fresh Result and touches nothing else.
package engine

import (
	"github.com/lucaspazio/Financial-Model/internal/baseline"
	"github.com/lucaspazio/Financial-Model/internal/config"
	"github.com/lucaspazio/Financial-Model/pkg/constants"
	"github.com/lucaspazio/Financial-Model/pkg/mathutil"
)

// Engine computes projections against one baseline plan.
type Engine struct {
	plan  *baseline.Plan
	floor float64
}

// New creates an engine reading from plan. A nil plan falls back to
// baseline.Default().
func New(plan *baseline.Plan) *Engine {
	if plan == nil {
		plan = baseline.Default()
	}
	return &Engine{plan: plan, floor: constants.InvestmentProfitFloor}
}

// Plan returns the baseline plan the engine reads from.
func (e *Engine) Plan() *baseline.Plan {
	return e.plan
}

// Compute is shorthand for New(plan).Compute(params).
func Compute(plan *baseline.Plan, params config.ScaleParameters) *Result {
	return New(plan).Compute(params)
}

// Compute projects every horizon year. Parameters are sanitized first, so
// any value is accepted.
func (e *Engine) Compute(params config.ScaleParameters) *Result {
	params = params.Sanitize()

	audit := make([]YearAudit, constants.HorizonYears)
	prevMAU := 0.0
	cumulative := 0.0
	for i := range audit {
		a := &audit[i]
		a.Year = i + 1
		a.MAU = e.plan.MAU[i] * params.MAU

		e.revenues(i, params, a)
		e.costs(i, params, a)

		a.ProfitBeforeInvestment = a.Revenue - a.OperatingCost
		a.PlannedInvestment = e.plan.Space.PlannedInvestment[i]
		a.Invested = AllocateInvestment(a.ProfitBeforeInvestment, a.PlannedInvestment, e.floor)

		a.TotalCost = a.OperatingCost + a.Invested
		a.Profit = a.Revenue - a.TotalCost
		cumulative += a.Profit
		a.CumulativeProfit = cumulative

		acquisition(a, prevMAU)
		prevMAU = a.MAU
	}

	return newResult(audit)
}

// AllocateInvestment returns how much of planned can be spent this year
// without pushing profit below floor. Nothing is spent when profit before
// investment is at or under the floor, and the unspent remainder is dropped
// rather than carried into later years.
func AllocateInvestment(profitBeforeInvestment, planned, floor float64) float64 {
	if profitBeforeInvestment <= floor || planned <= 0 {
		return 0
	}
	return mathutil.Min(planned, profitBeforeInvestment-floor)
}
