package engine

import (
	"github.com/lucaspazio/Financial-Model/pkg/constants"
	"github.com/lucaspazio/Financial-Model/pkg/mathutil"
)

// acquisition fills user-acquisition efficiency figures. prevMAU is the
// previous year's scaled MAU, zero for year 1.
func acquisition(a *YearAudit, prevMAU float64) {
	a.NewUsers = mathutil.Max(a.MAU-prevMAU*constants.MonthlyRecurrencyRate, 0)
	a.PayingRatio = mathutil.Clamp(a.ConvInGame+a.ConvPremium+a.ConvSmallCourse+a.ConvCertPath, 0, 1)
	a.NewPayingUsers = a.NewUsers * a.PayingRatio

	a.CACTotal = mathutil.SafeDivide(a.Marketing, a.NewUsers)
	a.CACPaying = mathutil.SafeDivide(a.Marketing, a.NewPayingUsers)
	a.CACLoaded = mathutil.SafeDivide(a.Prizes+a.Marketing+a.MarketingSalaries, a.NewPayingUsers)
	a.ROAS = mathutil.SafeDivide(a.Revenue, a.Marketing)
}
