package engine

import (
	"github.com/lucaspazio/Financial-Model/internal/config"
	"github.com/lucaspazio/Financial-Model/pkg/constants"
	"github.com/lucaspazio/Financial-Model/pkg/mathutil"
)

// revenues fills the revenue side of a for year index i. a.MAU must already
// be scaled.
func (e *Engine) revenues(i int, params config.ScaleParameters, a *YearAudit) {
	p := e.plan
	months := float64(constants.MonthsPerYear)

	// Game
	a.ConvInGame = p.Game.ConvInGame[i] * params.ConvGame
	a.ConvPremium = p.Game.ConvPremium[i] * params.ConvGame
	a.InGameSales = a.MAU * a.ConvInGame * p.Game.PriceInGame * months
	a.PremiumFees = a.MAU * a.ConvPremium * p.Game.PricePremium * months
	a.AdRevenue = a.MAU * p.Game.AdImpressionsPerDay * constants.DaysPerYear *
		p.Game.AdECPM / 1000 * mathutil.Clamp(1-a.ConvPremium, 0, 1)
	a.GameRevenue = a.InGameSales + a.PremiumFees + a.AdRevenue

	// Formation
	a.ConvSmallCourse = p.Formation.ConvSmallCourse[i] * params.ConvCourse
	a.ConvCertPath = p.Formation.ConvCertPath[i] * params.ConvCourse
	a.SmallCourseSales = a.MAU * a.ConvSmallCourse * p.Formation.PriceSmallCourse * months
	a.CertPathSales = a.MAU * a.ConvCertPath * p.Formation.PriceCertPath * months
	a.FormationRevenue = a.SmallCourseSales + a.CertPathSales

	// XR events
	ev := p.Events
	a.DigitalRegistrations = ev.DigitalParticipants[i] * ev.DigitalEvents[i] * ev.DigitalRegistrationFee * params.EventYield
	a.XRRegistrations = ev.XRParticipants[i] * ev.XREvents[i] * ev.XRRegistrationFee * params.EventYield
	tickets := a.MAU * ev.TicketConversion[i] * (ev.DigitalEvents[i] + ev.XREvents[i]) * ev.TicketPrice
	sponsorship := ev.LaterSponsorship
	if i == 0 {
		sponsorship = ev.FirstYearSponsorship
	}
	a.TicketRevenue = tickets * params.EventYield
	a.SponsorshipRevenue = sponsorship * tickets * params.EventYield
	a.XRRevenue = a.DigitalRegistrations + a.XRRegistrations + a.TicketRevenue + a.SponsorshipRevenue

	// Placeholder segments pass through unscaled.
	a.TokensRevenue = p.Tokens[i]
	a.MarketplaceRevenue = p.Marketplace[i]
	a.SeriousRevenue = p.Serious[i]

	a.Revenue = a.GameRevenue + a.FormationRevenue + a.XRRevenue +
		a.TokensRevenue + a.MarketplaceRevenue + a.SeriousRevenue
}
