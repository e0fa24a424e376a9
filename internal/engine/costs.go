package engine

import (
	"github.com/lucaspazio/Financial-Model/internal/config"
	"github.com/lucaspazio/Financial-Model/pkg/mathutil"
)

// costs fills every cost category of a for year index i except the
// space-system investment, and sums them into a.OperatingCost.
func (e *Engine) costs(i int, params config.ScaleParameters, a *YearAudit) {
	p := e.plan

	for _, role := range p.Roles {
		headcount := role.Headcount[i] * params.Staff
		salaries := headcount * role.UnitSalary
		a.Staff += headcount
		a.Salaries += salaries
		if role.Marketing {
			a.MarketingSalaries += salaries
		}
	}

	a.ServicesHW = a.Salaries * p.ServicesCoefficient[i] * params.SrvHW
	a.Web3 = p.Web3.MarketMaking[i] + p.Web3.ExchangeListing[i] + p.Web3.Legal[i]
	a.PlatformDevelopment = p.PlatformDevelopment[i]
	a.FormationCost = p.Formation.SmallCourseUnitCost*params.ContentCost*p.Formation.SmallCourseCount[i] +
		p.Formation.CertPathUnitCost*params.ContentCost*p.Formation.CertPathCount[i]
	a.Prizes = p.Events.DigitalPrizePerEvent[i]*p.Events.DigitalEvents[i] +
		p.Events.XRPrizePerEvent[i]*p.Events.XREvents[i]
	a.SpaceOperations = p.Space.Operations[i]
	a.Marketing = (p.Marketing.Events[i] + p.Marketing.Sponsors[i] +
		p.Marketing.Travel[i] + p.Marketing.Publicity[i]) * params.Marketing

	a.OperatingCost = mathutil.Sum(a.Salaries, a.ServicesHW, a.Web3, a.PlatformDevelopment,
		a.FormationCost, a.Prizes, a.SpaceOperations, a.Marketing)
}
