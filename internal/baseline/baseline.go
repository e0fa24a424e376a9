// Package baseline holds the unscaled business plan that every projection
// starts from. A Plan is built once at process start and shared read-only by
// every computation.
package baseline

import (
	"github.com/lucaspazio/Financial-Model/pkg/constants"
)

// Series is one value per projection year, year 1 first.
type Series [constants.HorizonYears]float64

// Role is a staffing line: a yearly headcount and a fixed unit salary.
type Role struct {
	Name       string  `json:"name"`
	UnitSalary float64 `json:"unitSalary"`
	Headcount  Series  `json:"headcount"`
	Marketing  bool    `json:"marketing,omitempty"`
}

// GamePlan describes the game monetization segment.
type GamePlan struct {
	ConvInGame          Series  `json:"convInGame"`
	ConvPremium         Series  `json:"convPremium"`
	PriceInGame         float64 `json:"priceInGame"`
	PricePremium        float64 `json:"pricePremium"`
	AdECPM              float64 `json:"adEcpm"`
	AdImpressionsPerDay float64 `json:"adImpressionsPerDay"`
}

// FormationPlan describes the online course segment.
type FormationPlan struct {
	ConvSmallCourse     Series  `json:"convSmallCourse"`
	ConvCertPath        Series  `json:"convCertPath"`
	PriceSmallCourse    float64 `json:"priceSmallCourse"`
	PriceCertPath       float64 `json:"priceCertPath"`
	SmallCourseCount    Series  `json:"smallCourseCount"`
	CertPathCount       Series  `json:"certPathCount"`
	SmallCourseUnitCost float64 `json:"smallCourseUnitCost"`
	CertPathUnitCost    float64 `json:"certPathUnitCost"`
}

// EventsPlan describes digital and XR tournaments.
type EventsPlan struct {
	DigitalEvents          Series  `json:"digitalEvents"`
	XREvents               Series  `json:"xrEvents"`
	DigitalParticipants    Series  `json:"digitalParticipants"`
	XRParticipants         Series  `json:"xrParticipants"`
	DigitalRegistrationFee float64 `json:"digitalRegistrationFee"`
	XRRegistrationFee      float64 `json:"xrRegistrationFee"`
	TicketConversion       Series  `json:"ticketConversion"`
	TicketPrice            float64 `json:"ticketPrice"`
	FirstYearSponsorship   float64 `json:"firstYearSponsorship"`
	LaterSponsorship       float64 `json:"laterSponsorship"`
	DigitalPrizePerEvent   Series  `json:"digitalPrizePerEvent"`
	XRPrizePerEvent        Series  `json:"xrPrizePerEvent"`
}

// Web3Plan lists blockchain-adjacent operating costs.
type Web3Plan struct {
	MarketMaking    Series `json:"marketMaking"`
	ExchangeListing Series `json:"exchangeListing"`
	Legal           Series `json:"legal"`
}

// MarketingPlan lists the marketing sub-budgets.
type MarketingPlan struct {
	Events    Series `json:"events"`
	Sponsors  Series `json:"sponsors"`
	Travel    Series `json:"travel"`
	Publicity Series `json:"publicity"`
}

// SpacePlan lists the infrastructure ("space system") lines.
type SpacePlan struct {
	PlannedInvestment Series `json:"plannedInvestment"`
	Operations        Series `json:"operations"`
}

// Plan is the full unscaled business plan.
type Plan struct {
	MAU                 Series        `json:"mau"`
	Game                GamePlan      `json:"game"`
	Formation           FormationPlan `json:"formation"`
	Events              EventsPlan    `json:"events"`
	Tokens              Series        `json:"tokens"`
	Marketplace         Series        `json:"marketplace"`
	Serious             Series        `json:"serious"`
	Roles               []Role        `json:"roles"`
	ServicesCoefficient Series        `json:"servicesCoefficient"`
	Web3                Web3Plan      `json:"web3"`
	PlatformDevelopment Series        `json:"platformDevelopment"`
	Marketing           MarketingPlan `json:"marketing"`
	Space               SpacePlan     `json:"space"`
}

// Fill returns a Series with every year set to v.
func Fill(v float64) Series {
	var s Series
	for i := range s {
		s[i] = v
	}
	return s
}

// Default returns the reference business plan. Each call builds a new Plan;
// callers are expected to build it once and pass it around by pointer.
func Default() *Plan {
	return &Plan{
		MAU: Series{0, 60000, 300000, 600000, 1200000, 1600000, 2000000,
			2000000, 2000000, 2000000, 2000000, 2000000, 2000000, 2000000},
		Game: GamePlan{
			ConvInGame:          Series{0.01, 0.01, 0.01, 0.02, 0.02, 0.03, 0.03, 0.03, 0.03, 0.03, 0.03, 0.03, 0.03, 0.03},
			ConvPremium:         Series{0.01, 0.01, 0.01, 0.02, 0.02, 0.03, 0.03, 0.03, 0.03, 0.03, 0.03, 0.03, 0.03, 0.03},
			PriceInGame:         20,
			PricePremium:        15,
			AdECPM:              30,
			AdImpressionsPerDay: 0.3,
		},
		Formation: FormationPlan{
			ConvSmallCourse: Series{0.001, 0.001, 0.0015, 0.002, 0.0025, 0.003, 0.0035, 0.004,
				0.0045, 0.005, 0.005, 0.005, 0.005, 0.005},
			ConvCertPath: Series{0.001, 0.001, 0.0015, 0.002, 0.0025, 0.003, 0.0035, 0.004,
				0.0045, 0.005, 0.005, 0.005, 0.005, 0.005},
			PriceSmallCourse:    199,
			PriceCertPath:       999,
			SmallCourseCount:    Series{2, 20, 50, 100, 200, 200, 200, 200, 200, 200, 200, 200, 200, 200},
			CertPathCount:       Series{1, 2, 5, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10},
			SmallCourseUnitCost: 30000,
			CertPathUnitCost:    100000,
		},
		Events: EventsPlan{
			DigitalEvents:          Series{0, 1, 2, 6, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12},
			XREvents:               Series{0, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2},
			DigitalParticipants:    Series{0, 50, 100, 200, 500, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000},
			XRParticipants:         Series{0, 5, 10, 50, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100},
			DigitalRegistrationFee: 10,
			XRRegistrationFee:      100,
			TicketConversion:       Series{0, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01},
			TicketPrice:            5,
			FirstYearSponsorship:   2.0,
			LaterSponsorship:       0.5,
			DigitalPrizePerEvent:   Series{0, 1000, 10000, 15000, 15000, 15000, 15000, 15000, 15000, 15000, 15000, 15000, 15000, 15000},
			XRPrizePerEvent:        Series{0, 1000, 10000, 15000, 15000, 15000, 15000, 15000, 15000, 15000, 15000, 15000, 15000, 15000},
		},
		Roles: []Role{
			{Name: "management", UnitSalary: 150000, Headcount: Series{2, 3, 3, 4, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5}},
			{Name: "blockchain", UnitSalary: 120000, Headcount: Series{2, 2, 3, 4, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6}},
			{Name: "ai", UnitSalary: 120000, Headcount: Series{1, 2, 3, 4, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5}},
			{Name: "it", UnitSalary: 90000, Headcount: Series{2, 3, 6, 9, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12}},
			{Name: "content", UnitSalary: 90000, Headcount: Series{1, 1, 2, 2, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3}},
			{Name: "gamification", UnitSalary: 120000, Headcount: Series{2, 3, 5, 8, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10}},
			{Name: "marketing", UnitSalary: 100000, Headcount: Series{1, 2, 4, 8, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10}, Marketing: true},
			{Name: "analyst", UnitSalary: 100000, Headcount: Series{1, 1, 2, 2, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4}},
			{Name: "space", UnitSalary: 120000, Headcount: Series{0, 1, 2, 2, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4}},
			{Name: "intern", UnitSalary: 6000, Headcount: Series{2.25, 4, 8, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10}},
			{Name: "phd", UnitSalary: 35000, Headcount: Series{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
		},
		ServicesCoefficient: Series{3, 2.5, 2, 2, 1.5, 1.5, 1.5, 1.5, 1.5, 1.5, 1.5, 1.5, 1.5, 1.5},
		Web3: Web3Plan{
			MarketMaking:    Series{0, 0, 200000, 300000, 500000, 500000, 500000, 500000, 500000, 500000, 500000, 500000, 500000, 500000},
			ExchangeListing: Series{0, 0, 100000},
			Legal:           Series{0, 0, 250000, 250000, 250000, 250000, 250000, 250000, 250000, 250000, 250000, 250000, 250000, 250000},
		},
		PlatformDevelopment: Series{350000, 450000, 350000, 350000, 350000, 350000, 350000,
			350000, 350000, 350000, 350000, 350000, 350000, 350000},
		Marketing: MarketingPlan{
			Events:   Fill(20000),
			Sponsors: Fill(500000),
			Travel:   Fill(50000),
			Publicity: Series{50000, 1000000, 5000000, 15000000, 25000000, 35000000, 35000000,
				35000000, 35000000, 35000000, 35000000, 35000000, 35000000, 35000000},
		},
		Space: SpacePlan{
			PlannedInvestment: Series{0, 0, 0, 0, 5000000, 10000000, 30000000,
				30000000, 30000000, 30000000, 30000000, 30000000, 30000000, 30000000},
			Operations: Series{0, 0, 0, 0, 0, 0, 500000, 500000, 1000000, 1000000, 1000000, 1000000, 1000000, 1000000},
		},
	}
}

// Clone returns a deep copy of p that can be modified without affecting p.
func (p *Plan) Clone() *Plan {
	c := *p
	c.Roles = append([]Role(nil), p.Roles...)
	return &c
}
