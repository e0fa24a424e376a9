package engine

// Segments holds yearly revenue per business segment.
type Segments struct {
	Game        []float64 `json:"game"`
	Formation   []float64 `json:"formation"`
	XR          []float64 `json:"xr"`
	Tokens      []float64 `json:"tokens"`
	Marketplace []float64 `json:"marketplace"`
	Serious     []float64 `json:"serious"`
}

// RevenueBreakdown holds the revenue lines inside each segment.
type RevenueBreakdown struct {
	InGameSales          []float64 `json:"in_game_sales"`
	PremiumFees          []float64 `json:"premium_fees"`
	AdRevenue            []float64 `json:"ad_revenue"`
	SmallCourseSales     []float64 `json:"small_course_sales"`
	CertPathSales        []float64 `json:"cert_path_sales"`
	DigitalRegistrations []float64 `json:"digital_registrations"`
	XRRegistrations      []float64 `json:"xr_registrations"`
	Tickets              []float64 `json:"tickets"`
	Sponsorship          []float64 `json:"sponsorship"`
}

// CostBreakdown holds yearly cost per category.
type CostBreakdown struct {
	Salaries      []float64 `json:"salaries"`
	ServicesHW    []float64 `json:"services_hw"`
	Web3          []float64 `json:"web3"`
	GamePlatform  []float64 `json:"game_platform"`
	FormationCost []float64 `json:"formation_cost"`
	SpaceSystem   []float64 `json:"space_system"`
	SpaceOps      []float64 `json:"space_ops"`
	Prices        []float64 `json:"prices"`
	Marketing     []float64 `json:"marketing"`
}

// YearAudit records every intermediate value computed for one year.
type YearAudit struct {
	Year int     `json:"year"`
	MAU  float64 `json:"mau"`

	ConvInGame      float64 `json:"conv_in_game"`
	ConvPremium     float64 `json:"conv_premium"`
	ConvSmallCourse float64 `json:"conv_small_course"`
	ConvCertPath    float64 `json:"conv_cert_path"`

	InGameSales          float64 `json:"in_game_sales"`
	PremiumFees          float64 `json:"premium_fees"`
	AdRevenue            float64 `json:"ad_revenue"`
	GameRevenue          float64 `json:"game_revenue"`
	SmallCourseSales     float64 `json:"small_course_sales"`
	CertPathSales        float64 `json:"cert_path_sales"`
	FormationRevenue     float64 `json:"formation_revenue"`
	DigitalRegistrations float64 `json:"digital_registrations"`
	XRRegistrations      float64 `json:"xr_registrations"`
	TicketRevenue        float64 `json:"ticket_revenue"`
	SponsorshipRevenue   float64 `json:"sponsorship_revenue"`
	XRRevenue            float64 `json:"xr_revenue"`
	TokensRevenue        float64 `json:"tokens_revenue"`
	MarketplaceRevenue   float64 `json:"marketplace_revenue"`
	SeriousRevenue       float64 `json:"serious_revenue"`
	Revenue              float64 `json:"revenue"`

	Staff               float64 `json:"staff"`
	Salaries            float64 `json:"salaries"`
	MarketingSalaries   float64 `json:"marketing_salaries"`
	ServicesHW          float64 `json:"services_hw"`
	Web3                float64 `json:"web3"`
	PlatformDevelopment float64 `json:"platform_development"`
	FormationCost       float64 `json:"formation_cost"`
	Prizes              float64 `json:"prizes"`
	SpaceOperations     float64 `json:"space_operations"`
	Marketing           float64 `json:"marketing"`
	OperatingCost       float64 `json:"operating_cost"`

	ProfitBeforeInvestment float64 `json:"profit_before_investment"`
	PlannedInvestment      float64 `json:"planned_investment"`
	Invested               float64 `json:"invested"`
	TotalCost              float64 `json:"total_cost"`
	Profit                 float64 `json:"profit"`
	CumulativeProfit       float64 `json:"cumulative_profit"`

	NewUsers       float64 `json:"new_users"`
	PayingRatio    float64 `json:"paying_ratio"`
	NewPayingUsers float64 `json:"new_paying_users"`
	CACTotal       float64 `json:"cac_total"`
	CACPaying      float64 `json:"cac_paying"`
	CACLoaded      float64 `json:"cac_loaded"`
	ROAS           float64 `json:"roas"`
}

// Result is the full projection for one set of scale parameters. Every
// slice has one entry per horizon year.
type Result struct {
	Years                  []int     `json:"years"`
	MAU                    []float64 `json:"mau"`
	Revenues               []float64 `json:"revenues"`
	Costs                  []float64 `json:"costs"`
	Profit                 []float64 `json:"profit"`
	Overall                []float64 `json:"overall"`
	Staff                  []float64 `json:"staff"`
	CACTotal               []float64 `json:"cac_total"`
	CACPaying              []float64 `json:"cac_paying"`
	CACLoaded              []float64 `json:"cac_loaded"`
	ROAS                   []float64 `json:"roas"`
	NewUsers               []float64 `json:"new_users"`
	NewPayingUsers         []float64 `json:"new_paying_users"`
	PayingRatio            []float64 `json:"paying_ratio"`
	ProfitBeforeInvestment []float64 `json:"profit_before_investment"`
	Invested               []float64 `json:"invested"`
	PlannedInvestment      []float64 `json:"planned_investment"`

	Segments         Segments         `json:"segments"`
	RevenueBreakdown RevenueBreakdown `json:"revenue_breakdown"`
	CostBreakdown    CostBreakdown    `json:"cost_breakdown"`

	Audit []YearAudit `json:"audit"`
}

// newResult lays the per-year audit records out as columns.
func newResult(audit []YearAudit) *Result {
	col := func(get func(a YearAudit) float64) []float64 {
		out := make([]float64, len(audit))
		for i, a := range audit {
			out[i] = get(a)
		}
		return out
	}

	years := make([]int, len(audit))
	for i, a := range audit {
		years[i] = a.Year
	}

	return &Result{
		Years:                  years,
		MAU:                    col(func(a YearAudit) float64 { return a.MAU }),
		Revenues:               col(func(a YearAudit) float64 { return a.Revenue }),
		Costs:                  col(func(a YearAudit) float64 { return a.TotalCost }),
		Profit:                 col(func(a YearAudit) float64 { return a.Profit }),
		Overall:                col(func(a YearAudit) float64 { return a.CumulativeProfit }),
		Staff:                  col(func(a YearAudit) float64 { return a.Staff }),
		CACTotal:               col(func(a YearAudit) float64 { return a.CACTotal }),
		CACPaying:              col(func(a YearAudit) float64 { return a.CACPaying }),
		CACLoaded:              col(func(a YearAudit) float64 { return a.CACLoaded }),
		ROAS:                   col(func(a YearAudit) float64 { return a.ROAS }),
		NewUsers:               col(func(a YearAudit) float64 { return a.NewUsers }),
		NewPayingUsers:         col(func(a YearAudit) float64 { return a.NewPayingUsers }),
		PayingRatio:            col(func(a YearAudit) float64 { return a.PayingRatio }),
		ProfitBeforeInvestment: col(func(a YearAudit) float64 { return a.ProfitBeforeInvestment }),
		Invested:               col(func(a YearAudit) float64 { return a.Invested }),
		PlannedInvestment:      col(func(a YearAudit) float64 { return a.PlannedInvestment }),
		Segments: Segments{
			Game:        col(func(a YearAudit) float64 { return a.GameRevenue }),
			Formation:   col(func(a YearAudit) float64 { return a.FormationRevenue }),
			XR:          col(func(a YearAudit) float64 { return a.XRRevenue }),
			Tokens:      col(func(a YearAudit) float64 { return a.TokensRevenue }),
			Marketplace: col(func(a YearAudit) float64 { return a.MarketplaceRevenue }),
			Serious:     col(func(a YearAudit) float64 { return a.SeriousRevenue }),
		},
		RevenueBreakdown: RevenueBreakdown{
			InGameSales:          col(func(a YearAudit) float64 { return a.InGameSales }),
			PremiumFees:          col(func(a YearAudit) float64 { return a.PremiumFees }),
			AdRevenue:            col(func(a YearAudit) float64 { return a.AdRevenue }),
			SmallCourseSales:     col(func(a YearAudit) float64 { return a.SmallCourseSales }),
			CertPathSales:        col(func(a YearAudit) float64 { return a.CertPathSales }),
			DigitalRegistrations: col(func(a YearAudit) float64 { return a.DigitalRegistrations }),
			XRRegistrations:      col(func(a YearAudit) float64 { return a.XRRegistrations }),
			Tickets:              col(func(a YearAudit) float64 { return a.TicketRevenue }),
			Sponsorship:          col(func(a YearAudit) float64 { return a.SponsorshipRevenue }),
		},
		CostBreakdown: CostBreakdown{
			Salaries:      col(func(a YearAudit) float64 { return a.Salaries }),
			ServicesHW:    col(func(a YearAudit) float64 { return a.ServicesHW }),
			Web3:          col(func(a YearAudit) float64 { return a.Web3 }),
			GamePlatform:  col(func(a YearAudit) float64 { return a.PlatformDevelopment }),
			FormationCost: col(func(a YearAudit) float64 { return a.FormationCost }),
			SpaceSystem:   col(func(a YearAudit) float64 { return a.Invested }),
			SpaceOps:      col(func(a YearAudit) float64 { return a.SpaceOperations }),
			Prices:        col(func(a YearAudit) float64 { return a.Prizes }),
			Marketing:     col(func(a YearAudit) float64 { return a.Marketing }),
		},
		Audit: audit,
	}
}
