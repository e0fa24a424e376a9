// Package reasonability grades projected yearly metrics with a traffic-light
// color against year-banded thresholds.
package reasonability

import (
	"github.com/lucaspazio/Financial-Model/internal/engine"
	"github.com/lucaspazio/Financial-Model/pkg/constants"
)

// Color is a health signal for one metric in one year.
type Color string

// Health signals.
const (
	Green  Color = "green"
	Yellow Color = "yellow"
	Red    Color = "red"
)

// Metric names as they appear in reports.
const (
	MetricMAU      = "mau"
	MetricCAC      = "cac"
	MetricROAS     = "roas"
	MetricRevenues = "revenues"
	MetricStaff    = "staff"
)

// Metrics lists the graded metrics in report order.
var Metrics = []string{MetricMAU, MetricCAC, MetricROAS, MetricRevenues, MetricStaff}

// Input is the subset of a projection the classifier reads. Series may be
// shorter than the horizon; missing entries read as zero.
type Input struct {
	MAU       []float64
	CACPaying []float64
	ROAS      []float64
	Revenues  []float64
	Staff     []float64
}

// InputFromResult picks the classifier input out of an engine result.
func InputFromResult(r *engine.Result) Input {
	if r == nil {
		return Input{}
	}
	return Input{
		MAU:       r.MAU,
		CACPaying: r.CACPaying,
		ROAS:      r.ROAS,
		Revenues:  r.Revenues,
		Staff:     r.Staff,
	}
}

// Report holds one color per horizon year for each metric.
type Report struct {
	MAU      []Color `json:"mau"`
	CAC      []Color `json:"cac"`
	ROAS     []Color `json:"roas"`
	Revenues []Color `json:"revenues"`
	Staff    []Color `json:"staff"`
}

// Classify grades every horizon year of in. It never fails.
func Classify(in Input) Report {
	n := constants.HorizonYears
	report := Report{
		MAU:      make([]Color, n),
		CAC:      make([]Color, n),
		ROAS:     make([]Color, n),
		Revenues: make([]Color, n),
		Staff:    make([]Color, n),
	}

	for i := 0; i < n; i++ {
		year := i + 1
		mau := at(in.MAU, i)

		report.MAU[i] = MAUColor(year, mau)
		report.CAC[i] = CACColor(at(in.CACPaying, i))
		report.ROAS[i] = ROASColor(at(in.ROAS, i))
		report.Revenues[i] = RevenueColor(at(in.Revenues, i), at(in.Revenues, i-1), i > 0)
		report.Staff[i] = StaffColor(mau, at(in.Staff, i))
	}

	return report
}

// ClassifyResult is shorthand for Classify(InputFromResult(r)).
func ClassifyResult(r *engine.Result) Report {
	return Classify(InputFromResult(r))
}

func at(series []float64, i int) float64 {
	if i < 0 || i >= len(series) {
		return 0
	}
	return series[i]
}

// Colors returns the series for metric, or nil for an unknown name.
func (r Report) Colors(metric string) []Color {
	switch metric {
	case MetricMAU:
		return r.MAU
	case MetricCAC:
		return r.CAC
	case MetricROAS:
		return r.ROAS
	case MetricRevenues:
		return r.Revenues
	case MetricStaff:
		return r.Staff
	}
	return nil
}

// Tally counts the colors of one metric.
type Tally struct {
	Metric string `json:"metric"`
	Green  int    `json:"green"`
	Yellow int    `json:"yellow"`
	Red    int    `json:"red"`
}

// Summary tallies each metric's colors, in Metrics order.
func (r Report) Summary() []Tally {
	tallies := make([]Tally, 0, len(Metrics))
	for _, metric := range Metrics {
		t := Tally{Metric: metric}
		for _, c := range r.Colors(metric) {
			switch c {
			case Green:
				t.Green++
			case Yellow:
				t.Yellow++
			case Red:
				t.Red++
			}
		}
		tallies = append(tallies, t)
	}
	return tallies
}
