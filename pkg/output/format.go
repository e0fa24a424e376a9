// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lucaspazio/Financial-Model/internal/forecast"
	"github.com/lucaspazio/Financial-Model/internal/reasonability"
	"github.com/lucaspazio/Financial-Model/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []forecast.Forecast) {
	WritePretty(os.Stdout, results)
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []forecast.Forecast) {
	fmt.Print(CsvString(results))
}

// JSONFormat outputs the forecasts as indented JSON.
func JSONFormat(results []forecast.Forecast) error {
	return WriteJSON(os.Stdout, results)
}

// WritePretty writes one table per forecast to w. The health column lists
// the reasonability colors for mau, cac, roas, revenues and staff.
func WritePretty(w io.Writer, results []forecast.Forecast) {
	p := message.NewPrinter(language.English)
	for _, result := range results {
		fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name)
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "warning: %s\n", warning)
		}
		if result.Results == nil {
			fmt.Fprintf(w, "no results\n\n")
			continue
		}

		fmt.Fprintf(w, "Year | %10s | %17s | %17s | %17s | %18s | %6s | %10s | %5s | Health\n",
			"MAU", "Revenue", "Costs", "Profit", "Cumulative", "Staff", "CAC", "ROAS")
		fmt.Fprintf(w, "____ | %10s | %17s | %17s | %17s | %18s | %6s | %10s | %5s | ______\n",
			strings.Repeat("_", 10), strings.Repeat("_", 17), strings.Repeat("_", 17),
			strings.Repeat("_", 17), strings.Repeat("_", 18), strings.Repeat("_", 6),
			strings.Repeat("_", 10), strings.Repeat("_", 5))

		r := result.Results
		for i, year := range r.Years {
			fmt.Fprintf(w, "%4d | %10s | %17s | %17s | %17s | %18s | %6s | %10s | %5s | %s\n",
				year,
				p.Sprintf("%.0f", r.MAU[i]),
				format.Currency(r.Revenues[i]),
				format.Currency(r.Costs[i]),
				format.Currency(r.Profit[i]),
				format.Currency(r.Overall[i]),
				p.Sprintf("%.2f", r.Staff[i]),
				format.Currency(r.CACPaying[i]),
				p.Sprintf("%.2f", r.ROAS[i]),
				health(result.Reasonability, i),
			)
		}

		fmt.Fprintf(w, "Reasonability:")
		for _, tally := range result.Reasonability.Summary() {
			fmt.Fprintf(w, " %s %dG/%dY/%dR;", tally.Metric, tally.Green, tally.Yellow, tally.Red)
		}
		fmt.Fprintf(w, "\n")
		for _, opt := range result.Optimizations {
			status := "converged"
			if !opt.Converged {
				status = "not converged"
			}
			fmt.Fprintf(w, "Break-even %s: %.4f (was %.4f), %s %s vs floor %s, %s after %d iterations\n",
				opt.Field, opt.Value, opt.Original, opt.Target, format.Currency(opt.Metric),
				format.Currency(opt.Floor), status, opt.Iterations)
			for _, note := range opt.Notes {
				fmt.Fprintf(w, "  note: %s\n", note)
			}
		}
		if len(results) > 1 {
			fmt.Fprintf(w, "\n")
		}
	}
}

func health(report reasonability.Report, i int) string {
	var b strings.Builder
	for _, metric := range reasonability.Metrics {
		colors := report.Colors(metric)
		if i >= len(colors) {
			b.WriteByte('-')
			continue
		}
		switch colors[i] {
		case reasonability.Green:
			b.WriteByte('G')
		case reasonability.Yellow:
			b.WriteByte('Y')
		default:
			b.WriteByte('R')
		}
	}
	return b.String()
}

// csvColumns are the per-scenario CSV columns, in order.
var csvColumns = []string{"mau", "revenues", "costs", "profit", "overall", "staff", "cac_paying", "roas"}

// csvMoneyColumns are written with thousands separators.
var csvMoneyColumns = map[string]bool{
	"revenues":   true,
	"costs":      true,
	"profit":     true,
	"overall":    true,
	"cac_paying": true,
}

// CsvString renders the forecasts side by side, one row per year.
func CsvString(results []forecast.Forecast) string {
	var b strings.Builder
	if len(results) == 0 {
		return ""
	}

	b.WriteString(`"year"`)
	for _, result := range results {
		for _, column := range csvColumns {
			fmt.Fprintf(&b, `,"%s (%s)"`, column, csvEscape(result.Name))
		}
	}
	b.WriteString("\n")

	// All results share the same horizon, so take the years from the first.
	var years []int
	for _, result := range results {
		if result.Results != nil {
			years = result.Results.Years
			break
		}
	}

	for i, year := range years {
		fmt.Fprintf(&b, `"%d"`, year)
		for _, result := range results {
			for _, column := range csvColumns {
				value := csvValue(result, column, i)
				if csvMoneyColumns[column] {
					fmt.Fprintf(&b, `,"%s"`, format.NumericCurrency(value))
				} else {
					fmt.Fprintf(&b, `,"%.2f"`, value)
				}
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func csvValue(result forecast.Forecast, column string, i int) float64 {
	r := result.Results
	if r == nil {
		return 0
	}
	var series []float64
	switch column {
	case "mau":
		series = r.MAU
	case "revenues":
		series = r.Revenues
	case "costs":
		series = r.Costs
	case "profit":
		series = r.Profit
	case "overall":
		series = r.Overall
	case "staff":
		series = r.Staff
	case "cac_paying":
		series = r.CACPaying
	case "roas":
		series = r.ROAS
	}
	if i >= len(series) {
		return 0
	}
	return series[i]
}

func csvEscape(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

// WriteJSON writes the forecasts to w as indented JSON.
func WriteJSON(w io.Writer, results []forecast.Forecast) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("failed to encode forecasts: %w", err)
	}
	return nil
}
