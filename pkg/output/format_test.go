package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/lucaspazio/Financial-Model/internal/baseline"
	"github.com/lucaspazio/Financial-Model/internal/config"
	"github.com/lucaspazio/Financial-Model/internal/forecast"
	"github.com/lucaspazio/Financial-Model/pkg/constants"
	"github.com/lucaspazio/Financial-Model/pkg/optimization"
)

func testResults() []forecast.Forecast {
	plan := baseline.Default()
	zero := config.DefaultScaleParameters()
	zero.MAU = 0
	return []forecast.Forecast{
		forecast.Run("Baseline", plan, config.DefaultScaleParameters()),
		forecast.Run("No Users", plan, zero),
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestPrettyFormat(t *testing.T) {
	output := captureStdout(t, func() {
		PrettyFormat(testResults())
	})

	expected := []string{
		"--- Results for scenario Baseline ---",
		"--- Results for scenario No Users ---",
		"Year |        MAU |",
		"2,000,000",
		"-€6,664,000.00",
		"€599,014,634.00",
		"14.25",
		"Reasonability: mau ",
	}
	for _, s := range expected {
		if !strings.Contains(output, s) {
			t.Errorf("PrettyFormat output missing %q", s)
		}
	}

	// Year 1 has no users, revenue or acquisition spend worth grading.
	if !strings.Contains(output, "   1 |          0 |") {
		t.Errorf("PrettyFormat missing year 1 row:\n%s", output)
	}
}

func TestPrettyFormatWarningsAndMissingResults(t *testing.T) {
	var buf bytes.Buffer
	WritePretty(&buf, []forecast.Forecast{{Name: "Empty", Warnings: []string{"unknown scale parameter x"}}})

	output := buf.String()
	if !strings.Contains(output, "warning: unknown scale parameter x") {
		t.Errorf("Missing warning line: %s", output)
	}
	if !strings.Contains(output, "no results") {
		t.Errorf("Missing empty result marker: %s", output)
	}
}

func TestPrettyFormatOptimizations(t *testing.T) {
	results := testResults()[:1]
	results[0].Optimizations = []optimization.Summary{{
		Scenario:   "Baseline",
		Field:      "mau_scale",
		Target:     "overall",
		Original:   1,
		Value:      0.5784,
		Floor:      0,
		Metric:     1200,
		Headroom:   1200,
		Iterations: 11,
		Converged:  true,
	}, {
		Field:  "marketing_scale",
		Target: "overall",
		Value:  10,
		Notes:  []string{"unable to reach overall of €0.00 within bounds 9 to 10"},
	}}

	var buf bytes.Buffer
	WritePretty(&buf, results)
	output := buf.String()

	expected := []string{
		"Break-even mau_scale: 0.5784 (was 1.0000), overall €1,200.00 vs floor €0.00, converged after 11 iterations",
		"Break-even marketing_scale: 10.0000 (was 0.0000), overall €0.00 vs floor €0.00, not converged after 0 iterations",
		"  note: unable to reach overall of €0.00 within bounds 9 to 10",
	}
	for _, s := range expected {
		if !strings.Contains(output, s) {
			t.Errorf("WritePretty output missing %q:\n%s", s, output)
		}
	}
}

func TestHealthColumn(t *testing.T) {
	results := testResults()
	var buf bytes.Buffer
	WritePretty(&buf, results[:1])

	// Year 7: 2M MAU is green, CAC far above 50 is red, ROAS 3.78 green,
	// revenue growth green, 28,571 users per employee green.
	if !strings.Contains(buf.String(), "| GRGGG\n") {
		t.Errorf("Expected a GRGGG health marker in:\n%s", buf.String())
	}
}

func TestCsvString(t *testing.T) {
	output := CsvString(testResults())
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")

	if len(lines) != constants.HorizonYears+1 {
		t.Fatalf("Expected %d lines, got %d", constants.HorizonYears+1, len(lines))
	}
	if !strings.HasPrefix(lines[0], `"year","mau (Baseline)","revenues (Baseline)"`) {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[0], `"roas (No Users)"`) {
		t.Errorf("Header missing second scenario: %s", lines[0])
	}
	if !strings.HasPrefix(lines[7], `"7","2000000.00","134,444,900.00"`) {
		t.Errorf("Unexpected year 7 row: %s", lines[7])
	}

	records, err := csv.NewReader(strings.NewReader(output)).ReadAll()
	if err != nil {
		t.Fatalf("CSV output does not parse: %v", err)
	}
	for i, record := range records {
		if len(record) != 1+2*len(csvColumns) {
			t.Errorf("Row %d: expected %d columns, got %d", i, 1+2*len(csvColumns), len(record))
		}
	}
	if strings.Contains(records[7][1], ",") {
		t.Errorf("MAU should not carry separators: %q", records[7][1])
	}
}

func TestCsvStringEscapesNames(t *testing.T) {
	results := []forecast.Forecast{forecast.Run(`Say "hi"`, baseline.Default(), config.DefaultScaleParameters())}
	output := CsvString(results)
	if !strings.Contains(output, `"mau (Say ""hi"")"`) {
		t.Errorf("Scenario name not escaped: %s", strings.SplitN(output, "\n", 2)[0])
	}
}

func TestCsvStringEmpty(t *testing.T) {
	if CsvString(nil) != "" {
		t.Error("Expected empty output for no forecasts")
	}
}

func TestCsvFormat(t *testing.T) {
	results := testResults()
	output := captureStdout(t, func() {
		CsvFormat(results)
	})
	if output != CsvString(results) {
		t.Error("CsvFormat output differs from CsvString")
	}
}

func TestJSONFormat(t *testing.T) {
	output := captureStdout(t, func() {
		if err := JSONFormat(testResults()); err != nil {
			t.Errorf("JSONFormat() error = %v", err)
		}
	})

	var decoded []struct {
		Name          string              `json:"name"`
		Parameters    map[string]float64  `json:"parameters"`
		Results       map[string]any      `json:"results"`
		Reasonability map[string][]string `json:"reasonability"`
	}
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("JSONFormat produced invalid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("Expected 2 forecasts, got %d", len(decoded))
	}
	if decoded[1].Parameters["mau_scale"] != 0 {
		t.Errorf("Expected mau_scale 0, got %v", decoded[1].Parameters["mau_scale"])
	}
	if len(decoded[0].Reasonability["cac"]) != constants.HorizonYears {
		t.Errorf("Expected %d cac colors", constants.HorizonYears)
	}
	if _, ok := decoded[0].Results["cost_breakdown"]; !ok {
		t.Error("Results missing cost_breakdown")
	}
}
