package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/acparts/internal/core"
	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func sampleReport(q core.ReportQuery) ReportPageData {
	rows := []core.ReportRow{
		{AircraftID: "N1", Description: "Bar", Required: 1, Available: 2, Result: core.More},
		{AircraftID: "N1", Description: "<Cuff>", Required: 2, Available: 1, Result: core.Less},
	}
	return ReportPageData{
		Report: &core.Report{
			Query:    q,
			FileName: "inv.xlsx",
			Aircraft: []string{"N1", "N2"},
			Rows:     rows,
			Summary:  core.Summarize(rows),
		},
		Dataset: &core.Dataset{
			FileName:   "inv.xlsx",
			UploadedAt: time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC),
			Records:    make([]core.InventoryRecord, 3),
			Skipped:    []core.SkippedRow{{Line: 7, Reason: "A/C: required field is empty"}},
		},
	}
}

func TestReportPage(t *testing.T) {
	out := render(t, ReportPage(sampleReport(core.ReportQuery{View: core.ViewFull})))

	for _, want := range []string{
		"<title>Full Report | Aircraft Inventory Report</title>",
		`<a href="/" class="active" aria-current="page">Full Report</a>`,
		`<a href="/imperfect">Imperfect Records</a>`,
		`<th scope="col">A/C</th>`,
		`<tr class="result-more"><td>N1</td><td>Bar</td>`,
		"&lt;Cuff&gt;",
		"3 records",
		"1 row skipped",
		"Row 7: A/C: required field is empty",
		`href="/export/xlsx?view=full"`,
		`href="/export/pdf?view=full"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "<Cuff>") {
		t.Error("description was not escaped")
	}
	if strings.Contains(out, `name="id"`) {
		t.Error("full view should not render the aircraft selector")
	}
}

func TestReportPage_Aircraft(t *testing.T) {
	out := render(t, ReportPage(sampleReport(core.ReportQuery{View: core.ViewAircraft, AircraftID: "N2"})))

	for _, want := range []string{
		`<option value="N1">N1</option>`,
		`<option value="N2" selected>N2</option>`,
		`href="/export/pdf?id=N2&amp;view=aircraft"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestReportPage_EmptyImperfect(t *testing.T) {
	d := sampleReport(core.ReportQuery{View: core.ViewImperfect})
	d.Report.Rows = nil
	out := render(t, ReportPage(d))
	if !strings.Contains(out, "Every aircraft carries exactly the required parts.") {
		t.Error("missing empty-state message")
	}
	if strings.Contains(out, "<table") {
		t.Error("empty view rendered a table")
	}
}

func TestNoDatasetPage(t *testing.T) {
	out := render(t, NoDatasetPage(core.ViewImperfect))
	for _, want := range []string{
		"No inventory uploaded.",
		`action="/upload"`,
		`enctype="multipart/form-data"`,
		`<a href="/imperfect" class="active"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestErrorAlert(t *testing.T) {
	out := render(t, ErrorAlert("Bad <file>", "Try again", "FILE002"))
	if !strings.Contains(out, "Bad &lt;file&gt;") || !strings.Contains(out, "Code: FILE002") {
		t.Errorf("ErrorAlert output = %s", out)
	}
}

func TestSkippedRowsTruncates(t *testing.T) {
	skipped := make([]core.SkippedRow, maxSkippedShown+5)
	for i := range skipped {
		skipped[i] = core.SkippedRow{Line: i + 2, Reason: "x"}
	}
	out := render(t, SkippedRows(skipped))
	if !strings.Contains(out, "and 5 more") {
		t.Error("long skipped list was not truncated")
	}
	if got := strings.Count(out, "<li>Row "); got != maxSkippedShown {
		t.Errorf("listed %d rows, want %d", got, maxSkippedShown)
	}
}

func TestLink(t *testing.T) {
	if got := link("/export/xlsx", "view", "full", "id", ""); got != "/export/xlsx?view=full" {
		t.Errorf("link() = %q", got)
	}
	if got := link("/aircraft"); got != "/aircraft" {
		t.Errorf("link() = %q", got)
	}
}
