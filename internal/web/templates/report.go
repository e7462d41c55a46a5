package templates

import (
	"context"
	"strconv"
	"strings"

	"github.com/JonMunkholm/acparts/internal/core"
	"github.com/a-h/templ"
)

// ReportPageData is everything a report view renders.
type ReportPageData struct {
	Report  *core.Report
	Dataset *core.Dataset
}

// ReportPage renders one of the three report views.
func ReportPage(d ReportPageData) templ.Component {
	view := d.Report.Query.View
	return Layout(view.Title(), view, component(func(ctx context.Context, h *html) {
		h.child(ctx, DatasetPanel(d.Dataset))

		h.raw(`<section class="report"><h2>`)
		h.text(view.Title())
		h.raw(`</h2>`)

		if view == core.ViewAircraft {
			h.child(ctx, AircraftSelector(d.Report.Aircraft, d.Report.Query.AircraftID))
		}
		h.child(ctx, SummaryBar(d.Report.Summary))
		h.child(ctx, ExportLinks(d.Report.Query))
		h.child(ctx, ReportTable(d.Report.Rows, emptyMessage(d.Report)))
		h.raw(`</section>`)
	}))
}

func emptyMessage(r *core.Report) string {
	switch {
	case len(r.Aircraft) == 0:
		return "The uploaded file has no inventory rows."
	case r.Query.View == core.ViewImperfect:
		return "Every aircraft carries exactly the required parts."
	case r.Query.View == core.ViewAircraft && r.Query.AircraftID == "":
		return "Select an aircraft."
	default:
		return "No rows to show."
	}
}

// NoDatasetPage is shown in place of a report until a file is uploaded.
func NoDatasetPage(view core.View) templ.Component {
	return Layout(view.Title(), view, component(func(ctx context.Context, h *html) {
		h.raw(`<div class="alert alert-warning" role="status"><strong>No inventory uploaded.</strong> `)
		h.raw(`Upload a spreadsheet with <code>A/C</code> and <code>Desc</code> columns to see the report.</div>`)
		h.child(ctx, UploadForm())
	}))
}

// UploadForm posts an inventory file to /upload.
func UploadForm() templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<form class="upload" method="post" action="/upload" enctype="multipart/form-data">`)
		h.raw(`<label for="file">Inventory file (.xlsx or .csv)</label>`)
		h.raw(`<input id="file" type="file" name="file" accept=".xlsx,.xlsm,.csv" required>`)
		h.raw(`<button type="submit">Upload</button></form>`)
	})
}

// DatasetPanel describes the active upload and offers replace and reset.
func DatasetPanel(ds *core.Dataset) templ.Component {
	return component(func(ctx context.Context, h *html) {
		if ds == nil {
			return
		}
		h.raw(`<section class="dataset"><p><strong>`)
		h.text(ds.FileName)
		h.raw(`</strong>: `)
		h.text(plural(len(ds.Records), "record"))
		h.raw(`, uploaded <time`)
		h.attr("datetime", ds.UploadedAt.Format("2006-01-02T15:04:05Z07:00"))
		h.raw(`>`)
		h.text(ds.UploadedAt.Format("2006-01-02 15:04"))
		h.raw(`</time></p>`)

		h.child(ctx, SkippedRows(ds.Skipped))

		h.raw(`<div class="dataset-actions">`)
		h.child(ctx, UploadForm())
		h.raw(`<form method="post" action="/reset"><button type="submit" class="secondary">Clear upload</button></form>`)
		h.raw(`</div></section>`)
	})
}

// maxSkippedShown caps the skipped-row list; the count is always shown.
const maxSkippedShown = 50

// SkippedRows lists rows rejected at ingestion.
func SkippedRows(skipped []core.SkippedRow) templ.Component {
	return component(func(ctx context.Context, h *html) {
		if len(skipped) == 0 {
			return
		}
		h.raw(`<details class="alert alert-info"><summary>`)
		h.text(plural(len(skipped), "row") + " skipped")
		h.raw(`</summary><ul>`)
		for i, s := range skipped {
			if i == maxSkippedShown {
				h.raw(`<li>`)
				h.text("and " + strconv.Itoa(len(skipped)-maxSkippedShown) + " more")
				h.raw(`</li>`)
				break
			}
			h.raw(`<li>Row `)
			h.text(strconv.Itoa(s.Line))
			h.raw(`: `)
			h.text(s.Reason)
			h.raw(`</li>`)
		}
		h.raw(`</ul></details>`)
	})
}

// AircraftSelector picks the aircraft for the Search by Aircraft view.
func AircraftSelector(aircraft []string, selected string) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<form class="aircraft-select" method="get" action="/aircraft">`)
		h.raw(`<label for="aircraft">Aircraft</label><select id="aircraft" name="id">`)
		for _, ac := range aircraft {
			h.raw(`<option`)
			h.attr("value", ac)
			if ac == selected {
				h.raw(` selected`)
			}
			h.raw(`>`)
			h.text(ac)
			h.raw(`</option>`)
		}
		h.raw(`</select><button type="submit">Show</button></form>`)
	})
}

// SummaryBar shows row counts per result.
func SummaryBar(s core.Summary) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<ul class="summary">`)
		for _, item := range []struct {
			label string
			n     int
			class string
		}{
			{"Rows", s.Total, "total"},
			{string(core.Less), s.Less, "less"},
			{string(core.OK), s.OK, "ok"},
			{string(core.More), s.More, "more"},
		} {
			h.raw(`<li`)
			h.attr("class", item.class)
			h.raw(`>`)
			h.text(item.label)
			h.raw(` <strong>`)
			h.text(strconv.Itoa(item.n))
			h.raw(`</strong></li>`)
		}
		h.raw(`</ul>`)
	})
}

// ExportLinks offers the current view as xlsx and PDF downloads.
func ExportLinks(q core.ReportQuery) templ.Component {
	return component(func(ctx context.Context, h *html) {
		id := ""
		if q.View == core.ViewAircraft {
			id = q.AircraftID
		}
		h.raw(`<p class="exports">Download: <a`)
		h.attr("href", link("/export/xlsx", "view", string(q.View), "id", id))
		h.raw(`>Excel (.xlsx)</a> <a`)
		h.attr("href", link("/export/pdf", "view", string(q.View), "id", id))
		h.raw(`>PDF</a></p>`)
	})
}

// ReportTable renders report rows, or empty when there are none.
func ReportTable(rows []core.ReportRow, empty string) templ.Component {
	return component(func(ctx context.Context, h *html) {
		if len(rows) == 0 {
			h.raw(`<p class="empty">`)
			h.text(empty)
			h.raw(`</p>`)
			return
		}

		h.raw(`<table class="report-table"><thead><tr>`)
		for _, col := range []string{"A/C", "Desc", "Required", "Available", "Result"} {
			h.raw(`<th scope="col">`)
			h.text(col)
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead><tbody>`)
		for _, r := range rows {
			h.raw(`<tr`)
			h.attr("class", "result-"+strings.ToLower(string(r.Result)))
			h.raw(`><td>`)
			h.text(r.AircraftID)
			h.raw(`</td><td>`)
			h.text(r.Description)
			h.raw(`</td><td class="num">`)
			h.text(strconv.Itoa(r.Required))
			h.raw(`</td><td class="num">`)
			h.text(strconv.Itoa(r.Available))
			h.raw(`</td><td>`)
			h.text(string(r.Result))
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)
	})
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
