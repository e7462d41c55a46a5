// Package export writes report rows as downloadable documents.
//
// Both formats carry the same five columns in the same order and take the
// rows of whichever view is being exported; filtering happens before export.
package export

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/JonMunkholm/acparts/internal/core"
)

// Header is the column row shared by every export format.
var Header = []string{"A/C", "Desc", "Required", "Available", "Result"}

// Title heads the PDF export.
const Title = "Aircraft Inventory Report"

// Content types served with each format.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// cells renders a row as strings in Header order.
func cells(r core.ReportRow) []string {
	return []string{
		r.AircraftID,
		r.Description,
		strconv.Itoa(r.Required),
		strconv.Itoa(r.Available),
		string(r.Result),
	}
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName builds the download name for a view, e.g.
// "inventory-report-aircraft-N123.pdf".
func FileName(q core.ReportQuery, ext string) string {
	name := "inventory-report-" + string(q.View)
	if q.View == core.ViewAircraft && q.AircraftID != "" {
		name += "-" + strings.Trim(unsafeFileChars.ReplaceAllString(q.AircraftID, "_"), "_")
	}
	return name + "." + ext
}
