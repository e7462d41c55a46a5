package core

import (
	"errors"
	"time"
)

var (
	// ErrNoDataset is returned when a report is requested before any inventory was uploaded.
	ErrNoDataset = errors.New("no inventory uploaded")

	// ErrMissingColumn is returned when the A/C or Desc header cannot be found.
	ErrMissingColumn = errors.New("missing required column")

	// ErrUnsupportedFormat is returned for files that are neither xlsx nor csv.
	ErrUnsupportedFormat = errors.New("unsupported file type")

	// ErrEmptyFile is returned for zero-byte uploads or sheets without any rows.
	ErrEmptyFile = errors.New("empty file")

	// ErrTooManyRows is returned when a file exceeds the configured row cap.
	ErrTooManyRows = errors.New("too many rows")

	// ErrDuplicatePart is returned when two manifest entries normalize to the same description.
	ErrDuplicatePart = errors.New("duplicate manifest part")

	// ErrInvalidManifest is returned for manifests that fail validation.
	ErrInvalidManifest = errors.New("invalid manifest")
)

// Column headers of the inventory spreadsheet.
const (
	ColumnAircraft    = "A/C"
	ColumnDescription = "Desc"
)

// InventoryRecord is one accepted row of an uploaded inventory file.
type InventoryRecord struct {
	Line        int    `json:"line" validate:"min=1"`
	AircraftID  string `json:"aircraft_id" validate:"required,max=64"`
	Description string `json:"description" validate:"max=256"`
}

// SkippedRow describes a data row rejected at ingestion.
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Dataset is the parsed content of one uploaded file. It is never mutated
// after ParseInventory returns.
type Dataset struct {
	FileName   string            `json:"file_name"`
	UploadedAt time.Time         `json:"uploaded_at"`
	Records    []InventoryRecord `json:"-"`
	Skipped    []SkippedRow      `json:"skipped,omitempty"`
}

// Classification is the outcome of comparing available against required quantity.
type Classification string

const (
	Less Classification = "Less"
	OK   Classification = "OK"
	More Classification = "More"
)

// Classify returns Less, OK or More for the given quantities.
func Classify(available, required int) Classification {
	switch {
	case available < required:
		return Less
	case available > required:
		return More
	default:
		return OK
	}
}

// ReportRow is one (aircraft, required part) line of the discrepancy report.
type ReportRow struct {
	AircraftID  string         `json:"aircraft_id"`
	Description string         `json:"description"`
	Required    int            `json:"required"`
	Available   int            `json:"available"`
	Result      Classification `json:"result"`
}

// Summary counts report rows per classification.
type Summary struct {
	Total int `json:"total"`
	Less  int `json:"less"`
	OK    int `json:"ok"`
	More  int `json:"more"`
}

// View selects which subset of the report is shown or exported.
type View string

const (
	ViewFull      View = "full"
	ViewImperfect View = "imperfect"
	ViewAircraft  View = "aircraft"
)

// ParseView maps a query value to a View; anything unknown is the full report.
func ParseView(s string) View {
	switch View(s) {
	case ViewImperfect:
		return ViewImperfect
	case ViewAircraft:
		return ViewAircraft
	default:
		return ViewFull
	}
}

// Title is the human label of the view.
func (v View) Title() string {
	switch v {
	case ViewImperfect:
		return "Imperfect Records"
	case ViewAircraft:
		return "Search by Aircraft"
	default:
		return "Full Report"
	}
}

// ReportQuery selects a view and, for ViewAircraft, the aircraft.
type ReportQuery struct {
	View       View   `json:"view"`
	AircraftID string `json:"aircraft_id,omitempty"`
}

// Report is the result of Service.Report: the rows of one view plus context
// for rendering it.
type Report struct {
	Query    ReportQuery `json:"query"`
	FileName string      `json:"file_name"`
	Aircraft []string    `json:"aircraft"`
	Rows     []ReportRow `json:"rows"`
	Summary  Summary     `json:"summary"`
}
