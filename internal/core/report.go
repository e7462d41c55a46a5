package core

import "strings"

// NormalizeDescription is the matching key for part descriptions: surrounding
// whitespace trimmed, then lowercased. Internal whitespace and punctuation are kept.
func NormalizeDescription(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type countKey struct {
	aircraft string
	part     string
}

// GenerateReport joins the inventory against the manifest. It returns one row
// per (aircraft, part) pair: aircraft in first-seen order, parts in manifest
// order, available = 0 for parts never observed on that aircraft.
func GenerateReport(records []InventoryRecord, manifest *Manifest) []ReportRow {
	counts := make(map[countKey]int)
	var aircraft []string
	seen := make(map[string]bool)

	for _, rec := range records {
		counts[countKey{rec.AircraftID, NormalizeDescription(rec.Description)}]++
		if !seen[rec.AircraftID] {
			seen[rec.AircraftID] = true
			aircraft = append(aircraft, rec.AircraftID)
		}
	}

	rows := make([]ReportRow, 0, len(aircraft)*len(manifest.parts))
	for _, ac := range aircraft {
		for _, part := range manifest.parts {
			available := counts[countKey{ac, NormalizeDescription(part.Description)}]
			rows = append(rows, ReportRow{
				AircraftID:  ac,
				Description: part.Description,
				Required:    part.Required,
				Available:   available,
				Result:      Classify(available, part.Required),
			})
		}
	}
	return rows
}

// DistinctAircraft lists aircraft ids in first-seen order.
func DistinctAircraft(records []InventoryRecord) []string {
	var out []string
	seen := make(map[string]bool)
	for _, rec := range records {
		if !seen[rec.AircraftID] {
			seen[rec.AircraftID] = true
			out = append(out, rec.AircraftID)
		}
	}
	return out
}

// Imperfect returns the rows whose result is not OK, as a new slice.
func Imperfect(rows []ReportRow) []ReportRow {
	out := make([]ReportRow, 0)
	for _, r := range rows {
		if r.Result != OK {
			out = append(out, r)
		}
	}
	return out
}

// ForAircraft returns the rows of a single aircraft, as a new slice.
func ForAircraft(rows []ReportRow, aircraftID string) []ReportRow {
	out := make([]ReportRow, 0)
	for _, r := range rows {
		if r.AircraftID == aircraftID {
			out = append(out, r)
		}
	}
	return out
}

// ApplyView narrows a full report to the rows selected by q.
func ApplyView(rows []ReportRow, q ReportQuery) []ReportRow {
	switch q.View {
	case ViewImperfect:
		return Imperfect(rows)
	case ViewAircraft:
		return ForAircraft(rows, q.AircraftID)
	default:
		out := make([]ReportRow, len(rows))
		copy(out, rows)
		return out
	}
}

// Summarize counts rows per classification.
func Summarize(rows []ReportRow) Summary {
	s := Summary{Total: len(rows)}
	for _, r := range rows {
		switch r.Result {
		case Less:
			s.Less++
		case More:
			s.More++
		default:
			s.OK++
		}
	}
	return s
}
