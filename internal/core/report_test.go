package core

import (
	"reflect"
	"testing"
)

func records(pairs ...string) []InventoryRecord {
	out := make([]InventoryRecord, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, InventoryRecord{Line: i/2 + 2, AircraftID: pairs[i], Description: pairs[i+1]})
	}
	return out
}

func testManifest(t *testing.T, parts ...RequiredPart) *Manifest {
	t.Helper()
	m, err := NewManifest(parts)
	if err != nil {
		t.Fatalf("NewManifest: %v", err)
	}
	return m
}

func TestClassify(t *testing.T) {
	tests := []struct {
		available, required int
		want                Classification
	}{
		{0, 2, Less},
		{1, 2, Less},
		{2, 2, OK},
		{3, 2, More},
		{0, 0, OK},
		{1, 0, More},
	}
	for _, tt := range tests {
		if got := Classify(tt.available, tt.required); got != tt.want {
			t.Errorf("Classify(%d, %d) = %s, want %s", tt.available, tt.required, got, tt.want)
		}
	}
}

func TestNormalizeDescription(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{" Bar ", "bar"},
		{"bar", "bar"},
		{"AFT Pintle SIN", "aft pintle sin"},
		{"\tTorque  link\n", "torque  link"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeDescription(tt.in); got != tt.want {
			t.Errorf("NormalizeDescription(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateReport_Scenario(t *testing.T) {
	m := testManifest(t,
		RequiredPart{Description: "Bar", Required: 1},
		RequiredPart{Description: "Cuff", Required: 2},
	)
	rows := GenerateReport(records(
		"N1", "bar",
		"N1", " Bar ",
		"N1", "cuff",
	), m)

	want := []ReportRow{
		{AircraftID: "N1", Description: "Bar", Required: 1, Available: 2, Result: More},
		{AircraftID: "N1", Description: "Cuff", Required: 2, Available: 1, Result: Less},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("GenerateReport() =\n%+v\nwant\n%+v", rows, want)
	}
}

func TestGenerateReport_Size(t *testing.T) {
	m := DefaultManifest()
	recs := records(
		"N1", "Aft pintle sin",
		"N2", "Torque link",
		"N1", "unlisted part",
		"N3", "",
		"N2", "Brake assembly",
	)

	rows := GenerateReport(recs, m)
	if want := 3 * m.Len(); len(rows) != want {
		t.Fatalf("len(rows) = %d, want %d (N x K)", len(rows), want)
	}

	// Aircraft-major in first-seen order, manifest order within each aircraft.
	parts := m.Parts()
	for i, r := range rows {
		wantAC := []string{"N1", "N2", "N3"}[i/len(parts)]
		if r.AircraftID != wantAC {
			t.Errorf("row %d aircraft = %q, want %q", i, r.AircraftID, wantAC)
		}
		if r.Description != parts[i%len(parts)].Description {
			t.Errorf("row %d description = %q, want %q", i, r.Description, parts[i%len(parts)].Description)
		}
	}
}

func TestGenerateReport_Trichotomy(t *testing.T) {
	rows := GenerateReport(records(
		"N1", "Aft pintle sin",
		"N1", "Aft pintle sin",
		"N1", "Aft pintle sin",
		"N1", "Torque link",
		"N2", "Landing light",
	), DefaultManifest())

	for _, r := range rows {
		var want Classification
		switch {
		case r.Available < r.Required:
			want = Less
		case r.Available > r.Required:
			want = More
		default:
			want = OK
		}
		if r.Result != want {
			t.Errorf("%s/%s: available=%d required=%d result=%s, want %s",
				r.AircraftID, r.Description, r.Available, r.Required, r.Result, want)
		}
	}
}

func TestGenerateReport_NormalizationMatches(t *testing.T) {
	m := testManifest(t, RequiredPart{Description: "Bar", Required: 1})

	for _, desc := range []string{" Bar ", "bar", "BAR", "\tbar"} {
		rows := GenerateReport(records("N1", desc), m)
		if len(rows) != 1 || rows[0].Available != 1 {
			t.Errorf("description %q: rows = %+v, want one match", desc, rows)
		}
	}

	// Normalization stops at trim + lowercase.
	rows := GenerateReport(records("N1", "B ar"), m)
	if rows[0].Available != 0 {
		t.Errorf("description %q should not match %q", "B ar", "Bar")
	}
}

func TestGenerateReport_AircraftIDCaseSensitive(t *testing.T) {
	rows := GenerateReport(records("N1", "Bar", "n1", "Bar"), testManifest(t, RequiredPart{Description: "Bar", Required: 1}))
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2 distinct aircraft", len(rows))
	}
}

func TestGenerateReport_Idempotent(t *testing.T) {
	recs := records("N1", "Torque link", "N2", "Landing light", "N1", "torque link")
	m := DefaultManifest()

	first := GenerateReport(recs, m)
	second := GenerateReport(recs, m)
	if !reflect.DeepEqual(first, second) {
		t.Error("GenerateReport is not idempotent")
	}
}

func TestGenerateReport_EmptyInput(t *testing.T) {
	rows := GenerateReport(nil, DefaultManifest())
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(rows))
	}
}

func TestGenerateReport_NoPartsPresent(t *testing.T) {
	m := DefaultManifest()
	rows := GenerateReport(records("N9", "Coffee maker"), m)

	if len(rows) != m.Len() {
		t.Fatalf("len(rows) = %d, want %d", len(rows), m.Len())
	}
	for _, r := range rows {
		if r.Available != 0 {
			t.Errorf("%s available = %d, want 0", r.Description, r.Available)
		}
		if r.Required > 0 && r.Result != Less {
			t.Errorf("%s result = %s, want Less", r.Description, r.Result)
		}
	}
}

func TestGenerateReport_ZeroRequired(t *testing.T) {
	m := testManifest(t,
		RequiredPart{Description: "Spare fuse", Required: 0},
		RequiredPart{Description: "Bar", Required: 1},
	)
	rows := GenerateReport(records("N1", "Bar"), m)
	if rows[0].Result != OK {
		t.Errorf("required=0 available=0 result = %s, want OK", rows[0].Result)
	}
}

func TestGenerateReport_DescriptionUsesManifestCasing(t *testing.T) {
	rows := GenerateReport(records("N1", "  aft PINTLE sin "), DefaultManifest())
	if rows[0].Description != "Aft pintle sin" || rows[0].Available != 1 {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestImperfect(t *testing.T) {
	rows := GenerateReport(records(
		"N1", "Aft pintle sin",
		"N1", "Aft pintle sin",
		"N1", "Torque link",
	), DefaultManifest())
	before := make([]ReportRow, len(rows))
	copy(before, rows)

	imperfect := Imperfect(rows)
	for _, r := range imperfect {
		if r.Result == OK {
			t.Errorf("Imperfect returned an OK row: %+v", r)
		}
	}

	ok := 0
	for _, r := range rows {
		if r.Result == OK {
			ok++
		}
	}
	if len(imperfect)+ok != len(rows) {
		t.Errorf("imperfect=%d ok=%d total=%d", len(imperfect), ok, len(rows))
	}

	if !reflect.DeepEqual(rows, before) {
		t.Error("Imperfect modified its input")
	}
}

func TestImperfect_AllOK(t *testing.T) {
	m := testManifest(t, RequiredPart{Description: "Bar", Required: 1})
	got := Imperfect(GenerateReport(records("N1", "bar"), m))
	if got == nil || len(got) != 0 {
		t.Errorf("Imperfect() = %#v, want empty non-nil slice", got)
	}
}

func TestApplyView(t *testing.T) {
	m := testManifest(t,
		RequiredPart{Description: "Bar", Required: 1},
		RequiredPart{Description: "Cuff", Required: 1},
	)
	full := GenerateReport(records("N1", "Bar", "N1", "Cuff", "N2", "Bar"), m)

	tests := []struct {
		name    string
		query   ReportQuery
		wantLen int
	}{
		{"full", ReportQuery{View: ViewFull}, 4},
		{"imperfect", ReportQuery{View: ViewImperfect}, 1},
		{"aircraft N1", ReportQuery{View: ViewAircraft, AircraftID: "N1"}, 2},
		{"aircraft N2", ReportQuery{View: ViewAircraft, AircraftID: "N2"}, 2},
		{"unknown aircraft", ReportQuery{View: ViewAircraft, AircraftID: "N7"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyView(full, tt.query)
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
			if tt.query.View == ViewAircraft {
				for _, r := range got {
					if r.AircraftID != tt.query.AircraftID {
						t.Errorf("row for %q in view of %q", r.AircraftID, tt.query.AircraftID)
					}
				}
			}
		})
	}

	// The full view is a copy.
	view := ApplyView(full, ReportQuery{View: ViewFull})
	view[0].Result = More
	if full[0].Result == More {
		t.Error("ApplyView(full) aliases its input")
	}
}

func TestSummarize(t *testing.T) {
	rows := []ReportRow{{Result: Less}, {Result: OK}, {Result: OK}, {Result: More}}
	want := Summary{Total: 4, Less: 1, OK: 2, More: 1}
	if got := Summarize(rows); got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

func TestDistinctAircraft(t *testing.T) {
	got := DistinctAircraft(records("N2", "a", "N1", "b", "N2", "c", "N3", "d"))
	want := []string{"N2", "N1", "N3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DistinctAircraft() = %v, want %v", got, want)
	}
}

func TestParseView(t *testing.T) {
	tests := []struct {
		in   string
		want View
	}{
		{"", ViewFull},
		{"full", ViewFull},
		{"imperfect", ViewImperfect},
		{"aircraft", ViewAircraft},
		{"bogus", ViewFull},
	}
	for _, tt := range tests {
		if got := ParseView(tt.in); got != tt.want {
			t.Errorf("ParseView(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
