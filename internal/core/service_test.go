package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(DefaultManifest(), ServiceOptions{
		SessionTTL:           time.Hour,
		MaxRows:              100,
		HeaderSearchRows:     3,
		MaxConcurrentUploads: 2,
		MaxUploadWait:        time.Second,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

const sampleCSV = "A/C,Desc\nN1,Aft pintle sin\nN1,aft pintle sin \nN1,Torque link\nN2,Landing light\n"

func TestNewService_RequiresManifest(t *testing.T) {
	if _, err := NewService(nil, ServiceOptions{}); !errors.Is(err, ErrInvalidManifest) {
		t.Errorf("err = %v, want ErrInvalidManifest", err)
	}
}

func TestService_ReportWithoutDataset(t *testing.T) {
	svc := newTestService(t)
	sess := svc.Sessions().Create()

	if _, err := svc.Report(sess, ReportQuery{View: ViewFull}); !errors.Is(err, ErrNoDataset) {
		t.Errorf("err = %v, want ErrNoDataset", err)
	}
}

func TestService_LoadAndReport(t *testing.T) {
	svc := newTestService(t)
	sess := svc.Sessions().Create()

	ds, err := svc.LoadDataset(context.Background(), sess, "inv.csv", strings.NewReader(sampleCSV), int64(len(sampleCSV)))
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if len(ds.Records) != 4 {
		t.Fatalf("len(Records) = %d, want 4", len(ds.Records))
	}

	full, err := svc.Report(sess, ReportQuery{View: ViewFull})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	k := svc.Manifest().Len()
	if len(full.Rows) != 2*k {
		t.Errorf("full rows = %d, want %d", len(full.Rows), 2*k)
	}
	if full.FileName != "inv.csv" {
		t.Errorf("FileName = %q", full.FileName)
	}
	if strings.Join(full.Aircraft, ",") != "N1,N2" {
		t.Errorf("Aircraft = %v", full.Aircraft)
	}
	if full.Summary.Total != len(full.Rows) {
		t.Errorf("Summary.Total = %d, want %d", full.Summary.Total, len(full.Rows))
	}

	// N1 has both pintles, so that row is OK and drops out of the imperfect view.
	imperfect, err := svc.Report(sess, ReportQuery{View: ViewImperfect})
	if err != nil {
		t.Fatalf("Report(imperfect): %v", err)
	}
	for _, r := range imperfect.Rows {
		if r.AircraftID == "N1" && r.Description == "Aft pintle sin" {
			t.Errorf("OK row in imperfect view: %+v", r)
		}
	}
	if imperfect.Summary.OK != 0 {
		t.Errorf("imperfect summary = %+v", imperfect.Summary)
	}

	one, err := svc.Report(sess, ReportQuery{View: ViewAircraft, AircraftID: "N2"})
	if err != nil {
		t.Fatalf("Report(aircraft): %v", err)
	}
	if len(one.Rows) != k {
		t.Errorf("aircraft rows = %d, want %d", len(one.Rows), k)
	}

	defaulted, err := svc.Report(sess, ReportQuery{View: ViewAircraft})
	if err != nil {
		t.Fatalf("Report(aircraft, no id): %v", err)
	}
	if defaulted.Query.AircraftID != "N1" || len(defaulted.Rows) != k {
		t.Errorf("default aircraft = %q with %d rows, want N1 with %d", defaulted.Query.AircraftID, len(defaulted.Rows), k)
	}
}

func TestService_FailedUploadKeepsPreviousDataset(t *testing.T) {
	svc := newTestService(t)
	sess := svc.Sessions().Create()
	ctx := context.Background()

	if _, err := svc.LoadDataset(ctx, sess, "inv.csv", strings.NewReader(sampleCSV), 0); err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if _, err := svc.LoadDataset(ctx, sess, "bad.csv", strings.NewReader("Tail,Part\nN1,x\n"), 0); !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrMissingColumn", err)
	}
	if got := sess.Dataset(); got == nil || got.FileName != "inv.csv" {
		t.Errorf("dataset after failed upload = %+v", got)
	}
}

func TestService_SessionsAreIsolated(t *testing.T) {
	svc := newTestService(t)
	a := svc.Sessions().Create()
	b := svc.Sessions().Create()

	if _, err := svc.LoadDataset(context.Background(), a, "inv.csv", strings.NewReader(sampleCSV), 0); err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if _, err := svc.Report(b, ReportQuery{}); !errors.Is(err, ErrNoDataset) {
		t.Errorf("session b sees session a's upload: err = %v", err)
	}
}

func TestService_ClearDataset(t *testing.T) {
	svc := newTestService(t)
	sess := svc.Sessions().Create()
	if _, err := svc.LoadDataset(context.Background(), sess, "inv.csv", strings.NewReader(sampleCSV), 0); err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}

	svc.ClearDataset(sess)
	if _, err := svc.Report(sess, ReportQuery{}); !errors.Is(err, ErrNoDataset) {
		t.Errorf("err = %v, want ErrNoDataset", err)
	}
}

func TestService_LoadDatasetCancelled(t *testing.T) {
	svc := newTestService(t)
	sess := svc.Sessions().Create()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.LoadDataset(ctx, sess, "inv.csv", strings.NewReader(sampleCSV), 0); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if svc.UploadStatus().Active != 0 {
		t.Error("cancelled upload still holds a slot")
	}
}

func TestService_WaitForUploads(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := svc.WaitForUploads(ctx); err != nil {
		t.Errorf("WaitForUploads on idle service: %v", err)
	}
}
