package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/acparts/internal/logging"
)

// ServiceOptions configures a Service. Zero values fall back to defaults.
type ServiceOptions struct {
	SessionTTL           time.Duration
	MaxRows              int
	HeaderSearchRows     int
	MaxConcurrentUploads int
	MaxUploadWait        time.Duration
}

// Service ties the manifest, the session store and the upload limiter together.
// It holds no per-request state; everything inventory-specific lives in a Session.
type Service struct {
	manifest *Manifest
	sessions *SessionStore
	limiter  *UploadLimiter
	loader   LoaderOptions
}

// NewService creates a Service reporting against manifest.
func NewService(manifest *Manifest, opts ServiceOptions) (*Service, error) {
	if manifest == nil || manifest.Len() == 0 {
		return nil, fmt.Errorf("%w: no parts", ErrInvalidManifest)
	}
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}

	return &Service{
		manifest: manifest,
		sessions: NewSessionStore(ttl),
		limiter:  NewUploadLimiter(opts.MaxConcurrentUploads, opts.MaxUploadWait),
		loader: LoaderOptions{
			MaxRows:          opts.MaxRows,
			HeaderSearchRows: opts.HeaderSearchRows,
		},
	}, nil
}

// Sessions exposes the session store to the transport layer.
func (s *Service) Sessions() *SessionStore {
	return s.sessions
}

// Manifest returns the required-parts manifest in use.
func (s *Service) Manifest() *Manifest {
	return s.manifest
}

// LoadDataset parses an uploaded file and makes it the session's active dataset.
// On failure the previous dataset is left in place.
func (s *Service) LoadDataset(ctx context.Context, sess *Session, fileName string, r io.Reader, size int64) (*Dataset, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	logger := logging.WithFields(ctx, "session", sess.ID, "file", fileName, "size", size)
	start := time.Now()
	ds, err := ParseInventory(contextReader{ctx: ctx, r: r}, fileName, s.loader)
	if err != nil {
		logger.Warn("inventory upload rejected", "error", err)
		return nil, err
	}

	sess.SetDataset(ds)
	logger.Info("inventory uploaded",
		"records", len(ds.Records),
		"skipped", len(ds.Skipped),
		"aircraft", len(DistinctAircraft(ds.Records)),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return ds, nil
}

// ClearDataset drops the session's active dataset.
func (s *Service) ClearDataset(sess *Session) {
	sess.SetDataset(nil)
}

// Report computes the report for the session's dataset and narrows it to q.
// The report is recomputed on every call. An aircraft view without a
// selection shows the first aircraft of the file.
func (s *Service) Report(sess *Session, q ReportQuery) (*Report, error) {
	ds := sess.Dataset()
	if ds == nil {
		return nil, ErrNoDataset
	}

	aircraft := DistinctAircraft(ds.Records)
	if q.View == ViewAircraft && q.AircraftID == "" && len(aircraft) > 0 {
		q.AircraftID = aircraft[0]
	}

	full := GenerateReport(ds.Records, s.manifest)
	rows := ApplyView(full, q)
	return &Report{
		Query:    q,
		FileName: ds.FileName,
		Aircraft: aircraft,
		Rows:     rows,
		Summary:  Summarize(rows),
	}, nil
}

// UploadStatus reports the upload limiter's state.
func (s *Service) UploadStatus() UploadStatus {
	return s.limiter.Status()
}

// WaitForUploads blocks until in-flight uploads finish or ctx is done.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.Drain(ctx)
}

// contextReader stops reading once ctx is done, so a cancelled request does
// not keep parsing a large body.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
