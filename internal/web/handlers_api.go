package web

import (
	"net/http"
	"time"

	"github.com/JonMunkholm/acparts/internal/core"
)

// SessionStatus is returned by GET /api/session.
type SessionStatus struct {
	HasDataset bool              `json:"has_dataset"`
	FileName   string            `json:"file_name,omitempty"`
	UploadedAt *time.Time        `json:"uploaded_at,omitempty"`
	Records    int               `json:"records"`
	Aircraft   []string          `json:"aircraft"`
	Skipped    []core.SkippedRow `json:"skipped"`
}

func (s *Server) handleAPIReport(w http.ResponseWriter, r *http.Request) {
	q := queryFrom(r, core.ParseView(r.URL.Query().Get("view")))

	report, err := s.service.Report(sessionFrom(r), q)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleAPIManifest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"parts": s.service.Manifest().Parts(),
	})
}

func (s *Server) handleAPISession(w http.ResponseWriter, r *http.Request) {
	status := SessionStatus{
		Aircraft: []string{},
		Skipped:  []core.SkippedRow{},
	}
	if ds := sessionFrom(r).Dataset(); ds != nil {
		uploaded := ds.UploadedAt
		status.HasDataset = true
		status.FileName = ds.FileName
		status.UploadedAt = &uploaded
		status.Records = len(ds.Records)
		status.Aircraft = core.DistinctAircraft(ds.Records)
		if ds.Skipped != nil {
			status.Skipped = ds.Skipped
		}
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleUploadStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.UploadStatus())
}
