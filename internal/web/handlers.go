package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/acparts/internal/core"
	"github.com/JonMunkholm/acparts/internal/web/templates"
	"github.com/a-h/templ"
)

// queryFrom reads the view and aircraft selection from the URL.
func queryFrom(r *http.Request, view core.View) core.ReportQuery {
	q := core.ReportQuery{View: view}
	if view == core.ViewAircraft {
		q.AircraftID = r.URL.Query().Get("id")
	}
	return q
}

func (s *Server) handleFullReport(w http.ResponseWriter, r *http.Request) {
	s.renderReport(w, r, queryFrom(r, core.ViewFull))
}

func (s *Server) handleImperfect(w http.ResponseWriter, r *http.Request) {
	s.renderReport(w, r, queryFrom(r, core.ViewImperfect))
}

func (s *Server) handleAircraft(w http.ResponseWriter, r *http.Request) {
	s.renderReport(w, r, queryFrom(r, core.ViewAircraft))
}

// renderReport shows a report view, or the upload prompt when the session
// has no dataset yet.
func (s *Server) renderReport(w http.ResponseWriter, r *http.Request, q core.ReportQuery) {
	sess := sessionFrom(r)

	report, err := s.service.Report(sess, q)
	if errors.Is(err, core.ErrNoDataset) {
		render(w, r, http.StatusOK, templates.NoDatasetPage(q.View))
		return
	}
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	render(w, r, http.StatusOK, templates.ReportPage(templates.ReportPageData{
		Report:  report,
		Dataset: sess.Dataset(),
	}))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.service.ClearDataset(sessionFrom(r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		slog.Warn("render failed", "path", r.URL.Path, "error", err)
	}
}
