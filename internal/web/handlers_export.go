package web

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/acparts/internal/core"
	"github.com/JonMunkholm/acparts/internal/export"
)

type exportFunc func(io.Writer, []core.ReportRow) error

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, "xlsx", export.ContentTypeXLSX, export.WriteXLSX)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, "pdf", export.ContentTypePDF, export.WritePDF)
}

// export renders the requested view into memory first so a failure can still
// be reported with a proper status instead of a truncated download.
func (s *Server) export(w http.ResponseWriter, r *http.Request, ext, contentType string, write exportFunc) {
	q := queryFrom(r, core.ParseView(r.URL.Query().Get("view")))

	report, err := s.service.Report(sessionFrom(r), q)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, report.Rows); err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": export.FileName(report.Query, ext),
	}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
