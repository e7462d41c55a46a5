package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/acparts/internal/core"
)

// multipartMemory is how much of a multipart body is buffered in memory
// before spilling to temporary files.
const multipartMemory = 8 << 20

// multipartOverhead leaves room for boundaries and headers around the file.
const multipartOverhead = 64 << 10

var errFileTooLarge = errors.New("file too large")

// UploadResponse is returned by POST /api/upload.
type UploadResponse struct {
	FileName string            `json:"file_name"`
	Records  int               `json:"records"`
	Aircraft []string          `json:"aircraft"`
	Skipped  []core.SkippedRow `json:"skipped"`
}

// handleUpload accepts the browser form and returns to the full report.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if _, err := s.receiveUpload(w, r); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAPIUpload(w http.ResponseWriter, r *http.Request) {
	ds, err := s.receiveUpload(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	skipped := ds.Skipped
	if skipped == nil {
		skipped = []core.SkippedRow{}
	}
	writeJSON(w, http.StatusCreated, UploadResponse{
		FileName: ds.FileName,
		Records:  len(ds.Records),
		Aircraft: core.DistinctAircraft(ds.Records),
		Skipped:  skipped,
	})
}

// receiveUpload reads the multipart "file" field and loads it into the
// caller's session.
func (s *Server) receiveUpload(w http.ResponseWriter, r *http.Request) (*core.Dataset, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errNoFile, err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, errNoFile
	}
	defer file.Close()

	if header.Size > maxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", errFileTooLarge, header.Size, maxSize)
	}

	return s.service.LoadDataset(r.Context(), sessionFrom(r), header.Filename, file, header.Size)
}
