package core

// loader.go turns an uploaded inventory file into a Dataset.
//
// Supported inputs are Excel workbooks (first worksheet) and CSV files. The
// header row is the first row, among the leading HeaderSearchRows rows, that
// carries both the A/C and Desc columns; other columns are ignored. Rows are
// read through an iterator so the MaxRows cap stops oversized files early.
//
// Row policy:
//   - cells are trimmed of surrounding whitespace
//   - rows with no content at all are ignored
//   - rows failing ValidateRecord (e.g. empty A/C) are skipped and listed in
//     Dataset.Skipped; the rest of the file is kept
//   - a missing header fails the whole file with ErrMissingColumn

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// LoaderOptions bounds ingestion work.
type LoaderOptions struct {
	MaxRows          int // maximum accepted data rows (0 = unlimited)
	HeaderSearchRows int // leading rows scanned for the header (0 = 1)
}

// HeaderIndex maps lowercased header names to their column position.
type HeaderIndex map[string]int

// MakeHeaderIndex builds a HeaderIndex from a header row. When a header
// repeats, the leftmost column wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(cleanHeader(h))
		if key == "" {
			continue
		}
		if _, exists := idx[key]; !exists {
			idx[key] = i
		}
	}
	return idx
}

// cleanHeader trims a header cell and unwraps the ="..." form some exports use.
func cleanHeader(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

// rowSource yields raw rows one at a time along with their 1-based line
// number in the source file. next returns io.EOF when done.
type rowSource interface {
	next() ([]string, int, error)
	close() error
}

// ParseInventory reads fileName's content from r and returns the accepted records.
func ParseInventory(r io.Reader, fileName string, opts LoaderOptions) (*Dataset, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("read upload: %w", err)
	}

	src, err := openRowSource(br, fileName)
	if err != nil {
		return nil, err
	}
	defer src.close()

	ds, err := parseRows(src, opts)
	if err != nil {
		return nil, err
	}
	ds.FileName = filepath.Base(fileName)
	ds.UploadedAt = time.Now()
	return ds, nil
}

func openRowSource(r io.Reader, fileName string) (rowSource, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".xlsx", ".xlsm":
		return openXLSX(r)
	case ".csv":
		cr := csv.NewReader(WrapCSVReader(r))
		cr.FieldsPerRecord = -1
		cr.LazyQuotes = true
		cr.ReuseRecord = false
		return &csvSource{r: cr}, nil
	default:
		if ext == "" {
			ext = "(none)"
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func parseRows(src rowSource, opts LoaderOptions) (*Dataset, error) {
	searchRows := opts.HeaderSearchRows
	if searchRows <= 0 {
		searchRows = 1
	}

	var (
		firstRow []string
		acPos    = -1
		descPos  = -1
		scanned  int
		line     int
	)

	// Locate the header.
	for scanned < searchRows {
		row, n, err := src.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		scanned++
		line = n

		if firstRow == nil && !isBlankRow(row) {
			firstRow = row
		}
		idx := MakeHeaderIndex(row)
		ac, okAC := idx[strings.ToLower(ColumnAircraft)]
		desc, okDesc := idx[strings.ToLower(ColumnDescription)]
		if okAC && okDesc {
			acPos, descPos = ac, desc
			break
		}
	}

	if acPos < 0 {
		if scanned == 0 {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missingColumns(firstRow), ", "))
	}

	ds := &Dataset{}
	for {
		row, n, err := src.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line = n

		if isBlankRow(row) {
			continue
		}

		rec := InventoryRecord{
			Line:        line,
			AircraftID:  cellAt(row, acPos),
			Description: cellAt(row, descPos),
		}
		if err := ValidateRecord(rec); err != nil {
			ds.Skipped = append(ds.Skipped, SkippedRow{Line: line, Reason: err.Error()})
			continue
		}

		if opts.MaxRows > 0 && len(ds.Records) >= opts.MaxRows {
			return nil, fmt.Errorf("%w: more than %d data rows", ErrTooManyRows, opts.MaxRows)
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

// missingColumns names the required headers absent from row.
func missingColumns(row []string) []string {
	idx := MakeHeaderIndex(row)
	var missing []string
	for _, col := range []string{ColumnAircraft, ColumnDescription} {
		if _, ok := idx[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		missing = []string{ColumnAircraft, ColumnDescription}
	}
	return missing
}

func cellAt(row []string, pos int) string {
	if pos < 0 || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

type csvSource struct {
	r *csv.Reader
}

func (s *csvSource) next() ([]string, int, error) {
	row, err := s.r.Read()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, 0, fmt.Errorf("invalid csv: %w", err)
		}
		return nil, 0, err
	}
	// encoding/csv drops empty lines, so take the line from the reader.
	line, _ := s.r.FieldPos(0)
	return row, line, nil
}

func (s *csvSource) close() error { return nil }

type xlsxSource struct {
	file *excelize.File
	rows *excelize.Rows
	line int
}

func openXLSX(r io.Reader) (*xlsxSource, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid spreadsheet: %w", err)
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, ErrEmptyFile
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("invalid spreadsheet: sheet %q: %w", sheets[0], err)
	}
	return &xlsxSource{file: f, rows: rows}, nil
}

func (s *xlsxSource) next() ([]string, int, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return nil, 0, fmt.Errorf("invalid spreadsheet: %w", err)
		}
		return nil, 0, io.EOF
	}
	s.line++
	row, err := s.rows.Columns()
	if err != nil {
		return nil, 0, fmt.Errorf("invalid spreadsheet: row %d: %w", s.line, err)
	}
	return row, s.line, nil
}

func (s *xlsxSource) close() error {
	rerr := s.rows.Close()
	ferr := s.file.Close()
	return errors.Join(rerr, ferr)
}
