package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/gee/internal/core/domain"
	"github.com/custodia-labs/gee/internal/core/ports/driven"
)

// Ensure Exporter implements the interface.
var _ driven.ReportSink = (*Exporter)(nil)

// Exporter writes repository reports as CSV.
//
// An output path with a file extension selects single-file mode: rows of
// every repository are buffered and written to that file on Flush. Any
// other output is a directory receiving one <owner>-<repo>.csv file per
// repository as soon as the report is written. An empty output is the
// current directory.
type Exporter struct {
	output     string
	maxEmails  int
	singleFile bool
	rows       [][]string
}

// NewExporter creates an exporter keeping at most maxEmails emails per user.
func NewExporter(output string, maxEmails int) *Exporter {
	return &Exporter{
		output:     output,
		maxEmails:  maxEmails,
		singleFile: filepath.Ext(output) != "",
	}
}

// SingleFile reports whether every repository goes to one file.
func (e *Exporter) SingleFile() bool {
	return e.singleFile
}

// Write exports one report and returns the file it was written to.
// In single-file mode the rows are buffered and the returned path is empty.
func (e *Exporter) Write(report *domain.RepositoryReport) (string, error) {
	rows := Rows(report, e.maxEmails)
	if e.singleFile {
		e.rows = append(e.rows, rows...)
		return "", nil
	}

	path := filepath.Join(e.output, report.Repo.FileStem()+".csv")
	if err := e.writeFile(path, rows); err != nil {
		return "", err
	}
	return path, nil
}

// Flush writes the buffered rows in single-file mode and returns the file path.
// In directory mode it does nothing and returns an empty path.
func (e *Exporter) Flush() (string, error) {
	if !e.singleFile {
		return "", nil
	}
	if err := e.writeFile(e.output, e.rows); err != nil {
		return "", err
	}
	return e.output, nil
}

func (e *Exporter) writeFile(path string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	content, err := Encode(e.maxEmails, rows)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Header returns the CSV header for maxEmails email columns.
func Header(maxEmails int) []string {
	header := []string{"owner", "repo", "username", "name"}
	for i := 0; i < maxEmails; i++ {
		header = append(header, fmt.Sprintf("email-%d", i))
	}
	return append(header, "topics")
}

// Rows returns one CSV row per resolved user of a report.
// Missing emails are empty cells and topics share one space-separated cell.
func Rows(report *domain.RepositoryReport, maxEmails int) [][]string {
	topics := strings.Join(report.Topics, " ")
	rows := make([][]string, 0, len(report.ResolvedUsers))

	for _, user := range report.ResolvedUsers {
		row := make([]string, 0, maxEmails+5)
		row = append(row, report.Repo.Owner, report.Repo.Name, user.Handle, user.DisplayName)

		emails := user.TopEmails(maxEmails)
		for i := 0; i < maxEmails; i++ {
			if i < len(emails) {
				row = append(row, emails[i])
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, append(row, topics))
	}
	return rows
}

// Encode renders the header followed by rows.
func Encode(maxEmails int, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header(maxEmails)); err != nil {
		return nil, fmt.Errorf("encoding header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("encoding rows: %w", err)
	}
	return buf.Bytes(), nil
}
