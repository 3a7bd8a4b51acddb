// Package loader reads flashcard entries from delimiter-separated text files
// and Excel workbooks into a deck.Store.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/marusora/internal/deck"
)

// DefaultDelimiter separates prompt and response in text files.
const DefaultDelimiter = ','

// Report summarizes a load.
type Report struct {
	Files   int
	Entries int
	Skipped int // Rows with fewer than two non-empty fields
}

// Loader turns source files into entries.
type Loader struct {
	delimiter rune
	logger    *slog.Logger
}

// New creates a Loader. A zero delimiter selects DefaultDelimiter; a nil
// logger discards output.
func New(delimiter rune, logger *slog.Logger) *Loader {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{delimiter: delimiter, logger: logger}
}

// LoadFiles appends the entries of every file to a new store, in argument
// order. Files ending in .xlsx are read as workbooks; anything else as
// delimited text.
func (l *Loader) LoadFiles(paths []string) (*deck.Store, Report, error) {
	store := deck.NewStore()
	var rep Report
	for _, p := range paths {
		var err error
		switch strings.ToLower(filepath.Ext(p)) {
		case ".xlsx", ".xlsm":
			err = l.loadWorkbook(store, p, &rep)
		default:
			err = l.loadTextFile(store, p, &rep)
		}
		if err != nil {
			return nil, rep, err
		}
		rep.Files++
	}
	rep.Entries = store.Size()
	l.logger.Info("entries loaded",
		"files", rep.Files,
		"entries", rep.Entries,
		"skipped", rep.Skipped)
	return store, rep, nil
}

func (l *Loader) loadTextFile(store *deck.Store, path string, rep *Report) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := l.LoadReader(store, f, rep); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// LoadReader appends delimited records from r to store. The first two fields
// of each record are the prompt and response; further fields are ignored.
func (l *Loader) LoadReader(store *deck.Store, r io.Reader, rep *Report) error {
	cr := csv.NewReader(r)
	cr.Comma = l.delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		l.addRow(store, record, rep)
	}
}

func (l *Loader) loadWorkbook(store *deck.Store, path string, rep *Report) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("read sheet %q of %s: %w", sheet, path, err)
		}
		for _, row := range rows {
			l.addRow(store, row, rep)
		}
	}
	return nil
}

func (l *Loader) addRow(store *deck.Store, fields []string, rep *Report) {
	if len(fields) < 2 {
		if len(fields) == 0 || strings.TrimSpace(fields[0]) == "" {
			return
		}
		rep.Skipped++
		l.logger.Debug("skipping row with a single field", "field", fields[0])
		return
	}
	prompt := strings.TrimSpace(fields[0])
	response := strings.TrimSpace(fields[1])
	if prompt == "" || response == "" {
		rep.Skipped++
		l.logger.Debug("skipping row with empty field", "fields", len(fields))
		return
	}
	store.Add(prompt, response)
}
