// Package failurelog keeps a deduplicated CSV log of (isbn, reason)
// pairs. It reads the whole file before every append, so it must only
// be used by a single writer.
package failurelog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var Header = []string{"isbn", "reason"}

type Entry struct {
	ISBN   string
	Reason string
}

type Log struct {
	path string
}

func Open(path string) *Log {
	return &Log{path: path}
}

func (l *Log) Path() string {
	return l.path
}

// Touch creates the log file (and its parents) if it does not exist yet.
func (l *Log) Touch() error {
	err := os.MkdirAll(filepath.Dir(l.path), 0755)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDONLY, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}

func (l *Log) rows() ([][]string, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", l.path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Entries returns every logged pair, the header row excluded.
func (l *Log) Entries() ([]Entry, error) {
	rows, err := l.rows()
	if err != nil {
		return nil, err
	}

	var out []Entry
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		if i == 0 && row[0] == Header[0] && row[1] == Header[1] {
			continue
		}
		out = append(out, Entry{ISBN: row[0], Reason: row[1]})
	}
	return out, nil
}

// Append logs the pair unless it is already present, it reports whether
// a row was written. The header is written first when the file is empty.
func (l *Log) Append(isbn, reason string) (bool, error) {
	rows, err := l.rows()
	if err != nil {
		return false, err
	}
	for _, row := range rows {
		if len(row) >= 2 && row[0] == isbn && row[1] == reason {
			return false, nil
		}
	}

	err = os.MkdirAll(filepath.Dir(l.path), 0755)
	if err != nil {
		return false, err
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if len(rows) == 0 {
		err = writer.Write(Header)
		if err != nil {
			return false, err
		}
	}
	err = writer.Write([]string{isbn, reason})
	if err != nil {
		return false, err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return false, err
	}
	return true, f.Close()
}
