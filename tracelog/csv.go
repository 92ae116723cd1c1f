package tracelog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

var csvHeader = []string{"run_id", "iteration", "ant", "reached", "hamming", "path", "timestamp"}

// pathSep joins transition names inside the CSV path column.
const pathSep = "|"

// WriteCSV writes the log as CSV with a header row. Paths are joined
// with "|" since transition names never contain that character in
// generated nets.
func (l *Log) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range l.Records {
		row := []string{
			r.RunID,
			strconv.Itoa(r.Iteration),
			strconv.Itoa(r.Ant),
			strconv.FormatBool(r.Reached),
			strconv.Itoa(r.Hamming),
			strings.Join(r.Path, pathSep),
			r.Timestamp.Format(time.RFC3339Nano),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the log to a CSV file.
func (l *Log) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return l.WriteCSV(f)
}

// ReadCSV parses a log from CSV produced by WriteCSV.
func ReadCSV(r io.Reader) (*Log, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty csv: missing header")
	}
	if len(rows[0]) != len(csvHeader) || rows[0][0] != csvHeader[0] {
		return nil, fmt.Errorf("unexpected csv header: %v", rows[0])
	}

	log := NewLog()
	for i, row := range rows[1:] {
		rec, err := parseCSVRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		log.Append(rec)
	}
	return log, nil
}

// LoadCSV reads a log from a CSV file.
func LoadCSV(path string) (*Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

func parseCSVRow(row []string) (Record, error) {
	var rec Record
	if len(row) != len(csvHeader) {
		return rec, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(row))
	}
	rec.RunID = row[0]

	var err error
	if rec.Iteration, err = strconv.Atoi(row[1]); err != nil {
		return rec, fmt.Errorf("iteration: %w", err)
	}
	if rec.Ant, err = strconv.Atoi(row[2]); err != nil {
		return rec, fmt.Errorf("ant: %w", err)
	}
	if rec.Reached, err = strconv.ParseBool(row[3]); err != nil {
		return rec, fmt.Errorf("reached: %w", err)
	}
	if rec.Hamming, err = strconv.Atoi(row[4]); err != nil {
		return rec, fmt.Errorf("hamming: %w", err)
	}
	if row[5] != "" {
		rec.Path = strings.Split(row[5], pathSep)
	}
	if rec.Timestamp, err = time.Parse(time.RFC3339Nano, row[6]); err != nil {
		return rec, fmt.Errorf("timestamp: %w", err)
	}
	return rec, nil
}
