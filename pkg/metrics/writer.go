package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

const CSV_SEPARATOR = ';'

var (
	metricsHeader  = []string{"Jaccard", "length_real", "length_calc", "user", "length_dif"}
	failuresHeader = []string{"user", "stage", "reason"}
)

// WriteMetrics. ';' separated metrics table with a header row and no index column.
func WriteMetrics(w io.Writer, records []Record) error {
	writer := csv.NewWriter(w)
	writer.Comma = CSV_SEPARATOR

	if err := writer.Write(metricsHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.JaccardString(),
			strconv.Itoa(r.LengthReal),
			strconv.Itoa(r.LengthCalc),
			r.User,
			strconv.Itoa(r.LengthDif),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteFailures(w io.Writer, failures []Failure) error {
	writer := csv.NewWriter(w)
	writer.Comma = CSV_SEPARATOR

	if err := writer.Write(failuresHeader); err != nil {
		return err
	}
	for _, f := range failures {
		if err := writer.Write([]string{f.User, string(f.Stage), f.Reason}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteMetricsFile. write the table to dir/name, creating dir if needed. returns the file path.
func WriteMetricsFile(dir, name string, records []Record) (string, error) {
	return writeFile(dir, name, func(w io.Writer) error {
		return WriteMetrics(w, records)
	})
}

func WriteFailuresFile(dir, name string, failures []Failure) (string, error) {
	return writeFile(dir, name, func(w io.Writer) error {
		return WriteFailures(w, failures)
	})
}

func writeFile(dir, name string, write func(w io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
