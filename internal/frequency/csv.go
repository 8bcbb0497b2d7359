package frequency

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadCSV reads number,frequency lines. Blank lines and lines starting with '#'
// are skipped, and a leading row with no integer field is treated as a header.
// Field counts are not enforced here so Parse can report them.
func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		if isBlank(record) {
			continue
		}
		if first {
			first = false
			if isHeader(record) {
				continue
			}
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// LoadFile reads rows from a CSV file. A path of "-" reads stdin.
func LoadFile(path string) ([][]string, error) {
	if path == "-" {
		return ReadCSV(os.Stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()
	return ReadCSV(file)
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func isHeader(record []string) bool {
	for _, field := range record {
		if _, err := strconv.Atoi(strings.TrimSpace(field)); err == nil {
			return false
		}
	}
	return true
}
