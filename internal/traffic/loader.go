package traffic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/errors"
)

// Column names required in the input CSV header
const (
	ColumnTime        = "Time"
	ColumnState       = "State"
	ColumnProbability = "Probability"
)

// LoadCSV reads a simulation dataset from the CSV file at path
func LoadCSV(path string) (Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to open input file %s", path), err)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses a simulation dataset from r. The first row must be a
// header containing Time, State and Probability columns; extra columns
// are ignored. Malformed rows fail the whole read with an error naming
// the 1-based data row, rather than being silently skipped.
func ReadCSV(r io.Reader) (Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Row width is checked against required columns below

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.NewDataFormatError("input is empty, expected a header row", nil)
		}
		return nil, errors.NewDataFormatError("failed to read header row", err)
	}

	timeIdx := -1
	stateIdx := -1
	probIdx := -1

	for i, col := range header {
		switch strings.TrimSpace(col) {
		case ColumnTime:
			timeIdx = i
		case ColumnState:
			stateIdx = i
		case ColumnProbability:
			probIdx = i
		}
	}

	var missing []string
	if timeIdx < 0 {
		missing = append(missing, ColumnTime)
	}
	if stateIdx < 0 {
		missing = append(missing, ColumnState)
	}
	if probIdx < 0 {
		missing = append(missing, ColumnProbability)
	}
	if len(missing) > 0 {
		return nil, errors.NewDataFormatError(
			fmt.Sprintf("header is missing required columns: %s", strings.Join(missing, ", ")), nil)
	}

	var data Dataset
	row := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, errors.NewDataFormatError(fmt.Sprintf("row %d: malformed CSV record", row), err).
				WithContext("row", row)
		}

		if n := len(record); timeIdx >= n || stateIdx >= n || probIdx >= n {
			return nil, errors.NewDataFormatError(
				fmt.Sprintf("row %d: record has %d fields, required columns are missing", row, len(record)), nil).
				WithContext("row", row)
		}

		timeVal, err := strconv.ParseFloat(strings.TrimSpace(record[timeIdx]), 64)
		if err != nil {
			return nil, errors.NewDataFormatError(
				fmt.Sprintf("row %d: invalid %s value %q", row, ColumnTime, record[timeIdx]), err).
				WithContext("row", row).
				WithContext("column", ColumnTime)
		}

		prob, err := strconv.ParseFloat(strings.TrimSpace(record[probIdx]), 64)
		if err != nil {
			return nil, errors.NewDataFormatError(
				fmt.Sprintf("row %d: invalid %s value %q", row, ColumnProbability, record[probIdx]), err).
				WithContext("row", row).
				WithContext("column", ColumnProbability)
		}

		data = append(data, Observation{
			Time:        timeVal,
			State:       State(strings.TrimSpace(record[stateIdx])),
			Probability: prob,
		})
	}

	return data, nil
}
