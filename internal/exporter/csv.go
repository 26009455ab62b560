package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/errors"
	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/traffic"
)

// DatasetWriter writes simulated traffic datasets as CSV files in the
// pipeline's input format
type DatasetWriter struct {
	logger *slog.Logger
}

// NewDatasetWriter creates a new dataset writer instance
func NewDatasetWriter(logger *slog.Logger) *DatasetWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetWriter{logger: logger}
}

// WriteDataset writes the dataset to path with a Time,State,Probability
// header row. Parent directories are created as needed.
func (w *DatasetWriter) WriteDataset(path string, data traffic.Dataset) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to create directory %s", dir), err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{traffic.ColumnTime, traffic.ColumnState, traffic.ColumnProbability}
	if err := writer.Write(header); err != nil {
		return errors.NewStorageError("failed to write CSV header", err)
	}

	for i, obs := range data {
		record := []string{
			formatHour(obs.Time),
			string(obs.State),
			formatProbability(obs.Probability),
		}
		if err := writer.Write(record); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to write CSV record %d", i+1), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewStorageError("failed to flush CSV output", err)
	}

	w.logger.Info("dataset written",
		slog.String("path", path),
		slog.Int("rows", len(data)),
	)

	return nil
}
