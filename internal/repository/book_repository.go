package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fleetfuel/reconciliation-engine/internal/domain"
	"github.com/fleetfuel/reconciliation-engine/pkg/fileutil"
)

var bookRequiredFields = []string{"document_no", "posting_date", "description", "amount"}

// CSVBookRepository loads the general-ledger export from a CSV file.
type CSVBookRepository struct {
	FilePath   string
	DateFormat string
	logger     *zap.Logger
}

// NewCSVBookRepository creates a new CSVBookRepository.
func NewCSVBookRepository(filePath string, dateFormat string, logger *zap.Logger) *CSVBookRepository {
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CSVBookRepository{
		FilePath:   filePath,
		DateFormat: dateFormat,
		logger:     logger,
	}
}

// GetRecords reads and parses the general-ledger export.
func (r *CSVBookRepository) GetRecords(ctx context.Context) ([]domain.BookRecord, error) {
	reader := fileutil.NewCSVReader(r.FilePath)

	header, err := reader.ReadHeader()
	if err != nil {
		return nil, fmt.Errorf("reading ledger export header: %w", err)
	}

	columnMap, err := createHeaderMap(header, bookRequiredFields, nil)
	if err != nil {
		return nil, fmt.Errorf("mapping CSV columns: %w", err)
	}

	var records []domain.BookRecord
	rowProcessorFn := func(row []string) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !rowCovers(row, columnMap, bookRequiredFields) {
			r.logger.Warn("skipping short ledger row", zap.Int("fields", len(row)))
			return nil
		}

		rawDate, err := time.Parse(r.DateFormat, row[columnMap["posting_date"]])
		if err != nil {
			r.logger.Warn("skipping ledger row with invalid date", zap.Error(err))
			return nil
		}

		amount, err := parseAmount(row[columnMap["amount"]])
		if err != nil {
			r.logger.Warn("skipping ledger row with invalid amount", zap.Error(err))
			return nil
		}

		records = append(records, domain.BookRecord{
			DocumentNo:  row[columnMap["document_no"]],
			PostingDate: row[columnMap["posting_date"]],
			Description: row[columnMap["description"]],
			Amount:      amount,
			RawDate:     rawDate,
		})
		return nil
	}

	if err := reader.ReadAndProcessByRow(rowProcessorFn); err != nil {
		return nil, fmt.Errorf("processing ledger export: %w", err)
	}

	return records, nil
}
