package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fleetfuel/reconciliation-engine/internal/domain"
	"github.com/fleetfuel/reconciliation-engine/pkg/fileutil"
)

// DefaultDateFormat matches the d/m/yyyy dates both ledger exports use.
const DefaultDateFormat = "2/1/2006"

var (
	bankRequiredFields = []string{"invoice_number", "transaction_date", "total_amount"}
	bankOptionalFields = []string{
		"account_no", "settlement_date", "time", "product", "liter", "price",
		"amount_before_vat", "vat", "wht_1_percent", "total_amount_after_wd",
		"merchant_id", "fuel_brand",
	}
)

// CSVBankRepository loads the bank settlement export from a CSV file.
// Malformed rows are skipped with a warning rather than failing the run;
// the settlement exports routinely contain ragged footer rows.
type CSVBankRepository struct {
	FilePath   string
	DateFormat string
	logger     *zap.Logger
}

// NewCSVBankRepository creates a new CSVBankRepository.
func NewCSVBankRepository(filePath string, dateFormat string, logger *zap.Logger) *CSVBankRepository {
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CSVBankRepository{
		FilePath:   filePath,
		DateFormat: dateFormat,
		logger:     logger,
	}
}

// GetRecords reads and parses the settlement export.
func (r *CSVBankRepository) GetRecords(ctx context.Context) ([]domain.BankRecord, error) {
	reader := fileutil.NewCSVReader(r.FilePath)

	header, err := reader.ReadHeader()
	if err != nil {
		return nil, fmt.Errorf("reading settlement export header: %w", err)
	}

	columnMap, err := createHeaderMap(header, bankRequiredFields, bankOptionalFields)
	if err != nil {
		return nil, fmt.Errorf("mapping CSV columns: %w", err)
	}

	var records []domain.BankRecord
	rowProcessorFn := func(row []string) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !rowCovers(row, columnMap, bankRequiredFields) {
			r.logger.Warn("skipping short settlement row", zap.Int("fields", len(row)))
			return nil
		}

		rawDate, err := time.Parse(r.DateFormat, row[columnMap["transaction_date"]])
		if err != nil {
			r.logger.Warn("skipping settlement row with invalid date", zap.Error(err))
			return nil
		}

		totalAmount, err := parseAmount(row[columnMap["total_amount"]])
		if err != nil {
			r.logger.Warn("skipping settlement row with invalid amount", zap.Error(err))
			return nil
		}

		rec := domain.BankRecord{
			InvoiceNumber:   row[columnMap["invoice_number"]],
			TransactionDate: row[columnMap["transaction_date"]],
			TotalAmount:     totalAmount,
			RawDate:         rawDate,
		}

		rec.AccountNo = optionalField(row, columnMap, "account_no")
		rec.SettlementDate = optionalField(row, columnMap, "settlement_date")
		rec.Time = optionalField(row, columnMap, "time")
		rec.Product = optionalField(row, columnMap, "product")
		rec.MerchantID = optionalField(row, columnMap, "merchant_id")
		rec.FuelBrand = optionalField(row, columnMap, "fuel_brand")
		rec.Liter = optionalAmount(row, columnMap, "liter")
		rec.Price = optionalAmount(row, columnMap, "price")
		rec.AmountBeforeVAT = optionalAmount(row, columnMap, "amount_before_vat")
		rec.VAT = optionalAmount(row, columnMap, "vat")
		rec.WHTOnePercent = optionalAmount(row, columnMap, "wht_1_percent")
		rec.TotalAmountAfterWD = optionalAmount(row, columnMap, "total_amount_after_wd")

		records = append(records, rec)
		return nil
	}

	if err := reader.ReadAndProcessByRow(rowProcessorFn); err != nil {
		return nil, fmt.Errorf("processing settlement export: %w", err)
	}

	return records, nil
}

// rowCovers reports whether the row is long enough to carry every required
// column.
func rowCovers(row []string, columnMap map[string]int, required []string) bool {
	for _, column := range required {
		if columnMap[column] >= len(row) {
			return false
		}
	}
	return true
}

func optionalField(row []string, columnMap map[string]int, column string) string {
	idx, ok := columnMap[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func optionalAmount(row []string, columnMap map[string]int, column string) decimal.Decimal {
	value := optionalField(row, columnMap, column)
	amount, err := parseAmount(value)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
