package domain

import "context"

// BankRecordRepository defines the interface for loading the bank
// settlement export.
type BankRecordRepository interface {
	GetRecords(ctx context.Context) ([]BankRecord, error)
}

// BookRecordRepository defines the interface for loading the general-ledger
// export.
type BookRecordRepository interface {
	GetRecords(ctx context.Context) ([]BookRecord, error)
}
