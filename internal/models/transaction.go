package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the polarity assigned to a transaction.
type TransactionType string

const (
	TypeCredit  TransactionType = "credit"
	TypeDebit   TransactionType = "debit"
	TypeUnknown TransactionType = "unknown"
)

// Transaction represents a single statement transaction.
//
// Amount is always the positive magnitude of the movement; the direction
// lives in Type. Balance is the running account balance printed on the same
// line, when the statement repeats it.
type Transaction struct {
	Date        time.Time           `json:"date"`
	Description string              `json:"description"`
	Amount      decimal.Decimal     `json:"amount"`
	Balance     decimal.NullDecimal `json:"balance"`
	Type        TransactionType     `json:"type"`
}

// PeriodSummary aggregates a classified, date-ordered transaction sequence.
// It is recomputed per request and never stored.
type PeriodSummary struct {
	TotalTransactions int                 `json:"total_transactions"`
	TotalCredit       decimal.Decimal     `json:"total_credit"`
	TotalDebit        decimal.Decimal     `json:"total_debit"`
	OpeningBalance    decimal.NullDecimal `json:"opening_balance"`
	ClosingBalance    decimal.NullDecimal `json:"closing_balance"`
}

// Statement is the final output of a processing run: the transactions in
// ascending date order plus their summary.
type Statement struct {
	Transactions []Transaction `json:"transactions"`
	Summary      PeriodSummary `json:"summary"`
}
