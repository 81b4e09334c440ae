// Package summary reduces a classified, date-ordered transaction
// sequence to period totals and opening/closing balances.
package summary

import (
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// Rounding selects how credit and debit totals are rounded to two
// decimal places.
type Rounding int

const (
	// RoundHalfEven rounds halves to the nearest even digit (banker's
	// rounding). This is the default for period totals.
	RoundHalfEven Rounding = iota
	// RoundHalfAwayFromZero rounds halves up in absolute value.
	RoundHalfAwayFromZero
)

func (r Rounding) apply(d decimal.Decimal) decimal.Decimal {
	if r == RoundHalfAwayFromZero {
		return d.Round(2)
	}
	return d.RoundBank(2)
}

// Compute reduces txns, already classified and in date order, to a
// PeriodSummary. Credit and debit totals sum the amounts of records
// with the matching type; unknowns count toward the transaction total
// only. The opening balance is the first balance present in sequence
// order, the closing balance the last. An empty sequence yields zero
// totals and absent balances.
func Compute(txns []models.Transaction, rounding Rounding) models.PeriodSummary {
	sum := models.PeriodSummary{
		TotalTransactions: len(txns),
		TotalCredit:       decimal.Zero,
		TotalDebit:        decimal.Zero,
	}

	for _, txn := range txns {
		switch txn.Type {
		case models.TypeCredit:
			sum.TotalCredit = sum.TotalCredit.Add(txn.Amount)
		case models.TypeDebit:
			sum.TotalDebit = sum.TotalDebit.Add(txn.Amount)
		}

		if txn.Balance.Valid {
			if !sum.OpeningBalance.Valid {
				sum.OpeningBalance = txn.Balance
			}
			sum.ClosingBalance = txn.Balance
		}
	}

	sum.TotalCredit = rounding.apply(sum.TotalCredit)
	sum.TotalDebit = rounding.apply(sum.TotalDebit)

	return sum
}
