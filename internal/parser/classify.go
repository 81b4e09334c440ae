package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// Classify assigns a type to every transaction in txns, in order, using
// a two-tier policy: an explicit CR/DR marker in the description always
// wins; when a line has no marker, the direction is inferred from how
// the running balance moved since the last balance-bearing line. A
// record left unresolved by both tiers stays TypeUnknown.
//
// The previous balance carries forward across lines that omit one, so a
// run of balance-less records does not blind the delta tier.
func Classify(txns []models.Transaction) {
	var prev decimal.NullDecimal

	for i := range txns {
		txn := &txns[i]

		if t, ok := markerType(txn.Description); ok {
			txn.Type = t
		} else if t, ok := deltaType(prev, txn.Balance); ok {
			txn.Type = t
		} else {
			txn.Type = models.TypeUnknown
		}

		if txn.Balance.Valid {
			prev = txn.Balance
		}
	}
}

// markerType reports the polarity named by an explicit marker in the
// description. Banks print these as a spaced column token (" CR "), a
// slash-delimited infix ("/CR/"), or a bare CR/DR at the end of the
// narrative. Credit markers are checked first.
func markerType(desc string) (models.TransactionType, bool) {
	upper := strings.ToUpper(desc)

	if strings.Contains(upper, " CR ") || strings.Contains(upper, "/CR/") || strings.HasSuffix(upper, "CR") {
		return models.TypeCredit, true
	}
	if strings.Contains(upper, " DR ") || strings.Contains(upper, "/DR/") || strings.HasSuffix(upper, "DR") {
		return models.TypeDebit, true
	}
	return models.TypeUnknown, false
}

// deltaType infers polarity from the running balance: a rise is money
// in, a fall is money out. Equal balances stay unresolved rather than
// guessed.
func deltaType(prev, bal decimal.NullDecimal) (models.TransactionType, bool) {
	if !prev.Valid || !bal.Valid {
		return models.TypeUnknown, false
	}

	switch bal.Decimal.Cmp(prev.Decimal) {
	case 1:
		return models.TypeCredit, true
	case -1:
		return models.TypeDebit, true
	}
	return models.TypeUnknown, false
}
