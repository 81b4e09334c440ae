package parser

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// Extractor turns raw statement text into transaction records, one per
// qualifying line. A line qualifies when it carries a date token and at
// least one amount token; every other line is ignored.
type Extractor struct {
	rules Rules
}

func NewExtractor(rules Rules) *Extractor {
	return &Extractor{rules: rules}
}

// Extract scans text line by line and returns the transactions found, in
// source order. It never fails: lines that do not qualify, or whose
// tokens refuse numeric conversion, are skipped. An empty result means
// the text contained no recognisable transactions; the caller decides
// whether that is an error. Lines may be arbitrarily long: whole-document
// PDF extraction sometimes hands over a single unbroken string.
func (e *Extractor) Extract(text string) []models.Transaction {
	var txns []models.Transaction

	for _, line := range strings.Split(text, "\n") {
		dateTok := e.rules.Date.FindString(line)
		if dateTok == "" {
			continue
		}
		amounts := e.rules.Amount.FindAllString(line, -1)
		if len(amounts) == 0 {
			continue
		}

		txn, ok := e.buildTransaction(line, dateTok, amounts)
		if !ok {
			continue
		}
		txns = append(txns, txn)
	}

	return txns
}

// buildTransaction assembles a record from one qualifying line. With a
// single amount token the line carries no balance; with two or more, the
// last token is the running balance and the one before it the amount.
// Tokens further left stay in the raw line but are stripped from the
// description like every other amount.
func (e *Extractor) buildTransaction(line, dateTok string, amounts []string) (models.Transaction, bool) {
	date, err := time.Parse(e.rules.DateLayout, dateTok)
	if err != nil {
		return models.Transaction{}, false
	}

	txn := models.Transaction{
		Date:        date,
		Description: stripTokens(line, dateTok, amounts),
		Type:        models.TypeUnknown,
	}

	last, err := parseAmount(amounts[len(amounts)-1])
	if err != nil {
		return models.Transaction{}, false
	}

	if len(amounts) == 1 {
		txn.Amount = last
		return txn, true
	}

	amt, err := parseAmount(amounts[len(amounts)-2])
	if err != nil {
		return models.Transaction{}, false
	}
	txn.Amount = amt
	txn.Balance = decimal.NullDecimal{Decimal: last, Valid: true}

	return txn, true
}

// stripTokens removes the date token and every amount token from the
// line, then trims the ends. Interior whitespace is left as-is.
func stripTokens(line, dateTok string, amounts []string) string {
	desc := strings.ReplaceAll(line, dateTok, "")
	for _, a := range amounts {
		desc = strings.ReplaceAll(desc, a, "")
	}
	return strings.TrimSpace(desc)
}
