package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// exportDateLayout is the fixed, unambiguous date form used in exports.
const exportDateLayout = "2006-01-02"

// columns is the field order shared by the CSV and XLSX exports.
var columns = []string{"Date", "Description", "Amount", "Balance", "Type"}

// CSVWriter writes a processed statement to CSV. With IncludeSummary
// set, period totals are prepended as "#"-prefixed metadata rows.
type CSVWriter struct {
	IncludeSummary bool
}

// WriteToFile writes stmt as CSV to a file at the given path.
func (w *CSVWriter) WriteToFile(path string, stmt *models.Statement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, stmt)
}

// Write writes stmt in CSV form to out.
func (w *CSVWriter) Write(out io.Writer, stmt *models.Statement) error {
	writer := csv.NewWriter(out)

	if w.IncludeSummary {
		sum := stmt.Summary
		writer.Write([]string{"# Total Transactions", strconv.Itoa(sum.TotalTransactions)})
		writer.Write([]string{"# Total Credit", sum.TotalCredit.StringFixed(2)})
		writer.Write([]string{"# Total Debit", sum.TotalDebit.StringFixed(2)})
		writer.Write([]string{"# Opening Balance", formatBalance(sum.OpeningBalance)})
		writer.Write([]string{"# Closing Balance", formatBalance(sum.ClosingBalance)})
	}

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range stmt.Transactions {
		row := []string{
			txn.Date.Format(exportDateLayout),
			txn.Description,
			txn.Amount.StringFixed(2),
			formatBalance(txn.Balance),
			string(txn.Type),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatBalance renders an optional balance; absent prints as empty.
func formatBalance(b decimal.NullDecimal) string {
	if !b.Valid {
		return ""
	}
	return b.Decimal.StringFixed(2)
}
