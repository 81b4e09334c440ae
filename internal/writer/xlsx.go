package writer

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

const (
	txnSheet     = "Transactions"
	summarySheet = "Summary"
)

// XLSXWriter writes a processed statement to a spreadsheet: one sheet
// of transactions and, with IncludeSummary set, a second sheet of
// period totals. Monetary cells are numeric with a two-decimal format.
type XLSXWriter struct {
	IncludeSummary bool
}

// WriteToFile writes stmt as a spreadsheet to a file at the given path.
func (w *XLSXWriter) WriteToFile(path string, stmt *models.Statement) error {
	f, err := w.build(stmt)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save spreadsheet %q: %w", path, err)
	}
	return nil
}

// Write writes stmt as a spreadsheet to out.
func (w *XLSXWriter) Write(out io.Writer, stmt *models.Statement) error {
	f, err := w.build(stmt)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}

func (w *XLSXWriter) build(stmt *models.Statement) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", txnSheet); err != nil {
		f.Close()
		return nil, err
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(txnSheet, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, txn := range stmt.Transactions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []interface{}{
			txn.Date.Format(exportDateLayout),
			txn.Description,
			txn.Amount.InexactFloat64(),
			balanceCell(txn.Balance),
			string(txn.Type),
		}
		if err := f.SetSheetRow(txnSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write transaction row: %w", err)
		}
	}

	// Two-decimal number format for the Amount and Balance columns.
	money, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetColStyle(txnSheet, "C:D", money); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetColWidth(txnSheet, "B", "B", 40); err != nil {
		f.Close()
		return nil, err
	}

	if w.IncludeSummary {
		if err := w.addSummarySheet(f, stmt.Summary); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func (w *XLSXWriter) addSummarySheet(f *excelize.File, sum models.PeriodSummary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Total Transactions", sum.TotalTransactions},
		{"Total Credit", sum.TotalCredit.InexactFloat64()},
		{"Total Debit", sum.TotalDebit.InexactFloat64()},
		{"Opening Balance", balanceCell(sum.OpeningBalance)},
		{"Closing Balance", balanceCell(sum.ClosingBalance)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	return nil
}

// balanceCell renders an optional balance as a spreadsheet cell value;
// absent balances leave the cell empty.
func balanceCell(b decimal.NullDecimal) interface{} {
	if !b.Valid {
		return nil
	}
	return b.Decimal.InexactFloat64()
}
