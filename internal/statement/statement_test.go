package statement

import (
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

func newTestProcessor() *Processor {
	return NewProcessor(DefaultConfig(), zerolog.Nop())
}

func TestProcessor_Process(t *testing.T) {
	p := newTestProcessor()

	text := `01-01-2024 OPENING BAL 1000.00
05-01-2024 SALARY CR 5000.00 6000.00
10-01-2024 ATM WDL DR 200.00 5800.00`

	stmt, err := p.Process(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stmt.Transactions) != 3 {
		t.Fatalf("transactions: got %d, want 3", len(stmt.Transactions))
	}

	wantTypes := []models.TransactionType{models.TypeUnknown, models.TypeCredit, models.TypeDebit}
	for i, want := range wantTypes {
		if got := stmt.Transactions[i].Type; got != want {
			t.Errorf("txn[%d].Type: got %q, want %q", i, got, want)
		}
	}

	sum := stmt.Summary
	if sum.TotalTransactions != 3 {
		t.Errorf("TotalTransactions: got %d, want 3", sum.TotalTransactions)
	}
	if got := sum.TotalCredit.StringFixed(2); got != "5000.00" {
		t.Errorf("TotalCredit: got %s, want 5000.00", got)
	}
	if got := sum.TotalDebit.StringFixed(2); got != "200.00" {
		t.Errorf("TotalDebit: got %s, want 200.00", got)
	}
	// The first line carries a single monetary token, which is an
	// amount, not a balance; the first actual balance is 6000.00.
	if !sum.OpeningBalance.Valid || sum.OpeningBalance.Decimal.StringFixed(2) != "6000.00" {
		t.Errorf("OpeningBalance: got %v, want 6000.00", sum.OpeningBalance)
	}
	if !sum.ClosingBalance.Valid || sum.ClosingBalance.Decimal.StringFixed(2) != "5800.00" {
		t.Errorf("ClosingBalance: got %v, want 5800.00", sum.ClosingBalance)
	}
}

func TestProcessor_EmptyInput(t *testing.T) {
	p := newTestProcessor()

	for _, text := range []string{"", "   ", "\n\t\n"} {
		if _, err := p.Process(text); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Process(%q): got %v, want ErrEmptyInput", text, err)
		}
	}
}

func TestProcessor_NoTransactions(t *testing.T) {
	p := newTestProcessor()

	text := `ACME BANK
Statement period January 2024
Thank you for banking with us`

	if _, err := p.Process(text); !errors.Is(err, ErrNoTransactions) {
		t.Errorf("Process: got %v, want ErrNoTransactions", err)
	}
}

func TestProcessor_DateOrdering(t *testing.T) {
	p := newTestProcessor()

	// Lines arrive newest-first; output must be ascending by date, and
	// same-date records must keep their source order.
	text := `10-01-2024 THIRD 30.00
01-01-2024 FIRST 10.00
05-01-2024 SECOND-A 20.00
05-01-2024 SECOND-B 25.00`

	stmt, err := p.Process(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"FIRST", "SECOND-A", "SECOND-B", "THIRD"}
	for i, desc := range want {
		if got := stmt.Transactions[i].Description; got != desc {
			t.Errorf("txn[%d].Description: got %q, want %q", i, got, desc)
		}
	}
}

func TestProcessor_ClassifiesInSourceOrder(t *testing.T) {
	p := newTestProcessor()

	// The later-dated line comes first in the document, so its balance
	// seeds the carry-forward and the earlier-dated line is classified
	// against it: 1000.00 < 1100.00 makes it a debit. Date ordering is
	// applied after classification, not before.
	text := `10-01-2024 LATE ENTRY 100.00 1100.00
05-01-2024 EARLY ENTRY 100.00 1000.00`

	stmt, err := p.Process(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := stmt.Transactions[0].Description; got != "EARLY ENTRY" {
		t.Fatalf("txn[0].Description: got %q, want %q", got, "EARLY ENTRY")
	}
	if got := stmt.Transactions[0].Type; got != models.TypeDebit {
		t.Errorf("txn[0].Type: got %q, want %q", got, models.TypeDebit)
	}
	if got := stmt.Transactions[1].Type; got != models.TypeUnknown {
		t.Errorf("txn[1].Type: got %q, want %q", got, models.TypeUnknown)
	}
}

func TestProcessor_Idempotent(t *testing.T) {
	p := newTestProcessor()

	text := `01-01-2024 OPENING BAL 1000.00
05-01-2024 SALARY CR 5000.00 6000.00
10-01-2024 ATM WDL DR 200.00 5800.00`

	first, err := p.Process(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.Process(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated runs differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestProcessor_SummaryMatchesTransactions(t *testing.T) {
	p := newTestProcessor()

	text := `01-01-2024 SALARY CR 2500.00 3500.00
02-01-2024 RENT DR 1200.00 2300.00
03-01-2024 REFUND CR 49.99 2349.99
04-01-2024 UNLABELLED 10.00`

	stmt, err := p.Process(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	credit := decimal.Zero
	debit := decimal.Zero
	for _, txn := range stmt.Transactions {
		switch txn.Type {
		case models.TypeCredit:
			credit = credit.Add(txn.Amount)
		case models.TypeDebit:
			debit = debit.Add(txn.Amount)
		}
	}

	if !stmt.Summary.TotalCredit.Equal(credit) {
		t.Errorf("TotalCredit: got %s, want %s", stmt.Summary.TotalCredit, credit)
	}
	if !stmt.Summary.TotalDebit.Equal(debit) {
		t.Errorf("TotalDebit: got %s, want %s", stmt.Summary.TotalDebit, debit)
	}
	if stmt.Summary.TotalTransactions != len(stmt.Transactions) {
		t.Errorf("TotalTransactions: got %d, want %d", stmt.Summary.TotalTransactions, len(stmt.Transactions))
	}
}
