// Package statement wires the extraction, classification and summary
// stages into a single processing pipeline.
package statement

import (
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-analyzer/internal/models"
	"github.com/insightdelivered/statement-analyzer/internal/parser"
	"github.com/insightdelivered/statement-analyzer/internal/summary"
)

// Caller-visible processing failures. The API layer maps these to
// client errors; anything else is a server fault.
var (
	ErrEmptyInput     = errors.New("statement text is empty")
	ErrNoTransactions = errors.New("no transactions found in statement text")
)

// Config carries the tunable parts of the pipeline.
type Config struct {
	Rules    parser.Rules
	Rounding summary.Rounding
}

// DefaultConfig returns the stock DD-MM-YYYY rules with banker's
// rounding for totals.
func DefaultConfig() Config {
	return Config{
		Rules:    parser.DefaultRules(),
		Rounding: summary.RoundHalfEven,
	}
}

// Processor runs statement text through extraction, classification,
// date ordering and summary computation. It keeps no state between
// calls, so one Processor may serve concurrent requests.
type Processor struct {
	extractor *parser.Extractor
	rounding  summary.Rounding
	log       zerolog.Logger
}

func NewProcessor(cfg Config, log zerolog.Logger) *Processor {
	return &Processor{
		extractor: parser.NewExtractor(cfg.Rules),
		rounding:  cfg.Rounding,
		log:       log,
	}
}

// Process turns raw extracted text into a classified, date-ordered
// statement with period totals. Classification runs in source-line
// order so balance deltas follow the document; records are then sorted
// ascending by date (stable on ties) before the summary is computed.
//
// It fails only for whole-document conditions: blank input, or text in
// which no line carries both a date and an amount token.
func (p *Processor) Process(text string) (*models.Statement, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	txns := p.extractor.Extract(text)
	if len(txns) == 0 {
		return nil, ErrNoTransactions
	}

	parser.Classify(txns)

	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.Before(txns[j].Date)
	})

	sum := summary.Compute(txns, p.rounding)

	p.log.Info().
		Int("transactions", sum.TotalTransactions).
		Str("total_credit", sum.TotalCredit.StringFixed(2)).
		Str("total_debit", sum.TotalDebit.StringFixed(2)).
		Msg("statement processed")

	return &models.Statement{Transactions: txns, Summary: sum}, nil
}
