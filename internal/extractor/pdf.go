// Package extractor pulls statement text out of PDF files.
package extractor

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads a PDF statement and returns its text as a single
// newline-delimited string, pages separated by blank lines. Extraction
// methods are tried in order of fidelity; output that fails the
// readability gate is discarded rather than handed downstream.
func ExtractText(filePath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if r.NumPage() == 0 {
		return "", fmt.Errorf("pdf has no pages")
	}

	for _, method := range []func(*pdf.Reader) string{byRow, byFontMap, wholeDocument} {
		if text := method(r); isReadable(text) {
			return text, nil
		}
	}

	return "", fmt.Errorf("no readable text could be extracted: the file may be image-based or use font encodings that cannot be decoded")
}

// collectPages runs read over every non-null page and joins the
// non-empty results with blank lines.
func collectPages(r *pdf.Reader, read func(pdf.Page) string) string {
	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		if text := strings.TrimSpace(read(page)); text != "" {
			pages = append(pages, text)
		}
	}
	return strings.Join(pages, "\n\n")
}

// byRow keeps the row structure the library reconstructs, so date,
// description and amounts stay on one line.
func byRow(r *pdf.Reader) string {
	return collectPages(r, func(page pdf.Page) string {
		rows, err := page.GetTextByRow()
		if err != nil {
			return ""
		}

		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, w := range row.Content {
				words = append(words, w.S)
			}
			if line := strings.TrimSpace(strings.Join(words, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		return strings.Join(lines, "\n")
	})
}

// byFontMap decodes each page through its font table. Some PDFs that
// defeat row extraction still decode cleanly this way.
func byFontMap(r *pdf.Reader) string {
	return collectPages(r, func(page pdf.Page) string {
		fonts := make(map[string]*pdf.Font)
		for _, name := range page.Fonts() {
			f := page.Font(name)
			fonts[name] = &f
		}

		text, err := page.GetPlainText(fonts)
		if err != nil {
			return ""
		}
		return text
	})
}

// wholeDocument is the bluntest method: one pass over the whole file
// with no page boundaries.
func wholeDocument(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// isReadable requires enough text, a high plain-ASCII ratio and at
// least one recognisable statement word. Identity-encoded fonts decode
// to high-codepoint garbage that passes no gate here.
func isReadable(text string) bool {
	if len(strings.TrimSpace(text)) <= 50 {
		return false
	}
	if textQuality(text) <= 0.6 {
		return false
	}

	lower := strings.ToLower(text)
	for _, w := range statementWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// statementWords appear in virtually every bank statement. Extracted
// text containing none of them is treated as garbage.
var statementWords = []string{
	"bank", "account", "balance", "date", "statement", "transaction",
	"credit", "debit", "payment", "amount", "total", "opening",
	"closing", "transfer", "withdrawal", "deposit", "page",
}

// textQuality returns the fraction of characters that are plain ASCII
// letters, digits, whitespace or statement punctuation. unicode.IsLetter
// is too loose here: it waves through the accented garbage produced by
// custom font encodings.
func textQuality(text string) float64 {
	const punctuation = `.,-/:;()'"£$€%&@#!?+=*`

	total, readable := 0, 0
	for _, r := range text {
		total++
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			readable++
		case unicode.IsSpace(r):
			readable++
		case strings.ContainsRune(punctuation, r):
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}
