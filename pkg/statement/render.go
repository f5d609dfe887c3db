package statement

import (
	"fmt"
	"strings"

	"github.com/ledgerhouse/member-ledger/pkg/models"
	"github.com/shopspring/decimal"
)

// Format selects the export encoding of a statement.
type Format string

const (
	// FormatTabular renders CSV, matching the member client's download.
	FormatTabular Format = "tabular"
	// FormatDocument renders a fixed-width text statement with totals.
	FormatDocument Format = "document"
)

const (
	periodFormat   = "2006-01-02"
	lineTimeFormat = "02/01/2006 15:04:05"
)

// ParseFormat validates a format string, defaulting empty to tabular.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "":
		return FormatTabular, nil
	case FormatTabular:
		return FormatTabular, nil
	case FormatDocument:
		return FormatDocument, nil
	default:
		return "", fmt.Errorf("unknown statement format %q", s)
	}
}

// Extension returns the file extension of the format.
func (f Format) Extension() string {
	if f == FormatDocument {
		return "txt"
	}
	return "csv"
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatDocument {
		return "text/plain; charset=utf-8"
	}
	return "text/csv; charset=utf-8"
}

// Render encodes the statement. It is deterministic: identical statements
// produce byte-identical output, which statement reproducibility depends on.
func Render(st *Statement, f Format) ([]byte, error) {
	switch f {
	case FormatTabular:
		return renderTabular(st), nil
	case FormatDocument:
		return renderDocument(st), nil
	default:
		return nil, fmt.Errorf("unknown statement format %q", string(f))
	}
}

// Filename returns the download filename for a rendered statement.
func Filename(st *Statement, f Format) string {
	return fmt.Sprintf("statement_%s_to_%s.%s", st.Start.Format(periodFormat), st.End.Format(periodFormat), f.Extension())
}

// formatAmount converts minor units to a fixed two-decimal string.
func formatAmount(minor int64) string {
	return decimal.NewFromInt(minor).Shift(-2).StringFixed(2)
}

func renderTabular(st *Statement) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", st.Institution.Name)
	fmt.Fprintf(&b, "Name: %s\n", st.OwnerName)
	fmt.Fprintf(&b, "Address: %s\n", st.Institution.Address)
	fmt.Fprintf(&b, "Statement Period: %s to %s\n\n", st.Start.Format(periodFormat), st.End.Format(periodFormat))
	b.WriteString("Date,Status,Type,Amount,Description\n")

	for _, line := range st.Lines {
		fmt.Fprintf(&b, "%s,%s,%s,%s,%s\n",
			line.Date.UTC().Format(lineTimeFormat),
			line.Status,
			line.Type,
			formatAmount(line.Amount),
			csvEscape(line.Description),
		)
	}

	return []byte(b.String())
}

// csvEscape quotes a field only when it needs it. Descriptions are free text.
func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func renderDocument(st *Statement) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", st.Institution.Name)
	fmt.Fprintf(&b, "%s\n\n", st.Institution.Address)
	fmt.Fprintf(&b, "Account holder: %s\n", st.OwnerName)
	fmt.Fprintf(&b, "Account:        %s\n", st.AccountId)
	fmt.Fprintf(&b, "Period:         %s to %s\n\n", st.Start.Format(periodFormat), st.End.Format(periodFormat))

	fmt.Fprintf(&b, "%-20s  %-10s  %-7s  %12s  %s\n", "Date", "Status", "Type", "Amount", "Description")
	b.WriteString(strings.Repeat("-", 72))
	b.WriteByte('\n')

	flagged := false
	for _, line := range st.Lines {
		status := string(line.Status)
		if line.Status == models.REJECTED {
			status += "*"
			flagged = true
		}
		fmt.Fprintf(&b, "%-20s  %-10s  %-7s  %12s  %s\n",
			line.Date.UTC().Format(lineTimeFormat),
			status,
			line.Type,
			formatAmount(line.Amount),
			line.Description,
		)
	}

	snap := foldLines(st.Lines)
	b.WriteString(strings.Repeat("-", 72))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Total credits (approved): %s\n", formatAmount(snap.TotalCredits))
	fmt.Fprintf(&b, "Total debits (approved):  %s\n", formatAmount(snap.TotalDebits))
	fmt.Fprintf(&b, "Net movement:             %s\n", formatAmount(snap.Balance))

	if flagged {
		b.WriteString("\n* rejected: shown for audit purposes; does not affect balance\n")
	}

	return []byte(b.String())
}

// foldLines reuses the balance fold over the statement's line items.
func foldLines(lines []Line) models.BalanceSnapshot {
	txs := make([]models.Transaction, len(lines))
	for i, l := range lines {
		txs[i] = models.Transaction{Status: l.Status, Type: l.Type, Amount: l.Amount}
	}
	return models.FoldBalance(txs)
}
