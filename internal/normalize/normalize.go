// Package normalize provides pure conversion functions for the
// locale-formatted tokens found in the point-of-sale export and the bank
// ledger: monetary amounts, branch labels, operator attribution and dates.
//
// Amount and branch normalization fail soft (a safe zero value, never an
// error); date formatting fails hard on malformed non-empty input because a
// bad date in the ledger means the output spreadsheets would be wrong.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReversedMarker flags a cancelled movement; any amount token containing it
// parses to zero regardless of sign or formatting.
const ReversedMarker = "estornado"

var (
	// BranchPatternLoja extracts the store number from labels such as
	// "Loja 02" or "loja 2" (the formatted spreadsheet convention)
	BranchPatternLoja = regexp.MustCompile(`(?i)Loja\s*0?(\d+)`)

	// BranchPatternLJ extracts the store number from labels such as "LJ02"
	// (the bank ledger convention)
	BranchPatternLJ = regexp.MustCompile(`(?i)LJ0?(\d+)`)

	invalidFileChars = regexp.MustCompile(`[\\/:*?"<>|]`)
)

// ParseAmount converts a locale-formatted monetary token to a decimal value.
//
// Handles: "R$" currency prefix, embedded whitespace, bracket-negative
// "(1.234,56)", a leading plus sign, and Brazilian decimal-comma formatting
// ("1.234,56" → 1234.56). A token containing the reversed marker yields zero
// unconditionally. Unparsable input yields zero, never an error.
func ParseAmount(token string) decimal.Decimal {
	s := strings.TrimSpace(token)
	if s == "" {
		return decimal.Zero
	}

	if strings.Contains(strings.ToLower(s), ReversedMarker) {
		return decimal.Zero
	}

	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")

	negative := strings.Contains(s, "(") && strings.Contains(s, ")")
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")
	s = strings.TrimPrefix(s, "+")

	// Decimal comma marks Brazilian formatting with "." as the thousands
	// separator
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}

	if negative {
		value = value.Neg()
	}
	return value
}

// NormalizeBranch extracts the store number from a branch label using the
// given source-convention pattern and returns the canonical "Loja {N}" form
// with leading zeros stripped. Returns the empty string when the label does
// not match.
func NormalizeBranch(label string, pattern *regexp.Regexp) string {
	if strings.TrimSpace(label) == "" {
		return ""
	}

	match := pattern.FindStringSubmatch(label)
	if match == nil {
		return ""
	}

	n, err := strconv.Atoi(match[1])
	if err != nil {
		return ""
	}
	return fmt.Sprintf("Loja %d", n)
}

// OperatorBranch maps a case-insensitive operator name fragment to a branch.
// The roster is configuration, not logic: adding an operator or a branch is a
// data change.
type OperatorBranch struct {
	NameFragment string
	Branch       string
}

// DefaultOperatorRoster returns the known operators and the branch each one
// works at.
func DefaultOperatorRoster() []OperatorBranch {
	return []OperatorBranch{
		{NameFragment: "jozimara", Branch: "Loja 1"},
		{NameFragment: "neide", Branch: "Loja 1"},
		{NameFragment: "geizy", Branch: "Loja 2"},
	}
}

// BranchFromOperator derives a branch from the free-text operator field by
// case-insensitive substring match against the roster; first match wins.
// Unknown operators yield the empty string.
func BranchFromOperator(operator string, roster []OperatorBranch) string {
	name := strings.ToLower(strings.TrimSpace(operator))
	if name == "" {
		return ""
	}

	for _, entry := range roster {
		if strings.Contains(name, strings.ToLower(entry.NameFragment)) {
			return entry.Branch
		}
	}
	return ""
}

// dateLayouts are tried in order; day-first layouts come first to resolve
// the dd/mm vs mm/dd ambiguity in favor of day-first.
var dateLayouts = []string{
	"02/01/2006",
	"02/01/2006 15:04:05",
	"02-01-2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/06",
}

// FormatDate parses a date-like value with day-first ambiguity resolution
// and formats it canonically as dd/mm/yyyy. Empty input yields the empty
// string; malformed non-empty input is a hard error the caller must handle.
func FormatDate(value string) (string, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return "", nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006"), nil
		}
	}

	return "", fmt.Errorf("unable to parse date %q", value)
}

// SanitizeFileName replaces filesystem-invalid characters with underscores
func SanitizeFileName(name string) string {
	return invalidFileChars.ReplaceAllString(name, "_")
}

// DigitsOnly strips every non-digit character from a string
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsAllDigits reports whether s is non-empty and consists only of digits
func IsAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
