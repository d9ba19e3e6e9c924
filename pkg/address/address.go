// Package address converts between zero-based grid coordinates and
// spreadsheet-style cell labels ("A1", "AB12") and ranges ("A1:B3").
package address

import (
	"strconv"
	"strings"
)

// ColumnLabel returns the spreadsheet column name for a 0-based index.
// Example: ColumnLabel(0) returns "A", ColumnLabel(25) returns "Z",
// ColumnLabel(26) returns "AA". This is the bijective alphabetic scheme,
// not positional base-26.
func ColumnLabel(col int) string {
	if col < 0 {
		col = 0
	}
	var b []byte
	n := col + 1
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

// ColumnIndex is the inverse of ColumnLabel. It is case-insensitive and
// returns 0 for empty or invalid labels.
func ColumnIndex(label string) int {
	label = strings.ToUpper(strings.TrimSpace(label))
	n := 0
	for i := 0; i < len(label); i++ {
		c := label[i]
		if c < 'A' || c > 'Z' {
			return 0
		}
		n = n*26 + int(c-'A') + 1
	}
	if n == 0 {
		return 0
	}
	return n - 1
}

// CellName returns the label for a 0-based (row, col) coordinate.
// Example: CellName(0, 1) returns "B1".
func CellName(row, col int) string {
	return ColumnLabel(col) + strconv.Itoa(row+1)
}

// ParseCell parses a label like "B3" into 0-based (row, col).
// The boolean is false when the input does not split into a letter run
// followed by a digit run.
func ParseCell(s string) (row, col int, ok bool) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	if i == 0 || i == len(s) {
		return 0, 0, false
	}
	for j := i; j < len(s); j++ {
		if s[j] < '0' || s[j] > '9' {
			return 0, 0, false
		}
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil || n < 1 {
		return 0, 0, false
	}
	return n - 1, ColumnIndex(s[:i]), true
}

// ParseRange parses either a single label ("B3", a degenerate range) or a
// "start:end" pair ("A1:C2") into two 0-based corners. The corners are
// returned exactly as written; ordering and clamping are the caller's
// concern.
func ParseRange(s string) (startRow, startCol, endRow, endCol int, ok bool) {
	first, second, found := strings.Cut(s, ":")
	startRow, startCol, ok = ParseCell(first)
	if !ok {
		return 0, 0, 0, 0, false
	}
	if !found {
		return startRow, startCol, startRow, startCol, true
	}
	endRow, endCol, ok = ParseCell(second)
	if !ok {
		return 0, 0, 0, 0, false
	}
	return startRow, startCol, endRow, endCol, true
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
