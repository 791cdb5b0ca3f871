package sheetstore

import (
	"fmt"
	"strings"
)

// a1Block is a parsed A1-notation range. Rows are 1-based physical rows
// (header is row 1); columns are 1-based (A is 1).
type a1Block struct {
	startRow, startCol int
	endRow, endCol     int
}

// ColumnName converts a 1-based column number to its letter form (1 → "A",
// 27 → "AA").
func ColumnName(col int) string {
	var b strings.Builder
	for col > 0 {
		col--
		b.WriteByte(byte('A' + col%26))
		col /= 26
	}
	runes := []byte(b.String())
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// CellRef formats a single-cell A1 reference.
func CellRef(col, row int) string {
	return fmt.Sprintf("%s%d", ColumnName(col), row)
}

// RangeRef formats a contiguous block reference, e.g. RangeRef(2,3,8,3) →
// "B3:H3".
func RangeRef(startCol, startRow, endCol, endRow int) string {
	return fmt.Sprintf("%s%d:%s%d", ColumnName(startCol), startRow, ColumnName(endCol), endRow)
}

func parseA1(ref string) (col, row int, err error) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		col = col*26 + int(ref[i]-'A'+1)
		i++
	}
	if col == 0 || i == len(ref) {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}
	for ; i < len(ref); i++ {
		if ref[i] < '0' || ref[i] > '9' {
			return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
		}
		row = row*10 + int(ref[i]-'0')
	}
	if row == 0 {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}
	return col, row, nil
}

// parseA1Range parses "B3:H3" or a bare cell "G5" (treated as a 1x1 block).
func parseA1Range(a1Range string) (a1Block, error) {
	parts := strings.SplitN(strings.ToUpper(strings.TrimSpace(a1Range)), ":", 2)
	startCol, startRow, err := parseA1(parts[0])
	if err != nil {
		return a1Block{}, err
	}
	endCol, endRow := startCol, startRow
	if len(parts) == 2 {
		endCol, endRow, err = parseA1(parts[1])
		if err != nil {
			return a1Block{}, err
		}
	}
	if endRow < startRow || endCol < startCol {
		return a1Block{}, fmt.Errorf("inverted range %q", a1Range)
	}
	return a1Block{startRow: startRow, startCol: startCol, endRow: endRow, endCol: endCol}, nil
}
