// Package compressor collapses the repeated rows of dense parser
// tables before they are serialized.
package compressor

import (
	"fmt"
	"strconv"
	"strings"
)

// RowTable is a dense row-major matrix with duplicate rows stored only
// once. Predictive parse tables repeat rows whenever two nonterminals
// expand on the same lookaheads, which happens a lot in factored
// grammars. The exported fields marshal directly into the table file.
type RowTable struct {
	Entries  []int `json:"entries"`
	RowMap   []int `json:"row_map"`
	ColCount int   `json:"col_count"`
}

// CompressRows builds a RowTable from whole rows. Every row must have
// the same length.
func CompressRows(rows [][]int) (*RowTable, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("a table needs at least one row and one column")
	}

	t := &RowTable{
		ColCount: len(rows[0]),
	}
	index := map[string]int{}
	for _, row := range rows {
		if len(row) != t.ColCount {
			return nil, fmt.Errorf("rows differ in length; want: %v, got: %v", t.ColCount, len(row))
		}
		key := rowKey(row)
		at, ok := index[key]
		if !ok {
			at = len(index)
			index[key] = at
			t.Entries = append(t.Entries, row...)
		}
		t.RowMap = append(t.RowMap, at)
	}
	return t, nil
}

func rowKey(row []int) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// RowCount returns the row count of the original matrix.
func (t *RowTable) RowCount() int {
	return len(t.RowMap)
}

// At returns the original entry at [row, col].
func (t *RowTable) At(row, col int) (int, error) {
	if row < 0 || row >= len(t.RowMap) || col < 0 || col >= t.ColCount {
		return 0, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	return t.Entries[t.RowMap[row]*t.ColCount+col], nil
}
