package sheet

import "iter"

// Chunk is a contiguous window of table rows.
type Chunk struct {
	Index int
	Start int // zero-based offset of the first row within the table
	Rows  [][]string
}

// Chunks returns a lazy, restartable sequence of row windows. Every chunk
// holds exactly window rows except possibly the last, which holds the
// remainder. Windows never overlap and preserve the original row order.
// A table with zero rows yields an empty sequence. window must be positive;
// non-positive values panic, since callers are expected to validate config.
func (t *Table) Chunks(window int) iter.Seq[Chunk] {
	if window <= 0 {
		panic("sheet: chunk window must be positive")
	}
	return func(yield func(Chunk) bool) {
		for start, idx := 0, 0; start < len(t.Rows); start, idx = start+window, idx+1 {
			end := start + window
			if end > len(t.Rows) {
				end = len(t.Rows)
			}
			if !yield(Chunk{Index: idx, Start: start, Rows: t.Rows[start:end]}) {
				return
			}
		}
	}
}

// ChunkCount returns ceil(RowCount/window), the number of chunks the
// sequence will yield.
func (t *Table) ChunkCount(window int) int {
	if window <= 0 {
		return 0
	}
	return (len(t.Rows) + window - 1) / window
}
