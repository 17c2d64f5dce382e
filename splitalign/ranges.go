package splitalign

// parallelRanges restricts each sequence's gap regions to the ones bounded by
// split-point columns: one range per selected column (the region between the
// previous anchor and the selected anchor) plus the tail after the last
// anchor. The first range starts at offset 0 when no anchor precedes the
// first split point, and the tail ends at the sequence length. Zero-length
// ranges are kept; the worker skips them.
//
// gaps is the full per-sequence gap table from gapSpans. The returned table
// is indexed [sequence][i] with i running over selected columns and then the
// tail, so ranges for a sequence are non-overlapping and ascending.
func parallelRanges(gaps [][]span, selected []int) [][]span {
	ranges := make([][]span, len(gaps))
	for s, g := range gaps {
		r := make([]span, 0, len(selected)+1)
		for _, col := range selected {
			r = append(r, g[col])
		}
		r = append(r, g[len(g)-1])
		ranges[s] = r
	}
	return ranges
}
