package splitalign

import "context"

// expandColumnTask resolves the gap preceding one residual column for every
// sequence. col is -1 for the tail task that exists only when no column was
// selected; gap is the arena row (column index, or NumCols() for the tail).
type expandColumnTask struct {
	col int
	gap int
}

func (t expandColumnTask) gapID() int { return t.gap }

func (t expandColumnTask) run(ctx context.Context, e *engine, stats *Stats) {
	stats.ExpandTasks++
	ref := e.refGap(t.gap)
	for s := range e.seqs {
		g := e.gaps[s][t.gap]
		raw := e.seqs[s][g.Start:g.End]
		switch {
		case s == e.opts.RefIndex:
			// The reference region is the alignment target; it passes
			// through verbatim.
			e.arena.put(t.gap, s, raw)
		case t.col >= 0 && e.chain[s][t.col].Empty():
			// No anchor for this sequence at this column. The raw region is
			// stored as-is; this is the designed fallback for incomplete
			// chain cells, not an alignment failure.
			stats.PassThroughs++
			e.arena.put(t.gap, s, raw)
		case len(raw) == 0:
			e.arena.put(t.gap, s, "")
		default:
			e.arena.put(t.gap, s, alignOrCopy(ref, raw, e.opts, stats))
		}
	}
}

// alignOrCopy runs the pairwise aligner and absorbs the failure sentinel by
// falling back to the untouched raw region.
func alignOrCopy(ref, query string, opts Opts, stats *Stats) string {
	stats.Pairwise++
	frag, start, _ := alignGap(ref, query, opts)
	if start < 0 {
		stats.Failures++
		return query
	}
	return frag
}
