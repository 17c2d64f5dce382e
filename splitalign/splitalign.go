// Package splitalign fills the gaps between the exact-match anchors of a
// multiple-sequence alignment and merges the result. The anchor chain is
// produced upstream; this stage partitions the chain columns into parallel
// split points and sequentially-expanded columns, realigns every inter-anchor
// region against a reference sequence (or through an external joint aligner
// for oversized regions), and stitches anchors and realigned fragments back
// together into equal-length alignment rows.
package splitalign

import (
	"context"
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
)

// Align is the entry point of the stage. seqs are the cleaned input
// sequences, chain the anchor table over them (nil or empty for no anchors).
// It returns one alignment row per input sequence, in input order, all rows
// of equal length.
//
// Local alignment failures never surface as errors; the affected regions are
// copied through raw. The returned error covers malformed inputs only.
func Align(ctx context.Context, seqs []string, chain Chain, opts Opts) ([]string, Stats, error) {
	if len(seqs) == 0 {
		return nil, Stats{}, nil
	}
	if opts.RefIndex < 0 || opts.RefIndex >= len(seqs) {
		return nil, Stats{}, fmt.Errorf("reference index %d out of range for %d sequences", opts.RefIndex, len(seqs))
	}
	if err := chain.Validate(seqs); err != nil {
		return nil, Stats{}, err
	}
	if len(chain) == 0 {
		chain = make(Chain, len(seqs))
	}
	nCols := chain.NumCols()
	selected := SelectColumns(chain, opts)
	remaining := RemainingCols(nCols, selected)
	log.Debug.Printf("splitalign: %d sequences, %d columns, %d selected as split points", len(seqs), nCols, len(selected))

	gaps := make([][]span, len(seqs))
	if err := traverse.Each(len(seqs), func(s int) error {
		gaps[s] = gapSpans(chain[s], len(seqs[s]))
		return nil
	}); err != nil {
		return nil, Stats{}, err
	}

	shards := parallelRanges(gaps, selected)

	// One arena row per gap: n gaps preceding the n columns, plus the tail.
	// Remaining columns go to the expand family, split points and the tail
	// to the parallel family; with no split points the tail becomes a final
	// expand task so the whole alignment is produced by expansion alone.
	arena := newResultArena(nCols+1, len(seqs))
	tasks := make([]task, 0, nCols+1)
	for _, col := range remaining {
		tasks = append(tasks, expandColumnTask{col: col, gap: col})
	}
	for i, col := range selected {
		tasks = append(tasks, realignShardTask{gap: col, idx: i})
	}
	if len(selected) > 0 {
		tasks = append(tasks, realignShardTask{gap: nCols, idx: len(selected)})
	} else {
		tasks = append(tasks, expandColumnTask{col: -1, gap: nCols})
	}
	for _, t := range tasks {
		for s := range seqs {
			arena.claim(t.gapID(), s, gaps[s][t.gapID()])
		}
	}

	e := &engine{opts: opts, seqs: seqs, chain: chain, gaps: gaps, shards: shards, arena: arena}
	stats := runTasks(ctx, e, tasks)
	stats.SelectedCols = len(selected)
	stats.RemainingCols = len(remaining)
	merged := mergeAlignment(e)

	if opts.External != nil {
		if c, ok := opts.External.(interface{ Cleanup() error }); ok {
			if err := c.Cleanup(); err != nil {
				log.Error.Printf("removing alignment working dir: %v", err)
			}
		}
	}
	return merged, stats, nil
}
