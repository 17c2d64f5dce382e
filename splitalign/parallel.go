package splitalign

import (
	"context"
	"fmt"

	"github.com/grailbio/base/log"
)

// realignShardTask resolves one parallel shard: the byte ranges of all
// sequences bounded by a split-point column, or the tail after the last
// anchor. gap is the arena row and idx the shard's position in the engine's
// range table. Oversized shards are handed to the external aligner;
// everything else is realigned pairwise against the reference.
type realignShardTask struct {
	gap int
	idx int
}

func (t realignShardTask) gapID() int { return t.gap }

func (t realignShardTask) run(ctx context.Context, e *engine, stats *Stats) {
	stats.ParallelTasks++
	if e.opts.External != nil && t.longestRange(e) > e.opts.MaxSWLen {
		if t.runExternal(ctx, e, stats) {
			stats.External++
			return
		}
		stats.ExternalFallbacks++
	}
	refSpan := e.shards[e.opts.RefIndex][t.idx]
	ref := e.seqs[e.opts.RefIndex][refSpan.Start:refSpan.End]
	for s := range e.seqs {
		g := e.shards[s][t.idx]
		raw := e.seqs[s][g.Start:g.End]
		switch {
		case s == e.opts.RefIndex:
			e.arena.put(t.gap, s, raw)
		case len(raw) == 0:
			e.arena.put(t.gap, s, "")
		default:
			e.arena.put(t.gap, s, alignOrCopy(ref, raw, e.opts, stats))
		}
	}
}

func (t realignShardTask) longestRange(e *engine) int {
	longest := 0
	for s := range e.seqs {
		if l := e.shards[s][t.idx].len(); l > longest {
			longest = l
		}
	}
	return longest
}

// runExternal resolves the whole shard with one joint alignment through the
// file handoff. Nothing is stored until the result is validated, so on
// failure the caller still owns every cell and realigns the shard pairwise.
func (t realignShardTask) runExternal(ctx context.Context, e *engine, stats *Stats) bool {
	names := make([]string, 0, len(e.seqs))
	raws := make([]string, 0, len(e.seqs))
	idx := make([]int, 0, len(e.seqs))
	for s := range e.seqs {
		g := e.shards[s][t.idx]
		raw := e.seqs[s][g.Start:g.End]
		if len(raw) == 0 {
			// Joint aligners reject empty rows; the merger pads the cell.
			continue
		}
		names = append(names, fmt.Sprintf("task%d_seq%d", t.gap, s))
		raws = append(raws, raw)
		idx = append(idx, s)
	}
	if len(raws) > 0 {
		rows, err := e.opts.External.Align(ctx, names, raws)
		if err != nil {
			log.Error.Printf("external alignment of shard %d failed, realigning pairwise: %v", t.gap, err)
			return false
		}
		if len(rows) != len(raws) {
			log.Error.Printf("external aligner returned %d rows for %d sequences on shard %d, realigning pairwise",
				len(rows), len(raws), t.gap)
			return false
		}
		for i := range rows {
			if stripGaps(rows[i]) != raws[i] {
				log.Error.Printf("external aligner corrupted shard %d seq %d, realigning pairwise", t.gap, idx[i])
				return false
			}
		}
		for i, s := range idx {
			e.arena.put(t.gap, s, rows[i])
		}
	}
	for s := range e.seqs {
		if e.shards[s][t.idx].len() == 0 {
			e.arena.put(t.gap, s, "")
		}
	}
	return true
}
