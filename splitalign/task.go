package splitalign

import (
	"context"
	"runtime"
	"sync"
)

// engine carries the read-only inputs and the shared arena for one run. It is
// built once by Align and shared by every worker without locking: seqs, chain
// and gaps are never written after construction, and arena cells are
// partitioned across tasks.
type engine struct {
	opts  Opts
	seqs  []string
	chain Chain
	// gaps[s] holds the NumCols()+1 gap regions of sequence s.
	gaps [][]span
	// shards[s] holds the parallel-family ranges of sequence s, one per
	// selected column plus the tail (see parallelRanges).
	shards [][]span
	arena  *resultArena
}

func (e *engine) refGap(gap int) string {
	g := e.gaps[e.opts.RefIndex][gap]
	return e.seqs[e.opts.RefIndex][g.Start:g.End]
}

// task is one unit of worker dispatch: either the expansion of one residual
// column across all sequences, or the realignment of one parallel shard.
// gapID names the arena row the task owns; the orchestrator claims the
// corresponding byte ranges before dispatch.
type task interface {
	run(ctx context.Context, e *engine, stats *Stats)
	gapID() int
}

// runTasks drains the task list on a fixed-size pool and blocks until every
// task has finished, so the caller never observes a partially populated
// arena. Per-worker stats are merged after the join.
func runTasks(ctx context.Context, e *engine, tasks []task) Stats {
	parallelism := e.opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	taskCh := make(chan task, len(tasks))
	for _, t := range tasks {
		taskCh <- t
	}
	close(taskCh)

	statsCh := make(chan Stats, parallelism)
	wg := sync.WaitGroup{}
	for i := 0; i < parallelism; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := Stats{}
			for t := range taskCh {
				t.run(ctx, e, &local)
			}
			statsCh <- local
		}()
	}
	wg.Wait()
	close(statsCh)

	stats := Stats{}
	for s := range statsCh {
		stats = stats.Merge(s)
	}
	return stats
}
