package splitalign

import (
	"fmt"

	"github.com/biogo/store/interval"
)

// taskRange is one claimed byte range on one sequence, registered so that
// overlapping task assignment is caught when tasks are built rather than
// showing up as corrupted output.
type taskRange struct {
	start, end int
	gap        int
}

func (r taskRange) Range() interval.IntRange { return interval.IntRange{Start: r.start, End: r.end} }
func (r taskRange) ID() uintptr              { return uintptr(r.gap) }
func (r taskRange) Overlap(b interval.IntRange) bool {
	return r.start < b.End && b.Start < r.end
}

// resultArena holds the resolved gap fragments, one row per gap id, one
// column per sequence. Each cell is written exactly once by exactly one
// worker; the partitioning is enforced here (claim at construction time,
// write-once at run time), so workers share the arena without locking.
type resultArena struct {
	rows    [][]string
	written [][]bool
	claimed []interval.IntTree // per sequence
}

func newResultArena(nGaps, nSeq int) *resultArena {
	a := &resultArena{
		rows:    make([][]string, nGaps),
		written: make([][]bool, nGaps),
		claimed: make([]interval.IntTree, nSeq),
	}
	for g := range a.rows {
		a.rows[g] = make([]string, nSeq)
		a.written[g] = make([]bool, nSeq)
	}
	return a
}

// claim registers the byte range a task will consume for one sequence.
// Ranges are claimed while the task list is built, before any worker runs;
// a zero-width range claims nothing. Overlap is a bug in task construction,
// not a runtime condition, hence the panic.
func (a *resultArena) claim(gap, seq int, sp span) {
	if sp.End <= sp.Start {
		return
	}
	r := taskRange{start: sp.Start, end: sp.End, gap: gap}
	if hits := a.claimed[seq].Get(r); len(hits) > 0 {
		panic(fmt.Sprintf("gap %d claims [%d,%d) on seq %d, already claimed by gap %d",
			gap, sp.Start, sp.End, seq, hits[0].(taskRange).gap))
	}
	if err := a.claimed[seq].Insert(r, false); err != nil {
		panic(err)
	}
}

// put stores the resolved fragment for one cell. Writing a cell twice is a
// partitioning bug.
func (a *resultArena) put(gap, seq int, frag string) {
	if a.written[gap][seq] {
		panic(fmt.Sprintf("cell (%d,%d) written twice", gap, seq))
	}
	a.written[gap][seq] = true
	a.rows[gap][seq] = frag
}

func (a *resultArena) get(gap, seq int) string { return a.rows[gap][seq] }
