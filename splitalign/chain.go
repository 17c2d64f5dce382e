package splitalign

import (
	"fmt"
	"math"
)

// Anchor locates one exact-match region in a single sequence's coordinate
// space. A chain column holds one Anchor per sequence; sequences without a
// match at that column carry EmptyAnchor.
type Anchor struct {
	// Start is the 0-based offset of the match, or -1 for an empty cell.
	Start int
	// Len is the match length in bases.
	Len int
}

// EmptyAnchor marks a chain cell with no match for that sequence.
var EmptyAnchor = Anchor{Start: -1}

// Empty reports whether the cell holds no match.
func (a Anchor) Empty() bool { return a.Start < 0 }

// End returns the offset one past the last matched base.
func (a Anchor) End() int { return a.Start + a.Len }

// Chain is the anchor table produced upstream, indexed [sequence][column].
// Column c refers to the same homologous match in every sequence that has a
// non-empty cell there, and match positions increase monotonically with the
// column index within each sequence.
type Chain [][]Anchor

// NumCols returns the number of columns, 0 for an empty chain.
func (c Chain) NumCols() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0])
}

// Validate checks the chain shape against the sequence set: one row per
// sequence, rectangular, every anchor inside its sequence, and positions
// strictly increasing along each row.
func (c Chain) Validate(seqs []string) error {
	if len(c) == 0 {
		return nil
	}
	if len(c) != len(seqs) {
		return fmt.Errorf("chain has %d rows for %d sequences", len(c), len(seqs))
	}
	nCols := len(c[0])
	for s, row := range c {
		if len(row) != nCols {
			return fmt.Errorf("chain row %d has %d columns, row 0 has %d", s, len(row), nCols)
		}
		prevEnd := 0
		for col, a := range row {
			if a.Empty() {
				continue
			}
			if a.Len < 0 || a.End() > len(seqs[s]) {
				return fmt.Errorf("seq %d col %d: anchor [%d,%d) outside sequence of length %d",
					s, col, a.Start, a.End(), len(seqs[s]))
			}
			if a.Start < prevEnd {
				return fmt.Errorf("seq %d col %d: anchor at %d overlaps or precedes previous anchor ending at %d",
					s, col, a.Start, prevEnd)
			}
			prevEnd = a.End()
		}
	}
	return nil
}

// SelectColumns picks the chain columns that serve as parallel split points:
// columns carried by at least ceil(Coverage*nseq) sequences, present in the
// reference, and at least MinShardSpan reference bases past the previously
// chosen column. The result is strictly increasing. The complementary columns
// are handled by sequential expansion.
func SelectColumns(chain Chain, opts Opts) []int {
	nSeq := len(chain)
	if nSeq == 0 {
		return nil
	}
	minPresent := int(math.Ceil(opts.Coverage * float64(nSeq)))
	if minPresent < 1 {
		minPresent = 1
	}
	var selected []int
	lastRefEnd := -1
	for col := 0; col < chain.NumCols(); col++ {
		ref := chain[opts.RefIndex][col]
		if ref.Empty() {
			continue
		}
		present := 0
		for s := 0; s < nSeq; s++ {
			if !chain[s][col].Empty() {
				present++
			}
		}
		if present < minPresent {
			continue
		}
		if lastRefEnd >= 0 && ref.Start-lastRefEnd < opts.MinShardSpan {
			continue
		}
		selected = append(selected, col)
		lastRefEnd = ref.End()
	}
	return selected
}

// RemainingCols returns every index in [0, n) absent from selected, in
// ascending order. selected must be sorted and duplicate-free; the result is
// its exact complement.
func RemainingCols(n int, selected []int) []int {
	remaining := make([]int, 0, n-len(selected))
	i := 0
	for col := 0; col < n; col++ {
		if i < len(selected) && selected[i] == col {
			i++
			continue
		}
		remaining = append(remaining, col)
	}
	return remaining
}

// span is a half-open [Start, End) byte range in raw sequence coordinates.
type span struct {
	Start, End int
}

func (s span) len() int { return s.End - s.Start }

// anchorSlots returns one span per column giving the region each anchor
// occupies in the sequence. An empty cell yields a zero-width slot placed at
// the start of the sequence's next non-empty anchor (sequence end if none),
// so that the gap preceding the empty column absorbs the whole raw region and
// every later gap up to the next real anchor is empty.
func anchorSlots(cells []Anchor, seqLen int) []span {
	slots := make([]span, len(cells))
	next := seqLen
	for col := len(cells) - 1; col >= 0; col-- {
		if cells[col].Empty() {
			slots[col] = span{next, next}
			continue
		}
		slots[col] = span{cells[col].Start, cells[col].End()}
		next = cells[col].Start
	}
	return slots
}

// gapSpans returns the n+1 gap regions of one sequence: gap c precedes the
// column-c anchor slot and gap n trails the last one. Together with the
// anchor slots the gaps tile [0, seqLen) exactly, which is what guarantees
// that the merged alignment reproduces the raw sequence once gap characters
// are stripped.
func gapSpans(cells []Anchor, seqLen int) []span {
	slots := anchorSlots(cells, seqLen)
	gaps := make([]span, len(cells)+1)
	prevEnd := 0
	for col, slot := range slots {
		gaps[col] = span{prevEnd, slot.Start}
		prevEnd = slot.End
	}
	gaps[len(cells)] = span{prevEnd, seqLen}
	return gaps
}
