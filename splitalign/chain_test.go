package splitalign

import (
	"math/rand"
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemainingCols(t *testing.T) {
	expect.EQ(t, RemainingCols(5, nil), []int{0, 1, 2, 3, 4})
	expect.EQ(t, RemainingCols(5, []int{0, 1, 2, 3, 4}), []int{})
	expect.EQ(t, RemainingCols(6, []int{1, 4}), []int{0, 2, 3, 5})
	expect.EQ(t, RemainingCols(0, nil), []int{})
}

func TestRemainingColsComplement(t *testing.T) {
	rnd := rand.New(rand.NewSource(0))
	for _, n := range []int{0, 1, 2, 7, 33, 128} {
		for trial := 0; trial < 20; trial++ {
			var selected []int
			for col := 0; col < n; col++ {
				if rnd.Intn(2) == 0 {
					selected = append(selected, col)
				}
			}
			remaining := RemainingCols(n, selected)
			require.Equal(t, n, len(selected)+len(remaining))
			seen := make(map[int]bool, n)
			prev := -1
			for _, col := range remaining {
				require.Greater(t, col, prev, "remaining not ascending")
				require.True(t, col >= 0 && col < n)
				seen[col] = true
				prev = col
			}
			for _, col := range selected {
				require.False(t, seen[col], "col %d in both sets", col)
				seen[col] = true
			}
			require.Equal(t, n, len(seen))
		}
	}
}

func TestSelectColumnsInvariants(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		nSeq := 1 + rnd.Intn(5)
		nCols := rnd.Intn(10)
		seqLen := 200 + rnd.Intn(800)
		chain := make(Chain, nSeq)
		seqs := make([]string, nSeq)
		for s := range chain {
			chain[s] = make([]Anchor, nCols)
			pos := 0
			for col := range chain[s] {
				if rnd.Intn(4) == 0 || pos+20 > seqLen {
					chain[s][col] = EmptyAnchor
					continue
				}
				pos += rnd.Intn(40)
				l := 1 + rnd.Intn(10)
				if pos+l > seqLen {
					chain[s][col] = EmptyAnchor
					continue
				}
				chain[s][col] = Anchor{Start: pos, Len: l}
				pos += l
			}
			seqs[s] = randSeq(rnd, seqLen)
		}
		require.NoError(t, chain.Validate(seqs))

		opts := DefaultOpts
		opts.MinShardSpan = rnd.Intn(50)
		selected := SelectColumns(chain, opts)
		prev := -1
		for _, col := range selected {
			require.Greater(t, col, prev, "selected not strictly increasing")
			require.True(t, col >= 0 && col < nCols)
			prev = col
		}
		// The two sets always partition the column universe, whatever the
		// selection policy does.
		remaining := RemainingCols(nCols, selected)
		require.Equal(t, nCols, len(selected)+len(remaining))
	}
}

func TestSelectColumnsCoverage(t *testing.T) {
	// Column 1 is missing in the last sequence, so full coverage rejects it.
	chain := Chain{
		{{0, 4}, {10, 4}},
		{{0, 4}, {12, 4}},
		{{0, 4}, EmptyAnchor},
	}
	opts := DefaultOpts
	opts.MinShardSpan = 0
	expect.EQ(t, SelectColumns(chain, opts), []int{0})

	opts.Coverage = 0.5
	expect.EQ(t, SelectColumns(chain, opts), []int{0, 1})
}

func TestSelectColumnsSpan(t *testing.T) {
	chain := Chain{
		{{0, 4}, {6, 4}, {300, 4}},
		{{0, 4}, {8, 4}, {280, 4}},
	}
	opts := DefaultOpts
	opts.MinShardSpan = 100
	// Column 1 starts 2 reference bases after column 0 ends; too close.
	expect.EQ(t, SelectColumns(chain, opts), []int{0, 2})
}

func TestValidate(t *testing.T) {
	seqs := []string{"ACGTACGTAC", "ACGTACGTAC"}
	assert.NoError(t, Chain{}.Validate(seqs))
	assert.NoError(t, Chain{
		{{0, 2}, {5, 3}},
		{{1, 2}, EmptyAnchor},
	}.Validate(seqs))

	assert.Error(t, Chain{{{0, 2}}}.Validate(seqs), "row count mismatch")
	assert.Error(t, Chain{
		{{0, 2}, {5, 3}},
		{{0, 2}},
	}.Validate(seqs), "ragged rows")
	assert.Error(t, Chain{
		{{0, 2}, {5, 3}},
		{{0, 2}, {8, 5}},
	}.Validate(seqs), "anchor past sequence end")
	assert.Error(t, Chain{
		{{5, 3}, {0, 2}},
		{{0, 2}, {5, 3}},
	}.Validate(seqs), "positions not increasing")
}

func TestGapSpansTile(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for trial := 0; trial < 100; trial++ {
		seqLen := rnd.Intn(200)
		nCols := rnd.Intn(8)
		cells := make([]Anchor, nCols)
		pos := 0
		for col := range cells {
			if rnd.Intn(3) == 0 {
				cells[col] = EmptyAnchor
				continue
			}
			pos += rnd.Intn(20)
			l := rnd.Intn(10)
			if pos+l > seqLen {
				cells[col] = EmptyAnchor
				continue
			}
			cells[col] = Anchor{Start: pos, Len: l}
			pos += l
		}
		slots := anchorSlots(cells, seqLen)
		gaps := gapSpans(cells, seqLen)
		require.Equal(t, nCols+1, len(gaps))

		// Alternating gap/slot spans tile [0, seqLen) exactly.
		cursor := 0
		for col := 0; col <= nCols; col++ {
			g := gaps[col]
			require.Equal(t, cursor, g.Start)
			require.LessOrEqual(t, g.Start, g.End)
			cursor = g.End
			if col == nCols {
				break
			}
			require.Equal(t, cursor, slots[col].Start)
			require.LessOrEqual(t, slots[col].Start, slots[col].End)
			cursor = slots[col].End
		}
		require.Equal(t, seqLen, cursor)
	}
}

func randSeq(rnd *rand.Rand, n int) string {
	const bases = "ACGT"
	b := make([]byte, n)
	for i := range b {
		b[i] = bases[rnd.Intn(4)]
	}
	return string(b)
}
