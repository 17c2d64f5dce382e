package splitalign

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func TestParallelRanges(t *testing.T) {
	// Two sequences, three columns. Column 1 is a split point; columns 0 and
	// 2 stay with sequential expansion.
	seqs := []string{
		"AAAA" + "CC" + "GGGG" + "TT" + "AAAA" + "TT" + "GG",
		"AA" + "CC" + "GG" + "TT" + "AAAAAA" + "TT",
	}
	chain := Chain{
		{{4, 2}, {10, 2}, {16, 2}},
		{{2, 2}, {6, 2}, {14, 2}},
	}
	require.NoError(t, chain.Validate(seqs))

	gaps := make([][]span, len(seqs))
	for s := range seqs {
		gaps[s] = gapSpans(chain[s], len(seqs[s]))
	}
	ranges := parallelRanges(gaps, []int{1})
	expect.EQ(t, ranges, [][]span{
		{{6, 10}, {18, 20}},
		{{4, 6}, {16, 16}},
	})
}

func TestParallelRangesProperties(t *testing.T) {
	seqs := []string{"ACGTACGTACGTACGTACGT", "ACGTACGTACGT"}
	chain := Chain{
		{{2, 3}, EmptyAnchor, {9, 4}},
		{{0, 3}, {4, 2}, {8, 4}},
	}
	require.NoError(t, chain.Validate(seqs))

	gaps := make([][]span, len(seqs))
	for s := range seqs {
		gaps[s] = gapSpans(chain[s], len(seqs[s]))
	}
	for _, selected := range [][]int{nil, {0}, {2}, {0, 2}, {0, 1, 2}} {
		ranges := parallelRanges(gaps, selected)
		require.Equal(t, len(seqs), len(ranges))
		for s, rs := range ranges {
			require.Equal(t, len(selected)+1, len(rs))
			prevEnd := 0
			for _, r := range rs {
				require.LessOrEqual(t, prevEnd, r.Start)
				require.LessOrEqual(t, r.Start, r.End)
				require.LessOrEqual(t, r.End, len(seqs[s]))
				prevEnd = r.End
			}
		}
	}
}
