package splitalign

// gapChar is the character inserted at deletion positions.
const gapChar = '-'

// Directions stored in the traceback matrix.
const (
	swStop = iota
	swDiag // consume one ref and one query base
	swUp   // consume one ref base, gap in query
	swLeft // consume one query base, insertion in query
)

// alignGap aligns query locally against ref (Smith-Waterman, linear gap
// penalty) and decodes the traceback into the query's aligned fragment:
// query bases in matched and inserted positions, gapChar wherever a reference
// base has no query counterpart. The unaligned head and tail of the query are
// carried through raw, so stripping gap characters from the fragment always
// reproduces query exactly.
//
// The returned pair locates the aligned region on ref as (start, length).
// When no cell reaches opts.MinAlignScore the sentinel (-1, -1) is returned
// and the fragment is the raw query; the caller treats that as the
// copy-through fallback, not an error.
func alignGap(ref, query string, opts Opts) (frag string, refStart, refLen int) {
	m, n := len(ref), len(query)
	if m == 0 || n == 0 {
		return query, -1, -1
	}

	// score[i][j] is the best local alignment score ending at ref[i-1],
	// query[j-1]; dir remembers the move that produced it.
	score := make([][]int, m+1)
	dir := make([][]uint8, m+1)
	for i := range score {
		score[i] = make([]int, n+1)
		dir[i] = make([]uint8, n+1)
	}
	maxScore, maxI, maxJ := 0, 0, 0
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			sub := opts.MismatchScore
			if ref[i-1] == query[j-1] {
				sub = opts.MatchScore
			}
			best, move := 0, uint8(swStop)
			if v := score[i-1][j-1] + sub; v > best {
				best, move = v, swDiag
			}
			if v := score[i-1][j] + opts.GapScore; v > best {
				best, move = v, swUp
			}
			if v := score[i][j-1] + opts.GapScore; v > best {
				best, move = v, swLeft
			}
			score[i][j] = best
			dir[i][j] = move
			if best > maxScore {
				maxScore, maxI, maxJ = best, i, j
			}
		}
	}
	if maxScore < opts.MinAlignScore {
		return query, -1, -1
	}

	// Walk the traceback from the best cell, emitting the aligned middle in
	// reverse.
	mid := make([]byte, 0, m+n)
	i, j := maxI, maxJ
	for i > 0 && j > 0 && dir[i][j] != swStop {
		switch dir[i][j] {
		case swDiag:
			mid = append(mid, query[j-1])
			i--
			j--
		case swUp:
			mid = append(mid, gapChar)
			i--
		case swLeft:
			mid = append(mid, query[j-1])
			j--
		}
	}
	for l, r := 0, len(mid)-1; l < r; l, r = l+1, r-1 {
		mid[l], mid[r] = mid[r], mid[l]
	}

	buf := make([]byte, 0, len(query)+len(mid))
	buf = append(buf, query[:j]...)
	buf = append(buf, mid...)
	buf = append(buf, query[maxJ:]...)
	return string(buf), i, maxI - i
}

// stripGaps removes every gap character from an aligned fragment.
func stripGaps(frag string) string {
	out := make([]byte, 0, len(frag))
	for i := 0; i < len(frag); i++ {
		if frag[i] != gapChar {
			out = append(out, frag[i])
		}
	}
	return string(out)
}
