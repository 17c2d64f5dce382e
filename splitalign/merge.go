package splitalign

import "strings"

// mergeAlignment stitches anchor columns and resolved gap fragments back
// together, in column order, into one alignment row per sequence. Every block
// (each gap row of the arena and each anchor column) is padded on the right
// with gap characters to the block-wide maximum width, so insertions land at
// the same global offset in every row and all rows come out the same length.
func mergeAlignment(e *engine) []string {
	nCols := e.chain.NumCols()
	rows := make([]strings.Builder, len(e.seqs))

	anchors := make([]string, len(e.seqs))
	for col := 0; col <= nCols; col++ {
		appendBlock(rows, e.arena.rows[col])
		if col == nCols {
			break
		}
		for s := range e.seqs {
			a := e.chain[s][col]
			if a.Empty() {
				anchors[s] = ""
				continue
			}
			// Anchors are exact matches; their content is copied from the
			// raw sequence unchanged.
			anchors[s] = e.seqs[s][a.Start:a.End()]
		}
		appendBlock(rows, anchors)
	}

	merged := make([]string, len(rows))
	for s := range rows {
		merged[s] = rows[s].String()
	}
	return merged
}

func appendBlock(rows []strings.Builder, frags []string) {
	width := 0
	for _, f := range frags {
		if len(f) > width {
			width = len(f)
		}
	}
	if width == 0 {
		return
	}
	for s, f := range frags {
		rows[s].WriteString(f)
		if pad := width - len(f); pad > 0 {
			rows[s].WriteString(strings.Repeat(string(gapChar), pad))
		}
	}
}
