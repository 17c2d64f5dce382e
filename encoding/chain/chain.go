// Package chain reads and writes anchor-chain dumps, the TSV handoff format
// between the upstream anchor discovery step and the gap-filling stage. One
// row per (sequence, column) anchor occurrence:
//
//	SEQ	COL	START	LEN
//	chr1	0	1042	31
//
// Sequences absent from a column simply have no row there; they become empty
// chain cells.
package chain

import (
	"fmt"
	"io"

	"github.com/grailbio/base/tsv"

	"github.com/malabz/FMAlign2/splitalign"
)

// Row is one anchor occurrence in a chain dump.
type Row struct {
	Seq   string `tsv:"SEQ"`
	Col   int64  `tsv:"COL"`
	Start int64  `tsv:"START"`
	Len   int64  `tsv:"LEN"`
}

// Read parses a chain dump into a chain over the named sequences, in the
// given order. Rows naming unknown sequences or out-of-range columns are
// errors; missing (seq, col) pairs yield empty cells.
func Read(r io.Reader, names []string) (splitalign.Chain, error) {
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	tsvReader := tsv.NewReader(r)
	tsvReader.Comment = '#'
	tsvReader.HasHeaderRow = true
	tsvReader.UseHeaderNames = true
	var rows []Row
	nCols := 0
	for {
		var row Row
		if err := tsvReader.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if _, ok := index[row.Seq]; !ok {
			return nil, fmt.Errorf("chain names unknown sequence %q", row.Seq)
		}
		if row.Col < 0 {
			return nil, fmt.Errorf("chain row for %q has negative column %d", row.Seq, row.Col)
		}
		if int(row.Col)+1 > nCols {
			nCols = int(row.Col) + 1
		}
		rows = append(rows, row)
	}

	c := make(splitalign.Chain, len(names))
	for s := range c {
		c[s] = make([]splitalign.Anchor, nCols)
		for col := range c[s] {
			c[s][col] = splitalign.EmptyAnchor
		}
	}
	for _, row := range rows {
		s := index[row.Seq]
		col := int(row.Col)
		if !c[s][col].Empty() {
			return nil, fmt.Errorf("duplicate chain row for sequence %q column %d", row.Seq, col)
		}
		c[s][col] = splitalign.Anchor{Start: int(row.Start), Len: int(row.Len)}
	}
	return c, nil
}

// Write emits the chain as a dump readable by Read. Empty cells produce no
// rows.
func Write(w io.Writer, names []string, c splitalign.Chain) error {
	tsvWriter := tsv.NewWriter(w)
	tsvWriter.WriteString("SEQ\tCOL\tSTART\tLEN")
	if err := tsvWriter.EndLine(); err != nil {
		return err
	}
	for s, row := range c {
		for col, a := range row {
			if a.Empty() {
				continue
			}
			tsvWriter.WriteString(names[s])
			tsvWriter.WriteInt64(int64(col))
			tsvWriter.WriteInt64(int64(a.Start))
			tsvWriter.WriteInt64(int64(a.Len))
			if err := tsvWriter.EndLine(); err != nil {
				return err
			}
		}
	}
	return tsvWriter.Flush()
}
