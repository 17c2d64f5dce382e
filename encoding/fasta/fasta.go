// Package fasta reads and writes FASTA-formatted sequence data. FASTA files
// consist of a number of named sequences that may be interrupted by newlines.
// For example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Note: Sequence names are defined to be the stretch of characters excluding
// spaces immediately after '>'. Any text appearing after a space is ignored.
// For example, '>chr1 A viral sequence' becomes 'chr1'.
package fasta

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const bufferInitSize = 1024 * 1024 * 300 // 300 MB

// Seq is one named sequence, in file order.
type Seq struct {
	Name string
	Data string
}

// Read parses all FASTA records from r, preserving file order.
func Read(r io.Reader) ([]Seq, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, bufferInitSize)
	var seqs []Seq
	var name string
	var started bool
	var data strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' { // Start a new sequence.
			if started {
				seqs = append(seqs, Seq{Name: name, Data: data.String()})
				data.Reset()
			}
			name = strings.Split(line[1:], " ")[0]
			started = true
		} else {
			if !started {
				return nil, errors.Errorf("malformed FASTA data: sequence before first header")
			}
			data.WriteString(line)
		}
	}
	if scanner.Err() != nil {
		return nil, errors.Wrap(scanner.Err(), "couldn't read FASTA data")
	}
	if started {
		seqs = append(seqs, Seq{Name: name, Data: data.String()})
	}
	return seqs, nil
}

// Write emits the sequences as FASTA, wrapping sequence lines at width bases
// (0 writes each sequence on a single line).
func Write(w io.Writer, seqs []Seq, width int) error {
	bw := bufio.NewWriter(w)
	for _, s := range seqs {
		if _, err := bw.WriteString(">" + s.Name + "\n"); err != nil {
			return errors.Wrap(err, "couldn't write FASTA data")
		}
		data := s.Data
		for len(data) > 0 {
			n := len(data)
			if width > 0 && n > width {
				n = width
			}
			if _, err := bw.WriteString(data[:n]); err != nil {
				return errors.Wrap(err, "couldn't write FASTA data")
			}
			if err := bw.WriteByte('\n'); err != nil {
				return errors.Wrap(err, "couldn't write FASTA data")
			}
			data = data[n:]
		}
	}
	return errors.Wrap(bw.Flush(), "couldn't write FASTA data")
}

// Clean uppercases nucleotide letters and replaces every non-ACGT character
// with '-', the representation downstream alignment expects.
func Clean(seq string) string {
	var b strings.Builder
	b.Grow(len(seq))
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'a', 'A':
			b.WriteByte('A')
		case 'c', 'C':
			b.WriteByte('C')
		case 'g', 'G':
			b.WriteByte('G')
		case 't', 'T':
			b.WriteByte('T')
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
