package splitalign

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/grailbio/base/log"
	"v.io/x/lib/envvar"
	"v.io/x/lib/lookpath"

	"github.com/malabz/FMAlign2/encoding/fasta"
)

// ExternalAligner produces one joint alignment of a small set of raw
// sequences. Implementations must return one row per input, with stripping
// gap characters from row i reproducing seqs[i]; results violating that are
// discarded by the caller.
type ExternalAligner interface {
	Align(ctx context.Context, names, seqs []string) ([]string, error)
}

// CommandAligner hands sequences to an out-of-process multiple aligner
// through files: each call writes the raw sequences as FASTA into the working
// directory, runs "<bin> --quiet <file>" (the mafft convention) and parses
// the aligned FASTA from its stdout. Each call removes its own input file;
// Cleanup removes the directory itself once the stage is done. Thread
// compatible.
type CommandAligner struct {
	bin     string
	dir     string
	seq     int64
	mkdir   sync.Once
	created int32
}

// NewCommandAligner locates the named aligner binary on PATH and returns a
// CommandAligner working under dir. The directory is created lazily on first
// use.
func NewCommandAligner(name, dir string) (*CommandAligner, error) {
	env := envvar.SliceToMap(os.Environ())
	bin, err := lookpath.Look(env, name)
	if err != nil {
		return nil, fmt.Errorf("external aligner %q not found: %v", name, err)
	}
	return &CommandAligner{bin: bin, dir: dir}, nil
}

// Align implements ExternalAligner. Failures to create or read the working
// files are unrecoverable and terminate the process; a failing aligner run is
// returned as an error for the caller to fall back on.
func (a *CommandAligner) Align(ctx context.Context, names, seqs []string) ([]string, error) {
	a.mkdir.Do(func() {
		if err := os.MkdirAll(a.dir, 0700); err != nil {
			log.Panicf("creating alignment working dir %s: %v", a.dir, err)
		}
		atomic.StoreInt32(&a.created, 1)
	})
	in := make([]fasta.Seq, len(seqs))
	for i := range seqs {
		in[i] = fasta.Seq{Name: names[i], Data: seqs[i]}
	}
	path := filepath.Join(a.dir, fmt.Sprintf("task_%d.fasta", atomic.AddInt64(&a.seq, 1)))
	f, err := os.Create(path)
	if err != nil {
		log.Panicf("creating %s: %v", path, err)
	}
	if err := fasta.Write(f, in, 80); err != nil {
		log.Panicf("writing %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		log.Panicf("closing %s: %v", path, err)
	}
	defer os.Remove(path) // each task cleans up its own file

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, a.bin, "--quiet", path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s %s: %v: %s", a.bin, path, err, stderr.String())
	}
	out, err := fasta.Read(&stdout)
	if err != nil {
		return nil, fmt.Errorf("parsing %s output: %v", a.bin, err)
	}
	byName := make(map[string]string, len(out))
	for _, s := range out {
		byName[s.Name] = s.Data
	}
	rows := make([]string, len(names))
	for i, name := range names {
		row, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%s dropped sequence %s", a.bin, name)
		}
		rows[i] = row
	}
	return rows, nil
}

// Cleanup removes the working directory. All per-task files were removed by
// their tasks, so only the empty directory should remain.
func (a *CommandAligner) Cleanup() error {
	if atomic.LoadInt32(&a.created) == 0 {
		return nil
	}
	return os.Remove(a.dir)
}
