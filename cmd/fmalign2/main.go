package main

/*
fmalign2 fills the gaps between precomputed exact-match anchors of a set of
DNA sequences and emits the merged multiple-sequence alignment as FASTA. The
anchor chain is produced by the upstream match-discovery step and handed over
as a TSV dump.
*/

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"

	chainio "github.com/malabz/FMAlign2/encoding/chain"
	"github.com/malabz/FMAlign2/encoding/fasta"
	"github.com/malabz/FMAlign2/splitalign"
)

var (
	chainPath    = flag.String("chain", "", "Input anchor-chain TSV path (required)")
	outPath      = flag.String("out", "", "Output FASTA path; empty writes to stdout, a .gz suffix compresses")
	refIndex     = flag.Int("ref-index", splitalign.DefaultOpts.RefIndex, "Index of the sequence that gap regions are aligned against")
	coverage     = flag.Float64("coverage", splitalign.DefaultOpts.Coverage, "Fraction of sequences that must carry an anchor at a column for it to become a parallel split point")
	minShardSpan = flag.Int("min-shard-span", splitalign.DefaultOpts.MinShardSpan, "Minimum reference distance, in bases, between consecutive split points")
	maxSWLen     = flag.Int("max-sw-len", splitalign.DefaultOpts.MaxSWLen, "Longest region the in-process pairwise aligner handles; bigger shards go to the external aligner")
	external     = flag.String("external-aligner", "", "Name of an out-of-process multiple aligner (e.g. mafft) for oversized shards; empty disables the file handoff")
	tempDir      = flag.String("temp-dir", splitalign.DefaultOpts.TempDir, "Working directory for external-aligner file handoffs")
	parallelism  = flag.Int("parallelism", 0, "Number of gap-filling workers; 0 = runtime.NumCPU()")
	wrap         = flag.Int("wrap", 80, "Wrap output sequence lines at this many bases; 0 disables wrapping")
)

func fmalign2Usage() {
	fmt.Printf("Usage: %s [OPTIONS] fastapath\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func readSeqs(path string) []fasta.Seq {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, path)
	if err != nil {
		log.Fatalf("open %v: %v", path, err)
	}
	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		r = u
	}
	seqs, err := fasta.Read(r)
	if err != nil {
		log.Fatalf("read %v: %v", path, err)
	}
	if err := in.Close(ctx); err != nil {
		log.Fatalf("close %v: %v", path, err)
	}
	return seqs
}

func readChain(path string, names []string) splitalign.Chain {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, path)
	if err != nil {
		log.Fatalf("open %v: %v", path, err)
	}
	c, err := chainio.Read(in.Reader(ctx), names)
	if err != nil {
		log.Fatalf("read %v: %v", path, err)
	}
	if err := in.Close(ctx); err != nil {
		log.Fatalf("close %v: %v", path, err)
	}
	return c
}

func writeAlignment(path string, seqs []fasta.Seq) {
	ctx := vcontext.Background()
	var (
		w   io.Writer = os.Stdout
		out file.File
		gz  *gzip.Writer
		err error
	)
	if path != "" {
		if out, err = file.Create(ctx, path); err != nil {
			log.Fatalf("create %v: %v", path, err)
		}
		w = out.Writer(ctx)
		if strings.HasSuffix(path, ".gz") {
			gz = gzip.NewWriter(w)
			w = gz
		}
	}
	once := errors.Once{}
	once.Set(fasta.Write(w, seqs, *wrap))
	if gz != nil {
		once.Set(gz.Close())
	}
	if out != nil {
		once.Set(out.Close(ctx))
	}
	if err := once.Err(); err != nil {
		log.Fatalf("write %v: %v", path, err)
	}
}

func main() {
	flag.Usage = fmalign2Usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		log.Fatalf("Exactly one positional argument (fastapath) expected, got '%s'", strings.Join(flag.Args(), " "))
	}
	if *chainPath == "" {
		log.Fatalf("-chain is required")
	}
	start := time.Now()
	ctx := vcontext.Background()

	in := readSeqs(flag.Arg(0))
	names := make([]string, len(in))
	data := make([]string, len(in))
	for i, s := range in {
		names[i] = s.Name
		data[i] = fasta.Clean(s.Data)
	}
	chain := readChain(*chainPath, names)

	opts := splitalign.Opts{
		RefIndex:      *refIndex,
		Coverage:      *coverage,
		MinShardSpan:  *minShardSpan,
		MatchScore:    splitalign.DefaultOpts.MatchScore,
		MismatchScore: splitalign.DefaultOpts.MismatchScore,
		GapScore:      splitalign.DefaultOpts.GapScore,
		MinAlignScore: splitalign.DefaultOpts.MinAlignScore,
		MaxSWLen:      *maxSWLen,
		TempDir:       *tempDir,
		Parallelism:   *parallelism,
	}
	if *external != "" {
		ext, err := splitalign.NewCommandAligner(*external, opts.TempDir)
		if err != nil {
			log.Error.Printf("%v; oversized shards will be aligned pairwise", err)
		} else {
			opts.External = ext
		}
	}

	rows, stats, err := splitalign.Align(ctx, data, chain, opts)
	if err != nil {
		log.Fatalf("align %v: %v", flag.Arg(0), err)
	}
	outSeqs := make([]fasta.Seq, len(rows))
	for i := range rows {
		outSeqs[i] = fasta.Seq{Name: names[i], Data: rows[i]}
	}
	writeAlignment(*outPath, outSeqs)
	log.Printf("aligned %d sequences over %d anchor columns in %v: %+v",
		len(rows), chain.NumCols(), time.Since(start), stats)
}
