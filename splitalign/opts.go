package splitalign

// Opts configures the gap-filling and merge stage.
type Opts struct {
	// RefIndex is the index of the sequence that gap regions are aligned
	// against. The choice of reference is a policy knob; 0 picks the first
	// input sequence.
	RefIndex int

	// Coverage is the fraction of sequences that must carry an anchor at a
	// column for the column to qualify as a parallel split point. 1.0
	// requires the anchor in every sequence.
	Coverage float64

	// MinShardSpan is the minimum distance, in reference bases, between two
	// consecutive split points. Columns closer than this to the previously
	// chosen one are left to sequential expansion; realigning tiny spans on
	// their own threads costs more than it saves.
	MinShardSpan int

	// MatchScore, MismatchScore and GapScore parameterize the local
	// aligner. MatchScore must be positive, the other two negative.
	MatchScore    int
	MismatchScore int
	GapScore      int

	// MinAlignScore is the score below which a local alignment is treated
	// as unusable and the raw region is copied through instead.
	MinAlignScore int

	// MaxSWLen bounds the region length handled by the in-process pairwise
	// aligner. A shard whose longest per-sequence range exceeds this is
	// handed to External when one is configured. The pairwise matrix is
	// quadratic in region length, so this also caps memory per task.
	MaxSWLen int

	// External, when non-nil, resolves oversized shards through a full
	// multiple aligner (typically an out-of-process tool via file handoff).
	// nil disables the handoff; every shard is then aligned pairwise.
	External ExternalAligner

	// TempDir is the working directory for file handoffs to External. It is
	// created lazily and removed when the stage finishes.
	TempDir string

	// Parallelism is the number of worker goroutines resolving gap tasks.
	// 0 means runtime.NumCPU().
	Parallelism int
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	RefIndex:      0,
	Coverage:      1.0,
	MinShardSpan:  256,
	MatchScore:    2,
	MismatchScore: -3,
	GapScore:      -2,
	MinAlignScore: 1,
	MaxSWLen:      10000,
	TempDir:       "tmp",
	Parallelism:   0,
}
