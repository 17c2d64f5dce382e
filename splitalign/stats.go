package splitalign

// Stats represents high-level statistics of one gap-filling run.
type Stats struct {
	// SelectedCols is the # of chain columns chosen as parallel split points.
	SelectedCols int
	// RemainingCols is the # of columns left to sequential expansion.
	RemainingCols int
	// ParallelTasks and ExpandTasks count dispatched work units per family.
	ParallelTasks int
	ExpandTasks   int
	// Pairwise is the # of in-process local alignments performed.
	Pairwise int
	// Failures is the # of pairwise alignments that returned the failure
	// sentinel and fell back to a raw copy.
	Failures int
	// PassThroughs is the # of regions copied through because the chain cell
	// was empty for that sequence.
	PassThroughs int
	// External is the # of shards resolved by the external aligner;
	// ExternalFallbacks counts handoffs that failed and were realigned
	// pairwise instead.
	External          int
	ExternalFallbacks int
}

// Merge adds the field values of the two Stats objects and creates new Stats.
func (s Stats) Merge(o Stats) Stats {
	s.SelectedCols += o.SelectedCols
	s.RemainingCols += o.RemainingCols
	s.ParallelTasks += o.ParallelTasks
	s.ExpandTasks += o.ExpandTasks
	s.Pairwise += o.Pairwise
	s.Failures += o.Failures
	s.PassThroughs += o.PassThroughs
	s.External += o.External
	s.ExternalFallbacks += o.ExternalFallbacks
	return s
}
