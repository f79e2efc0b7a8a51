package convert

// FailureKind classifies why a job did not fully succeed.
type FailureKind string

const (
	FailureNone       FailureKind = ""
	FailureDecode     FailureKind = "decode"
	FailureEncode     FailureKind = "encode"
	FailureMetadata   FailureKind = "metadata"
	FailureUnexpected FailureKind = "unexpected"
)

// JobResult is the outcome of processing one candidate. Every per-job
// failure is a value here, never a run-level error: failures are isolated
// to the job they occurred in.
type JobResult struct {
	Source            string
	Output            string
	Converted         bool
	MetadataPreserved bool
	Failure           FailureKind
	Err               error
}

// RunSummary accumulates job outcomes for the end-of-run report. The run
// driver folds each JobResult in; nothing else mutates it.
type RunSummary struct {
	Total             int
	Converted         int
	MetadataPreserved int
	// MetadataAttempted reports whether the capability probe succeeded and
	// tag propagation ran at all. When false, MetadataPreserved is zero by
	// construction.
	MetadataAttempted bool
	// MetadataDisabled distinguishes propagation turned off by configuration
	// from propagation skipped because the probe failed.
	MetadataDisabled bool
}

// Record folds one job outcome into the summary.
func (s *RunSummary) Record(result JobResult) {
	s.Total++
	if result.Converted {
		s.Converted++
	}
	if result.MetadataPreserved {
		s.MetadataPreserved++
	}
}
