// Package convert drives the conversion pipeline: it routes each discovered
// candidate to the direct or two-step (HEIC decode, then encode) path,
// reserves collision-free output names, propagates metadata when the
// capability probe succeeded, and folds every job outcome into a RunSummary.
//
// Processing is sequential: one candidate is fully handled before the next
// begins. Failures never cross job boundaries; a run aborts only on
// environment errors such as a missing encoder or an unwritable output
// directory.
package convert
