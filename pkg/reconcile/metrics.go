package reconcile

import "github.com/rs/zerolog"

// Metrics is the explicit counter sink for one reconciliation run. The diff
// and the applier both write to it; nothing in the core reads process-wide
// state.
type Metrics struct {
	// Additions counts add actions attempted (including dry-run).
	Additions uint64

	// Removals counts remove actions attempted (including dry-run).
	Removals uint64

	// Noops counts keep actions and suppressed additions.
	Noops uint64

	// Errors counts non-fatal remote failures during the action loop.
	Errors uint64

	// Mismatches counts actions aborted because the looked-up account ID no
	// longer matches the recorded one.
	Mismatches uint64

	// Distrusted counts additions withheld because provenance scored the
	// identity claim untrustworthy.
	Distrusted uint64

	// MissingGitHub counts roster records without a recorded login.
	MissingGitHub uint64

	// MissingGitHubID counts roster records without a recorded account ID.
	MissingGitHubID uint64
}

// NewMetrics returns an empty metrics sink.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Changed returns the number of mutating actions taken so far, the quantity
// the change limit is measured against.
func (m *Metrics) Changed() uint64 {
	return m.Additions + m.Removals
}

// LogSummary emits the final counters at info level.
func (m *Metrics) LogSummary(log *zerolog.Logger) {
	log.Info().
		Uint64("additions", m.Additions).
		Uint64("removals", m.Removals).
		Uint64("noops", m.Noops).
		Uint64("errors", m.Errors).
		Uint64("mismatches", m.Mismatches).
		Uint64("distrusted", m.Distrusted).
		Uint64("missing_github", m.MissingGitHub).
		Uint64("missing_github_id", m.MissingGitHubID).
		Msg("Reconciliation complete")
}
