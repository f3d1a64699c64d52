package entities

// ProjectOutcome is the terminal state of one project's run through the
// release pipeline.
type ProjectOutcome string

const (
	// OutcomeCommitted means changes existed and the full pipeline
	// (reconcile, validate, bump, commit, push) succeeded.
	OutcomeCommitted ProjectOutcome = "committed"

	// OutcomeSkipped means nothing needed releasing (no changes and no
	// forced bump) or an environment precondition was missing.
	OutcomeSkipped ProjectOutcome = "skipped"

	// OutcomeFailed halts the entire run: downstream projects may depend
	// on the version that should have been published here.
	OutcomeFailed ProjectOutcome = "failed"
)

// ProjectResult pairs a project with its outcome for the run summary.
type ProjectResult struct {
	Project ProjectSpec
	Outcome ProjectOutcome
	Version string
	Detail  string
}
