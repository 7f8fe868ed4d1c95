package domain

// ApplyOutcome is the tagged result of applying one notification to the
// ledger. Modelling "already applied" as a first-class outcome (instead of
// inferring it from a storage precondition failure) lets retried webhook
// deliveries be told apart from genuine errors in logs and tests.
type ApplyOutcome int

const (
	// OutcomeApplied means the transaction record was written and, for a
	// successful state, the balance moved.
	OutcomeApplied ApplyOutcome = iota
	// OutcomeAlreadyApplied means a record with the same (userId,
	// transactionId) already exists; nothing was written.
	OutcomeAlreadyApplied
	// OutcomeRejected means the entry could not be persisted; the
	// accompanying error carries the reason.
	OutcomeRejected
)

func (o ApplyOutcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeAlreadyApplied:
		return "already_applied"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}
