package domain

// OutcomeState classifies the result of evaluating a probe.
type OutcomeState string

const (
	// StateSatisfied indicates the capability is present and working.
	StateSatisfied OutcomeState = "Satisfied"
	// StateUnsatisfied indicates the capability is absent.
	StateUnsatisfied OutcomeState = "Unsatisfied"
	// StateErrored indicates the probe itself failed while evaluating.
	StateErrored OutcomeState = "Errored"
)

// Outcome is the explicit result of a capability check. It replaces the
// throw-as-false control flow of the original snippets: an evaluation error
// is carried as data, and the gate treats Unsatisfied and Errored
// identically when deciding whether to load a fallback.
type Outcome struct {
	State OutcomeState
	Err   error
}

// Satisfied returns an Outcome for a present, working capability.
func Satisfied() Outcome {
	return Outcome{State: StateSatisfied}
}

// Unsatisfied returns an Outcome for an absent capability.
func Unsatisfied() Outcome {
	return Outcome{State: StateUnsatisfied}
}

// Errored returns an Outcome for a probe that failed while evaluating.
func Errored(err error) Outcome {
	return Outcome{State: StateErrored, Err: err}
}

// Missing reports whether the outcome requires a fallback load.
// Errored is a degenerate Unsatisfied here, by contract.
func (o Outcome) Missing() bool {
	return o.State != StateSatisfied
}
