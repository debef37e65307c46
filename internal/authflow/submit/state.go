// Package submit runs the validate, call, and notify cycle for the login and
// signup forms.
package submit

// State is the lifecycle stage of one submit attempt.
type State int

const (
	// Idle means no attempt is in progress. Attempts rejected by validation
	// leave the controller here.
	Idle State = iota
	// Pending means the backend call is in flight.
	Pending
	// Succeeded means the backend accepted the last attempt.
	Succeeded
	// Failed means the backend rejected the last attempt or could not be
	// reached.
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Flow names which form a controller submits.
type Flow string

const (
	FlowLogin  Flow = "login"
	FlowSignup Flow = "signup"
)
