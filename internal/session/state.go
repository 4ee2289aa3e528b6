package session

// State is the turn state of a session.
//
//	Idle -> AwaitingInput -> Processing -> Idle
//
// A session can also go straight from Idle to Processing when input arrives
// without a prior render (API clients).
type State int

const (
	StateIdle State = iota
	StateAwaitingInput
	StateProcessing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingInput:
		return "awaiting_input"
	case StateProcessing:
		return "processing"
	default:
		return "unknown"
	}
}
