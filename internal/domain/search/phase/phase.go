package phase

// Phase is the stage of a search attempt.
type Phase string

// Search phases, in the order a single attempt passes through them.
const (
	Idle       Phase = "idle"
	Validating Phase = "validating"
	Locating   Phase = "locating"
	Requesting Phase = "requesting"
	// Success and Failed are terminal for the current attempt.
	Success Phase = "success"
	Failed  Phase = "failed"
)

// IsValid checks if the phase is one of the known values.
func (p Phase) IsValid() bool {
	switch p {
	case Idle, Validating, Locating, Requesting, Success, Failed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the attempt has finished.
func (p Phase) IsTerminal() bool {
	return p == Success || p == Failed
}

// InFlight reports whether an attempt is currently running.
func (p Phase) InFlight() bool {
	return p == Validating || p == Locating || p == Requesting
}

// CanStart reports whether a new attempt may begin from this phase.
func (p Phase) CanStart() bool {
	return p == Idle || p.IsTerminal()
}
