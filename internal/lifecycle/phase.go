package lifecycle

// Phase is the coarse lifecycle position of the process.
type Phase int

const (
	PhaseCreated Phase = iota
	PhaseStarted
	PhaseActivated
	PhaseShuttingDown
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseCreated:
		return "created"
	case PhaseStarted:
		return "started"
	case PhaseActivated:
		return "activated"
	case PhaseShuttingDown:
		return "shutting-down"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
