package viewmodel

// Phase is where a load stands.
type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status is the published load state. Err is set only when Phase is Failed.
type Status struct {
	Phase Phase
	Err   error
	// Count is the size of the last loaded collection.
	Count int
}
