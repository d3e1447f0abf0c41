package runtime

// QueueFlushPolicy configures which messages flush the app state queue.
// QueueFlushMsg always flushes.
type QueueFlushPolicy int

const (
	// FlushOnMessageAndTick flushes on any message or tick.
	FlushOnMessageAndTick QueueFlushPolicy = iota
	// FlushOnMessage flushes on messages except TickMsg.
	FlushOnMessage
	// FlushOnTick flushes only on TickMsg.
	FlushOnTick
	// FlushManual flushes only on QueueFlushMsg.
	FlushManual
)

func (p QueueFlushPolicy) String() string {
	switch p {
	case FlushOnMessageAndTick:
		return "message+tick"
	case FlushOnMessage:
		return "message"
	case FlushOnTick:
		return "tick"
	case FlushManual:
		return "manual"
	default:
		return "unknown"
	}
}

// Flushes reports whether msg should trigger a queue flush.
func (p QueueFlushPolicy) Flushes(msg Message) bool {
	if _, ok := msg.(QueueFlushMsg); ok {
		return true
	}
	_, tick := msg.(TickMsg)
	switch p {
	case FlushManual:
		return false
	case FlushOnMessage:
		return !tick
	case FlushOnTick:
		return tick
	default:
		return true
	}
}
