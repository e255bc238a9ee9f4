package snake

// Script feeds a recorded input log back into an engine. Events must be
// in the order they were recorded, which is also tick order.
type Script struct {
	events []InputEvent
	next   int
}

// NewScript creates a script from a recorded input log.
func NewScript(events []InputEvent) *Script {
	return &Script{events: events}
}

// Apply issues every event recorded at the engine's current tick.
// Call it right before each Step.
func (s *Script) Apply(e *Engine) {
	for s.next < len(s.events) && s.events[s.next].Tick <= e.Tick() {
		e.SetHeading(s.events[s.next].Dir)
		s.next++
	}
}

// Done reports whether every event has been issued.
func (s *Script) Done() bool {
	return s.next >= len(s.events)
}

// Simulate replays events on a fresh engine built from cfg until the game
// ends or maxTicks steps have run, and returns the final snapshot.
// maxTicks == 0 means no limit; only use that for runs known to end.
func Simulate(cfg Config, events []InputEvent, maxTicks uint64) Snapshot {
	e := New(cfg)
	script := NewScript(events)
	for e.Alive() && (maxTicks == 0 || e.Tick() < maxTicks) {
		script.Apply(e)
		e.Step()
	}
	return e.Snapshot()
}
