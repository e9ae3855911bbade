package control

import "time"

type (
	// Direction is the polarity the H-bridge is driven with.
	Direction uint8

	// GateState is the state of a DirectionGate.
	GateState uint8
)

const (
	DirectionNil Direction = iota
	DirectionForward
	DirectionReverse
)

const (
	GateIdle      GateState = iota // No reversal requested
	GatePending                    // A reversal is requested but its dwell time has not elapsed
	GateCommitted                  // A new direction was committed this call
)

// Inverted returns the opposite direction.
func (d Direction) Inverted() Direction {
	switch d {
	case DirectionForward:
		return DirectionReverse
	case DirectionReverse:
		return DirectionForward
	default:
		return DirectionNil
	}
}

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionReverse:
		return "reverse"
	default:
		return "none"
	}
}

func (s GateState) String() string {
	switch s {
	case GatePending:
		return "pending"
	case GateCommitted:
		return "committed"
	default:
		return "idle"
	}
}

// DirectionGate debounces polarity changes of the H-bridge.
//
// A new direction is committed only after it has been requested continuously
// for the dwell time. The very first direction commits immediately since there
// is no previous polarity to protect.
type DirectionGate struct {
	dwell        time.Duration
	current      Direction
	lastChange   time.Time
	pending      Direction
	pendingSince time.Time
}

// NewDirectionGate creates a gate with the given dwell time.
func NewDirectionGate(dwell time.Duration) *DirectionGate {
	return &DirectionGate{dwell: dwell}
}

// Current returns the last committed direction.
func (g *DirectionGate) Current() Direction {
	return g.current
}

// LastChange returns the time of the last committed direction change.
func (g *DirectionGate) LastChange() time.Time {
	return g.lastChange
}

// Pending reports whether a reversal is waiting for its dwell time.
func (g *DirectionGate) Pending() bool {
	return g.pending != DirectionNil
}

// Request asks for dir at time now and returns the direction the output
// should have after this call.
func (g *DirectionGate) Request(dir Direction, now time.Time) (Direction, GateState) {
	if dir == DirectionNil {
		g.Cancel()
		return g.current, GateIdle
	}

	// Fast path, no change requested
	if dir == g.current {
		g.Cancel()
		return g.current, GateIdle
	}

	if g.current == DirectionNil {
		g.commit(dir, now)
		return g.current, GateCommitted
	}

	// Restart the dwell window whenever the requested polarity changes
	if g.pending != dir {
		g.pending = dir
		g.pendingSince = now
	}

	if now.Sub(g.pendingSince) >= g.dwell && now.Sub(g.lastChange) >= g.dwell {
		g.commit(dir, now)
		return g.current, GateCommitted
	}
	return g.current, GatePending
}

// Cancel drops any pending reversal.
func (g *DirectionGate) Cancel() {
	g.pending = DirectionNil
	g.pendingSince = time.Time{}
}

func (g *DirectionGate) commit(dir Direction, now time.Time) {
	g.current = dir
	g.lastChange = now
	g.Cancel()
}
