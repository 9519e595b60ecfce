// Package timeline schedules named actions against a discrete,
// monotonically increasing frame counter. Eligibility is recomputed
// from the frame number and each action's static parameters on every
// tick, so actions can be added and removed mid-sequence without
// corrupting in-flight timing.
package timeline

// Action is one scheduled unit of work.
//
// Gating parameters combine in a fixed precedence: an action never runs
// before Start, never after Start+Duration (when Duration is set), waits
// Delay frames past Start before its first run, then an Interval duty
// cycle gates frames if set, otherwise Frequency, otherwise the action
// runs every frame. Interval wins over Frequency when both are set.
type Action struct {
	Name     string
	Category string

	Start     int
	Duration  int // frames the window stays open past Start; 0 = unbounded
	Frequency int // run only when frame is a multiple; 0 = every frame
	Delay     int // frames past Start before the first run
	Interval  [2]int // active and pause lengths of a repeating duty cycle

	// Do runs on every eligible frame.
	Do func(frame int)
	// OnCycleStart runs once at the first active frame of each duty
	// cycle (cycle 0 for actions without an interval).
	OnCycleStart func(cycle int)
	// OnComplete runs exactly once when the window closes. It is not
	// called when the action is removed before its window elapses.
	OnComplete func()

	// AutoRemove drops the action from its manager once the window
	// closes. Only meaningful with a bounded Duration.
	AutoRemove bool

	id        int64
	completed bool
}

// ID returns the manager-assigned identity, 0 before registration.
func (a *Action) ID() int64 {
	return a.id
}

// Manager owns the ordered action collection for one active scene. It
// is driven from the render loop only and needs no locking.
type Manager struct {
	actions []*Action
	nextID  int64
}

// NewManager creates an empty timeline manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add registers an action and returns its assigned id.
func (m *Manager) Add(a *Action) int64 {
	m.nextID++
	a.id = m.nextID
	m.actions = append(m.actions, a)
	return a.id
}

// Remove drops the action with the given id. Removal never triggers
// OnComplete; cancellation and natural expiry are distinct.
func (m *Manager) Remove(id int64) bool {
	for i, a := range m.actions {
		if a.id == id {
			m.actions = append(m.actions[:i], m.actions[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveCategory drops every action tagged with the category and
// returns how many were removed.
func (m *Manager) RemoveCategory(category string) int {
	kept := m.actions[:0]
	removed := 0
	for _, a := range m.actions {
		if a.Category == category {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	for i := len(kept); i < len(m.actions); i++ {
		m.actions[i] = nil
	}
	m.actions = kept
	return removed
}

// Actions returns a copy of the current collection in registration order.
func (m *Manager) Actions() []*Action {
	out := make([]*Action, len(m.actions))
	copy(out, m.actions)
	return out
}

// Len returns the number of registered actions.
func (m *Manager) Len() int {
	return len(m.actions)
}

// Clear drops every action. Used on scene teardown.
func (m *Manager) Clear() {
	m.actions = nil
}

// Tick evaluates every registered action against the given frame
// number, in registration order. Callbacks may add or remove actions;
// additions are first considered on the next tick.
func (m *Manager) Tick(frame int) {
	snapshot := make([]*Action, len(m.actions))
	copy(snapshot, m.actions)

	for _, a := range snapshot {
		m.evaluate(a, frame)
	}
}

func (m *Manager) evaluate(a *Action, frame int) {
	if frame < a.Start {
		return
	}

	end := -1
	if a.Duration > 0 {
		end = a.Start + a.Duration
	}
	if end >= 0 && frame > end {
		// Window already closed; a manager ticked past the closing
		// frame (late registration, skipped frames) still settles the
		// completion exactly once.
		m.complete(a)
		return
	}

	if m.eligible(a, frame) && a.Do != nil {
		a.Do(frame)
	}

	if end >= 0 && frame == end {
		m.complete(a)
	}
}

// eligible applies delay, interval, and frequency gating. The window
// bounds have already been checked.
func (m *Manager) eligible(a *Action, frame int) bool {
	rel := frame - a.Start - a.Delay
	if rel < 0 {
		return false
	}

	if a.Interval[0] > 0 {
		cycleLength := a.Interval[0] + a.Interval[1]
		within := rel % cycleLength
		if within >= a.Interval[0] {
			return false // pause phase
		}
		if within == 0 && a.OnCycleStart != nil {
			a.OnCycleStart(rel / cycleLength)
		}
		return true
	}

	if rel == 0 && a.OnCycleStart != nil {
		a.OnCycleStart(0)
	}
	if a.Frequency > 0 && frame%a.Frequency != 0 {
		return false
	}
	return true
}

func (m *Manager) complete(a *Action) {
	if a.completed {
		return
	}
	a.completed = true
	if a.OnComplete != nil {
		a.OnComplete()
	}
	if a.AutoRemove {
		m.Remove(a.id)
	}
}
