// internal/wizard/snapshot.go
package wizard

import (
	"errors"
	"fmt"
	"time"
)

var ErrSnapshotMismatch = errors.New("WIZARD_SNAPSHOT_MISMATCH")

// Snapshot is the serialisable state of a controller, used to carry a session
// between independent jobs.
type Snapshot struct {
	Flow      string    `json:"flow"`
	State     State     `json:"state"`
	StepIndex int       `json:"stepIndex"`
	Draft     Draft     `json:"draft,omitempty"`
	Errors    Errors    `json:"errors,omitempty"`
	Ready     bool      `json:"ready"`
	Payload   Draft     `json:"payload,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Flow:      c.def.Name,
		State:     c.state,
		StepIndex: c.step,
		Draft:     c.draft.clone(),
		Errors:    c.errors.clone(),
		Ready:     c.ready,
		Payload:   c.payload.clone(),
		UpdatedAt: time.Now().UTC(),
	}
}

// Restore rebuilds a controller for def from a snapshot. Derived fields are
// recomputed so a stored draft never carries stale values.
func Restore(def Definition, snap Snapshot, opts ...Option) (*Controller, error) {
	if err := def.Check(); err != nil {
		return nil, err
	}
	if snap.Flow != def.Name {
		return nil, fmt.Errorf("%w: snapshot flow %q, definition %q", ErrSnapshotMismatch, snap.Flow, def.Name)
	}
	if snap.StepIndex < 1 || snap.StepIndex > def.TotalSteps() {
		return nil, fmt.Errorf("%w: step %d of %d", ErrStepIndexInvalid, snap.StepIndex, def.TotalSteps())
	}

	c := &Controller{
		def:     def,
		state:   snap.State,
		step:    snap.StepIndex,
		draft:   snap.Draft.clone(),
		errors:  snap.Errors.clone(),
		ready:   snap.Ready,
		payload: snap.Payload.clone(),
	}
	for _, opt := range opts {
		opt(c)
	}

	switch c.state {
	case StateActive:
		if c.draft == nil {
			c.draft = Draft{}
		}
		c.recomputeAll()
	case StateSubmitted, StateAbandoned:
		c.draft = nil
		c.ready = false
	default:
		return nil, fmt.Errorf("%w: unknown state %q", ErrSnapshotMismatch, snap.State)
	}
	return c, nil
}
