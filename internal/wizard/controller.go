// internal/wizard/controller.go
package wizard

import (
	"sort"
	"strings"
)

// State is the lifecycle state of a wizard session.
type State string

const (
	StateActive    State = "active"
	StateSubmitted State = "submitted"
	StateAbandoned State = "abandoned"
)

// Outcome reports what GoNext did.
type Outcome string

const (
	OutcomeAdvanced Outcome = "advanced"
	OutcomeBlocked  Outcome = "blocked"
	OutcomeReady    Outcome = "ready"
	OutcomeIgnored  Outcome = "ignored"
)

// View is the tuple rendered by the host after every event.
type View struct {
	Flow          string `json:"flow"`
	State         State  `json:"state"`
	StepIndex     int    `json:"stepIndex"`
	TotalSteps    int    `json:"totalSteps"`
	StepTitle     string `json:"stepTitle,omitempty"`
	Draft         Draft  `json:"draft,omitempty"`
	Errors        Errors `json:"errors"`
	ReadyToSubmit bool   `json:"readyToSubmit"`
	Payload       Draft  `json:"payload,omitempty"`
}

// Controller owns a draft for the lifetime of one flow. It is not safe for
// concurrent use; a session has a single owner.
type Controller struct {
	def      Definition
	state    State
	step     int
	draft    Draft
	errors   Errors
	ready    bool
	payload  Draft
	onSubmit func(Draft)
}

type Option func(*Controller)

// WithSubmitHook registers a callback invoked once with the completed draft.
func WithSubmitHook(fn func(Draft)) Option {
	return func(c *Controller) { c.onSubmit = fn }
}

// New starts a flow at step 1 with an empty draft.
func New(def Definition, opts ...Option) (*Controller, error) {
	if err := def.Check(); err != nil {
		return nil, err
	}
	c := &Controller{
		def:    def,
		state:  StateActive,
		step:   1,
		draft:  Draft{},
		errors: Errors{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.recomputeAll()
	return c, nil
}

func (c *Controller) Definition() Definition { return c.def }
func (c *Controller) State() State           { return c.state }
func (c *Controller) StepIndex() int         { return c.step }

// UpdateField sets a draft value. Writes to derived and protected fields are
// ignored.
func (c *Controller) UpdateField(name string, value interface{}) {
	if c.state != StateActive || name == "" || c.def.isDerived(name) || c.def.isProtected(name) {
		return
	}
	c.set(name, value)
}

// Seed writes a protected field. Other names are ignored.
func (c *Controller) Seed(name string, value interface{}) {
	if c.state != StateActive || !c.def.isProtected(name) {
		return
	}
	c.set(name, value)
}

func (c *Controller) set(name string, value interface{}) {
	c.draft[name] = value
	c.clearErrors(name)
	c.recompute(name)
	c.ready = false
}

// GoNext validates the current step and moves forward when it is clean.
// On the last step it only raises the ready-to-submit signal.
func (c *Controller) GoNext() Outcome {
	if c.state != StateActive {
		return OutcomeIgnored
	}

	errs := c.def.validate(c.step, c.draft)
	if len(errs) > 0 {
		c.errors = errs
		c.ready = false
		return OutcomeBlocked
	}

	c.errors = Errors{}
	if c.step == c.def.TotalSteps() {
		c.ready = true
		return OutcomeReady
	}
	c.step++
	return OutcomeAdvanced
}

// Prefill applies values in key order and then advances toward target
// through the normal forward gate, stopping at the first step that does not
// validate.
func (c *Controller) Prefill(values Draft, target int) Outcome {
	if c.state != StateActive {
		return OutcomeIgnored
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.UpdateField(k, values[k])
	}

	if target > c.def.TotalSteps() {
		target = c.def.TotalSteps()
	}
	outcome := OutcomeIgnored
	for c.step < target {
		outcome = c.GoNext()
		if outcome != OutcomeAdvanced {
			return outcome
		}
	}
	return outcome
}

// GoBack moves to the previous step and clears the error set.
func (c *Controller) GoBack() {
	if c.state != StateActive || c.step <= 1 {
		return
	}
	c.step--
	c.errors = Errors{}
	c.ready = false
}

// Submit completes the flow from the last step. It returns the payload and
// true once submitted; repeated calls return the same payload.
func (c *Controller) Submit() (Draft, bool) {
	switch c.state {
	case StateSubmitted:
		return c.payload.clone(), true
	case StateAbandoned:
		return nil, false
	}
	if c.step != c.def.TotalSteps() {
		return nil, false
	}

	errs := c.def.validate(c.step, c.draft)
	if len(errs) > 0 {
		c.errors = errs
		c.ready = false
		return nil, false
	}

	c.payload = c.draft.clone()
	c.draft = nil
	c.errors = Errors{}
	c.ready = false
	c.state = StateSubmitted
	if c.onSubmit != nil {
		c.onSubmit(c.payload.clone())
	}
	return c.payload.clone(), true
}

// Abandon discards the draft. Terminal states are left untouched.
func (c *Controller) Abandon() {
	if c.state != StateActive {
		return
	}
	c.state = StateAbandoned
	c.draft = nil
	c.errors = Errors{}
	c.ready = false
}

// View returns copies of the renderable state.
func (c *Controller) View() View {
	v := View{
		Flow:          c.def.Name,
		State:         c.state,
		StepIndex:     c.step,
		TotalSteps:    c.def.TotalSteps(),
		Draft:         c.draft.clone(),
		Errors:        c.errors.clone(),
		ReadyToSubmit: c.ready,
		Payload:       c.payload.clone(),
	}
	if c.state == StateActive {
		v.StepTitle = c.def.step(c.step).Title
	}
	return v
}

func (c *Controller) clearErrors(name string) {
	prefix := name + "."
	for field := range c.errors {
		if field == name || strings.HasPrefix(field, prefix) {
			delete(c.errors, field)
		}
	}
}

func (c *Controller) recompute(changed string) {
	for _, f := range c.def.Derived {
		for _, dep := range f.DependsOn {
			if dep == changed {
				c.draft[f.Name] = f.Compute(c.draft)
				break
			}
		}
	}
}

func (c *Controller) recomputeAll() {
	for _, f := range c.def.Derived {
		c.draft[f.Name] = f.Compute(c.draft)
	}
}

// clone copies d and every nested map and slice, so callers never share
// storage with the controller.
func (d Draft) clone() Draft {
	if d == nil {
		return nil
	}
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		if t == nil {
			return t
		}
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	case Draft:
		return t.clone()
	case []interface{}:
		if t == nil {
			return t
		}
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	case []map[string]interface{}:
		if t == nil {
			return t
		}
		out := make([]map[string]interface{}, len(t))
		for i, e := range t {
			out[i], _ = deepCopy(e).(map[string]interface{})
		}
		return out
	case []string:
		if t == nil {
			return t
		}
		return append([]string(nil), t...)
	}
	return v
}

func (e Errors) clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
