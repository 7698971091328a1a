// Package onboarding implements the signup wizard: a linear sequence of
// steps collecting interest and activity selections. Transitions are pure
// value functions so the machine can be tested without any HTTP plumbing.
package onboarding

import "context"

// Step identifies a wizard state.
type Step string

const (
	StepWelcome    Step = "welcome"
	StepInterests  Step = "interests"
	StepActivities Step = "activities"
	StepComplete   Step = "complete"
)

// Selections is the accumulated outcome of a finished wizard.
type Selections struct {
	Interests  []string `json:"interests"`
	Activities []string `json:"activities"`
}

// Wizard is an immutable wizard state. Methods return the successor value;
// the receiver is never mutated.
type Wizard struct {
	Step       Step     `json:"step"`
	Interests  []string `json:"interests"`
	Activities []string `json:"activities"`
}

// New returns a wizard at the welcome step with no selections.
func New() Wizard {
	return Wizard{Step: StepWelcome}
}

// Next advances one step. Leaving the interests step requires at least one
// selected interest; with none the state is returned unchanged. Activities
// are optional: an empty selection is a valid skip. Complete is terminal.
func (w Wizard) Next() Wizard {
	switch w.Step {
	case StepWelcome:
		w.Step = StepInterests
	case StepInterests:
		if len(w.Interests) == 0 {
			return w
		}
		w.Step = StepActivities
	case StepActivities:
		w.Step = StepComplete
	}
	return w
}

// Back moves to the immediately preceding step. Selections are retained: a
// user navigating back and forward again finds their choices intact.
func (w Wizard) Back() Wizard {
	switch w.Step {
	case StepInterests:
		w.Step = StepWelcome
	case StepActivities:
		w.Step = StepInterests
	case StepComplete:
		w.Step = StepActivities
	}
	return w
}

// WithInterests replaces the interest selection.
func (w Wizard) WithInterests(ids []string) Wizard {
	w.Interests = append([]string(nil), ids...)
	return w
}

// WithActivities replaces the activity selection.
func (w Wizard) WithActivities(ids []string) Wizard {
	w.Activities = append([]string(nil), ids...)
	return w
}

// Done reports whether the wizard reached the terminal step.
func (w Wizard) Done() bool {
	return w.Step == StepComplete
}

// Selections returns the accumulated selections.
func (w Wizard) Selections() Selections {
	return Selections{
		Interests:  append([]string(nil), w.Interests...),
		Activities: append([]string(nil), w.Activities...),
	}
}

// Completer persists the outcome of a finished wizard. The machine itself
// never touches storage; whatever backs this hook is the caller's concern.
type Completer interface {
	Complete(ctx context.Context, userID string, sel Selections) error
}
