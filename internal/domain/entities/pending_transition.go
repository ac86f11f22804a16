package entities

import "time"

// PendingTransition is a reviewer decision that has been selected but not yet
// confirmed. Actions that need a reason stay pending until one is supplied;
// dropping the value cancels the decision without touching the application.
type PendingTransition struct {
	Action      Action            `json:"action"`
	Target      ApplicationStatus `json:"target"`
	ReasonDraft string            `json:"reason_draft"`
	NeedsReason bool              `json:"needs_reason"`
}

// BeginTransition opens a pending decision for the given action.
func BeginTransition(action Action) (PendingTransition, error) {
	rule, err := RuleFor(action)
	if err != nil {
		return PendingTransition{}, err
	}
	return PendingTransition{Action: rule.Action, Target: rule.To, NeedsReason: rule.RequiresReason()}, nil
}

func (p PendingTransition) WithReason(reason string) PendingTransition {
	p.ReasonDraft = reason
	return p
}

func (p PendingTransition) Active() bool {
	return p.Action != ""
}

// Cancel discards the pending decision.
func (p PendingTransition) Cancel() PendingTransition {
	return PendingTransition{}
}

// Confirm applies the pending decision through the workflow rules.
func (p PendingTransition) Confirm(app Application, actor Actor, now time.Time) (Application, TransitionRule, error) {
	if !p.Active() {
		return app, TransitionRule{}, ErrUnknownAction
	}
	return ApplyTransition(app, actor, p.Action, TransitionInput{Reason: p.ReasonDraft, Now: now})
}
