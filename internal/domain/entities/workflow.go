package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Actor is the role a caller holds when requesting a transition.
type Actor string

const (
	ActorApplicant     Actor = "applicant"
	ActorReviewerTier1 Actor = "reviewer_tier1" // Super-Novae
	ActorReviewerTier2 Actor = "reviewer_tier2" // GBH
)

var ErrInvalidActor = errors.New("invalid actor")

func ParseActor(s string) (Actor, error) {
	switch a := Actor(strings.ToLower(strings.TrimSpace(s))); a {
	case ActorApplicant, ActorReviewerTier1, ActorReviewerTier2:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidActor, s)
}

func (a Actor) IsReviewer() bool {
	return a == ActorReviewerTier1 || a == ActorReviewerTier2
}

// Action names a workflow transition.
type Action string

const (
	ActionSubmit              Action = "submit"
	ActionResubmit            Action = "applicant-resubmit"
	ActionTier1Approve        Action = "tier1-approve"
	ActionTier1RequestChanges Action = "tier1-request-changes"
	ActionTier1Refuse         Action = "tier1-refuse"
	ActionTier2Approve        Action = "tier2-approve"
	ActionTier2Refuse         Action = "tier2-refuse"
)

// ReasonField says which free-text reason a transition must capture.
type ReasonField int

const (
	ReasonNone ReasonField = iota
	ReasonRefusal
	ReasonMissingElements
)

var (
	ErrUnknownAction     = errors.New("unknown workflow action")
	ErrUnauthorizedActor = errors.New("actor not allowed to perform this action")
	ErrInvalidTransition = errors.New("transition not allowed from current status")
	ErrReasonRequired    = errors.New("a reason is required for this action")
	ErrCompletionMissing = errors.New("completion report required for this action")
)

// TransitionRule is one row of the workflow table.
type TransitionRule struct {
	Action             Action            `json:"action"`
	From               ApplicationStatus `json:"from"`
	Actor              Actor             `json:"actor"`
	To                 ApplicationStatus `json:"to"`
	Reason             ReasonField       `json:"-"`
	RequiresCompletion bool              `json:"requires_completion"`
	Notify             bool              `json:"-"`
}

func (r TransitionRule) RequiresReason() bool {
	return r.Reason != ReasonNone
}

// TransitionRules is the strict two-tier workflow.
var TransitionRules = []TransitionRule{
	{Action: ActionSubmit, From: StatusDraft, Actor: ActorApplicant, To: StatusUnderReview, RequiresCompletion: true},
	{Action: ActionTier1Approve, From: StatusUnderReview, Actor: ActorReviewerTier1, To: StatusCompliant},
	{Action: ActionTier1RequestChanges, From: StatusUnderReview, Actor: ActorReviewerTier1, To: StatusMissingElements, Reason: ReasonMissingElements, Notify: true},
	{Action: ActionTier1Refuse, From: StatusUnderReview, Actor: ActorReviewerTier1, To: StatusRefused, Reason: ReasonRefusal},
	{Action: ActionResubmit, From: StatusMissingElements, Actor: ActorApplicant, To: StatusUnderReview, RequiresCompletion: true},
	{Action: ActionTier2Approve, From: StatusCompliant, Actor: ActorReviewerTier2, To: StatusApproved},
	{Action: ActionTier2Refuse, From: StatusCompliant, Actor: ActorReviewerTier2, To: StatusRefused, Reason: ReasonRefusal},
}

func RuleFor(action Action) (TransitionRule, error) {
	for _, r := range TransitionRules {
		if r.Action == action {
			return r, nil
		}
	}
	return TransitionRule{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

// ParseAction validates an action name against the workflow table.
func ParseAction(s string) (Action, error) {
	r, err := RuleFor(Action(strings.TrimSpace(s)))
	if err != nil {
		return "", err
	}
	return r.Action, nil
}

// AvailableActions lists what the actor may do on an application in status.
func AvailableActions(status ApplicationStatus, actor Actor) []Action {
	var out []Action
	for _, r := range TransitionRules {
		if r.From == status && r.Actor == actor {
			out = append(out, r.Action)
		}
	}
	return out
}

// ApplicantSubmitAction picks submit or resubmit for the current status.
func ApplicantSubmitAction(status ApplicationStatus) (Action, error) {
	switch status {
	case StatusDraft, "":
		return ActionSubmit, nil
	case StatusMissingElements:
		return ActionResubmit, nil
	}
	return "", fmt.Errorf("%w: cannot submit an application in status %q", ErrInvalidTransition, status)
}

// Authorize checks the actor before anything about the application is read.
func Authorize(action Action, actor Actor) (TransitionRule, error) {
	rule, err := RuleFor(action)
	if err != nil {
		return TransitionRule{}, err
	}
	if rule.Actor != actor {
		return TransitionRule{}, fmt.Errorf("%w: %s cannot %s", ErrUnauthorizedActor, actor, action)
	}
	return rule, nil
}

// TransitionInput carries the guard data for one transition.
type TransitionInput struct {
	Reason     string
	Completion *CompletionReport
	Now        time.Time
}

// ApplyTransition validates and applies one workflow step on a copy of app.
//
// Guards run in this order: action known, actor allowed, status matches,
// reason present, form complete. The input application is never modified, so
// a failed guard cannot leave a partial change behind.
func ApplyTransition(app Application, actor Actor, action Action, in TransitionInput) (Application, TransitionRule, error) {
	rule, err := Authorize(action, actor)
	if err != nil {
		return app, TransitionRule{}, err
	}
	if app.CurrentStatus() != rule.From {
		return app, rule, fmt.Errorf("%w: %s requires %q, application is %q", ErrInvalidTransition, action, rule.From, app.CurrentStatus())
	}

	reason := strings.TrimSpace(in.Reason)
	if rule.RequiresReason() && reason == "" {
		return app, rule, ErrReasonRequired
	}
	if rule.RequiresCompletion {
		if in.Completion == nil {
			return app, rule, ErrCompletionMissing
		}
		if !in.Completion.Complete() {
			return app, rule, NewValidationError(*in.Completion)
		}
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	next := app
	next.Status = rule.To
	next.UpdatedAt = now
	switch rule.Reason {
	case ReasonRefusal:
		next.RefusalReason = reason
	case ReasonMissingElements:
		next.MissingElementsReason = reason
	}
	if rule.To == StatusUnderReview {
		next.SubmittedAt = &now
		// The correction request has been answered.
		next.MissingElementsReason = ""
	}
	return next, rule, nil
}
