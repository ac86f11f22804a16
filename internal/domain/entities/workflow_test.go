package entities

import (
	"errors"
	"testing"
	"time"
)

func completeReport() *CompletionReport {
	r := EvaluateCompletion(completeInput())
	return &r
}

func TestApplyTransition_Table(t *testing.T) {
	now := time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		from   ApplicationStatus
		actor  Actor
		action Action
		in     TransitionInput
		to     ApplicationStatus
	}{
		{name: "submit", from: StatusDraft, actor: ActorApplicant, action: ActionSubmit, in: TransitionInput{Completion: completeReport()}, to: StatusUnderReview},
		{name: "tier1 approve", from: StatusUnderReview, actor: ActorReviewerTier1, action: ActionTier1Approve, to: StatusCompliant},
		{name: "tier1 request changes", from: StatusUnderReview, actor: ActorReviewerTier1, action: ActionTier1RequestChanges, in: TransitionInput{Reason: "Pièce RIB illisible"}, to: StatusMissingElements},
		{name: "tier1 refuse", from: StatusUnderReview, actor: ActorReviewerTier1, action: ActionTier1Refuse, in: TransitionInput{Reason: "Forage existant"}, to: StatusRefused},
		{name: "resubmit", from: StatusMissingElements, actor: ActorApplicant, action: ActionResubmit, in: TransitionInput{Completion: completeReport()}, to: StatusUnderReview},
		{name: "tier2 approve", from: StatusCompliant, actor: ActorReviewerTier2, action: ActionTier2Approve, to: StatusApproved},
		{name: "tier2 refuse", from: StatusCompliant, actor: ActorReviewerTier2, action: ActionTier2Refuse, in: TransitionInput{Reason: "Budget épuisé"}, to: StatusRefused},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := Application{ID: "app-1", UserID: "user-1", Status: tc.from}
			tc.in.Now = now
			next, rule, err := ApplyTransition(app, tc.actor, tc.action, tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if next.Status != tc.to || rule.To != tc.to {
				t.Fatalf("expected %q, got %q", tc.to, next.Status)
			}
			if app.Status != tc.from {
				t.Fatalf("input application must not be mutated")
			}
			if !next.UpdatedAt.Equal(now) {
				t.Fatalf("expected updated_at to be set")
			}
		})
	}
}

func TestApplyTransition_RequestChangesStoresReason(t *testing.T) {
	app := Application{ID: "app-1", Status: StatusUnderReview}
	next, rule, err := ApplyTransition(app, ActorReviewerTier1, ActionTier1RequestChanges, TransitionInput{Reason: "  Pièce RIB illisible "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Status != StatusMissingElements || next.MissingElementsReason != "Pièce RIB illisible" {
		t.Fatalf("unexpected result: %+v", next)
	}
	if next.RefusalReason != "" {
		t.Fatalf("refusal reason must stay empty")
	}
	if !rule.Notify {
		t.Fatalf("request changes must trigger a notification")
	}
}

func TestApplyTransition_ResubmitClearsMissingReason(t *testing.T) {
	app := Application{ID: "app-1", Status: StatusMissingElements, MissingElementsReason: "RIB illisible"}
	next, _, err := ApplyTransition(app, ActorApplicant, ActionResubmit, TransitionInput{Completion: completeReport()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Status != StatusUnderReview || next.MissingElementsReason != "" || next.SubmittedAt == nil {
		t.Fatalf("unexpected result: %+v", next)
	}
}

func TestApplyTransition_Tier2ApproveNeedsNoReason(t *testing.T) {
	app := Application{ID: "app-1", Status: StatusCompliant}
	next, _, err := ApplyTransition(app, ActorReviewerTier2, ActionTier2Approve, TransitionInput{Reason: "ignored"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Status != StatusApproved || next.RefusalReason != "" || next.MissingElementsReason != "" {
		t.Fatalf("unexpected result: %+v", next)
	}
}

func TestApplyTransition_AuthorizationBeforeData(t *testing.T) {
	for _, rule := range TransitionRules {
		for _, actor := range []Actor{ActorApplicant, ActorReviewerTier1, ActorReviewerTier2} {
			if actor == rule.Actor {
				continue
			}
			// Wrong status too: the authorization error must win.
			app := Application{ID: "app-1", Status: StatusApproved, RefusalReason: ""}
			next, _, err := ApplyTransition(app, actor, rule.Action, TransitionInput{Reason: "x", Completion: completeReport()})
			if !errors.Is(err, ErrUnauthorizedActor) {
				t.Fatalf("%s by %s: expected ErrUnauthorizedActor, got %v", rule.Action, actor, err)
			}
			if next.Status != app.Status || next.RefusalReason != "" || next.MissingElementsReason != "" {
				t.Fatalf("%s by %s: data changed on rejected transition", rule.Action, actor)
			}
		}
	}
}

func TestApplyTransition_GuardFailures(t *testing.T) {
	t.Run("unknown action", func(t *testing.T) {
		_, _, err := ApplyTransition(Application{Status: StatusUnderReview}, ActorReviewerTier1, Action("tier1-archive"), TransitionInput{})
		if !errors.Is(err, ErrUnknownAction) {
			t.Fatalf("expected ErrUnknownAction, got %v", err)
		}
	})

	t.Run("wrong status", func(t *testing.T) {
		_, _, err := ApplyTransition(Application{Status: StatusCompliant}, ActorReviewerTier1, ActionTier1Approve, TransitionInput{})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("tier2 cannot request changes", func(t *testing.T) {
		_, _, err := ApplyTransition(Application{Status: StatusCompliant}, ActorReviewerTier2, ActionTier1RequestChanges, TransitionInput{Reason: "x"})
		if !errors.Is(err, ErrUnauthorizedActor) {
			t.Fatalf("expected ErrUnauthorizedActor, got %v", err)
		}
	})

	for _, action := range []Action{ActionTier1RequestChanges, ActionTier1Refuse} {
		t.Run(string(action)+" without reason", func(t *testing.T) {
			app := Application{Status: StatusUnderReview}
			next, _, err := ApplyTransition(app, ActorReviewerTier1, action, TransitionInput{Reason: "   "})
			if !errors.Is(err, ErrReasonRequired) {
				t.Fatalf("expected ErrReasonRequired, got %v", err)
			}
			if next.Status != StatusUnderReview {
				t.Fatalf("status changed without reason")
			}
		})
	}

	t.Run("submit incomplete", func(t *testing.T) {
		in := completeInput()
		in.Form.Nom = ""
		r := EvaluateCompletion(in)
		next, _, err := ApplyTransition(Application{Status: StatusDraft}, ActorApplicant, ActionSubmit, TransitionInput{Completion: &r})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if vErr.MissingFieldLabels[0] != "Nom / raison sociale" {
			t.Fatalf("unexpected labels %v", vErr.MissingFieldLabels)
		}
		if next.Status != StatusDraft {
			t.Fatalf("status must remain draft")
		}
	})

	t.Run("submit without report", func(t *testing.T) {
		_, _, err := ApplyTransition(Application{}, ActorApplicant, ActionSubmit, TransitionInput{})
		if !errors.Is(err, ErrCompletionMissing) {
			t.Fatalf("expected ErrCompletionMissing, got %v", err)
		}
	})

	t.Run("submit twice", func(t *testing.T) {
		_, _, err := ApplyTransition(Application{Status: StatusUnderReview}, ActorApplicant, ActionSubmit, TransitionInput{Completion: completeReport()})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestAvailableActions(t *testing.T) {
	got := AvailableActions(StatusUnderReview, ActorReviewerTier1)
	if len(got) != 3 {
		t.Fatalf("expected 3 tier1 actions, got %v", got)
	}
	if got := AvailableActions(StatusUnderReview, ActorReviewerTier2); len(got) != 0 {
		t.Fatalf("tier2 has nothing to do on under review, got %v", got)
	}
	if got := AvailableActions(StatusCompliant, ActorReviewerTier2); len(got) != 2 {
		t.Fatalf("expected 2 tier2 actions, got %v", got)
	}
	for _, s := range []ApplicationStatus{StatusApproved, StatusRefused} {
		for _, a := range []Actor{ActorApplicant, ActorReviewerTier1, ActorReviewerTier2} {
			if got := AvailableActions(s, a); len(got) != 0 {
				t.Fatalf("%q should be final for %s, got %v", s, a, got)
			}
		}
	}
}

func TestApplicantSubmitAction(t *testing.T) {
	if a, _ := ApplicantSubmitAction(StatusDraft); a != ActionSubmit {
		t.Fatalf("expected submit, got %q", a)
	}
	if a, _ := ApplicantSubmitAction(""); a != ActionSubmit {
		t.Fatalf("expected submit for absent status, got %q", a)
	}
	if a, _ := ApplicantSubmitAction(StatusMissingElements); a != ActionResubmit {
		t.Fatalf("expected resubmit, got %q", a)
	}
	if _, err := ApplicantSubmitAction(StatusCompliant); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestParseActorAndAction(t *testing.T) {
	if a, err := ParseActor(" Reviewer_Tier1 "); err != nil || a != ActorReviewerTier1 {
		t.Fatalf("unexpected %q %v", a, err)
	}
	if _, err := ParseActor("admin"); !errors.Is(err, ErrInvalidActor) {
		t.Fatalf("expected ErrInvalidActor, got %v", err)
	}
	if a, err := ParseAction("tier2-refuse"); err != nil || a != ActionTier2Refuse {
		t.Fatalf("unexpected %q %v", a, err)
	}
	if _, err := ParseAction("Dossier à modifier"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestPendingTransition(t *testing.T) {
	app := Application{ID: "app-1", Status: StatusUnderReview}

	p, err := BeginTransition(ActionTier1Refuse)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.NeedsReason || p.Target != StatusRefused {
		t.Fatalf("unexpected pending: %+v", p)
	}

	if _, _, err := p.Confirm(app, ActorReviewerTier1, time.Now()); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}

	cancelled := p.WithReason("draft").Cancel()
	if cancelled.Active() {
		t.Fatalf("cancelled transition must be inactive")
	}
	if _, _, err := cancelled.Confirm(app, ActorReviewerTier1, time.Now()); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction on cancelled, got %v", err)
	}

	next, _, err := p.WithReason("Hors zone éligible").Confirm(app, ActorReviewerTier1, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Status != StatusRefused || next.RefusalReason != "Hors zone éligible" {
		t.Fatalf("unexpected result: %+v", next)
	}

	approve, _ := BeginTransition(ActionTier1Approve)
	if approve.NeedsReason {
		t.Fatalf("approve needs no reason")
	}
}
