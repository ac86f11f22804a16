package entities

import (
	"errors"
	"fmt"
)

// ApplicationStatus is the lifecycle state of a grant application.
//
// Stored values are the labels displayed to applicants and reviewers, so the
// record store, the status page and the dashboards all read the same string.
type ApplicationStatus string

const (
	StatusDraft           ApplicationStatus = "Brouillon"
	StatusUnderReview     ApplicationStatus = "Etude du dossier en cours"
	StatusMissingElements ApplicationStatus = "Elements manquants"
	StatusCompliant       ApplicationStatus = "Dossier conforme"
	StatusApproved        ApplicationStatus = "Validé"
	StatusRefused         ApplicationStatus = "Refusé"
)

var ErrInvalidStatus = errors.New("invalid application status")

// AllStatuses lists the registry in workflow order.
var AllStatuses = []ApplicationStatus{
	StatusDraft,
	StatusUnderReview,
	StatusMissingElements,
	StatusCompliant,
	StatusApproved,
	StatusRefused,
}

var statusCodes = map[ApplicationStatus]string{
	StatusDraft:           "draft",
	StatusUnderReview:     "under_review",
	StatusMissingElements: "missing_elements",
	StatusCompliant:       "compliant",
	StatusApproved:        "approved",
	StatusRefused:         "refused",
}

// ParseApplicationStatus accepts either the stored label or the short code
// ("under_review") and rejects anything outside the registry.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	for status, code := range statusCodes {
		if s == string(status) || s == code {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func (s ApplicationStatus) Valid() bool {
	_, ok := statusCodes[s]
	return ok
}

// Code is the ASCII identifier used in query strings and metrics labels.
func (s ApplicationStatus) Code() string {
	return statusCodes[s]
}

func (s ApplicationStatus) String() string {
	return string(s)
}

// Editable reports whether the applicant may still change the form.
func (s ApplicationStatus) Editable() bool {
	return s == StatusDraft || s == StatusMissingElements
}

// Final reports a decision state. Refused is final for the reviewers but the
// record is never deleted.
func (s ApplicationStatus) Final() bool {
	return s == StatusApproved || s == StatusRefused
}
