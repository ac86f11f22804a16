package request

import (
	"strings"

	"grant_portal/internal/domain/entities"
)

// ReviewListQuery is the dashboard query string.
type ReviewListQuery struct {
	Tab    string `form:"tab"`
	Status string `form:"status"`
	Search string `form:"search"`
	Page   int    `form:"page"`
}

// ToQuery resolves the tab (actor default when empty) and the status filter,
// which accepts either the stored label or its code.
func (q ReviewListQuery) ToQuery(actor entities.Actor) (entities.ReviewQuery, error) {
	tab := entities.DefaultTab(actor)
	if v := strings.TrimSpace(q.Tab); v != "" {
		parsed, err := entities.ParseReviewTab(v)
		if err != nil {
			return entities.ReviewQuery{}, err
		}
		tab = parsed
	}

	var status entities.ApplicationStatus
	if v := strings.TrimSpace(q.Status); v != "" {
		parsed, err := entities.ParseApplicationStatus(v)
		if err != nil {
			return entities.ReviewQuery{}, err
		}
		status = parsed
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	return entities.NewReviewQuery(tab).
		WithStatusFilter(status).
		WithSearch(strings.TrimSpace(q.Search)).
		WithPage(page), nil
}

type TransitionRequest struct {
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}

type CommentRequest struct {
	Comment string `json:"comment"`
}
