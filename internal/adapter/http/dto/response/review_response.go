package response

import (
	"time"

	"grant_portal/internal/domain/entities"
	"grant_portal/internal/usecase"
)

// ApplicationSummary is one dashboard row.
type ApplicationSummary struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Nom       string         `json:"nom"`
	Email     string         `json:"email"`
	Status    StatusResponse `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}

type ReviewPageResponse struct {
	Items      []ApplicationSummary `json:"items"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalItems int                  `json:"total_items"`
	TotalPages int                  `json:"total_pages"`
	HasPrev    bool                 `json:"has_prev"`
	HasNext    bool                 `json:"has_next"`
}

func FromReviewPage(p entities.Page[entities.Application]) ReviewPageResponse {
	items := make([]ApplicationSummary, 0, len(p.Items))
	for _, a := range p.Items {
		items = append(items, ApplicationSummary{
			ID:        a.ID,
			UserID:    a.UserID,
			Nom:       a.Form.Nom,
			Email:     a.Form.Email,
			Status:    FromStatus(a.CurrentStatus()),
			CreatedAt: a.CreatedAt,
		})
	}
	return ReviewPageResponse{
		Items:      items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
		HasPrev:    p.HasPrev,
		HasNext:    p.HasNext,
	}
}

type ApplicationDetailResponse struct {
	Application      ApplicationResponse `json:"application"`
	Documents        []DocumentResponse  `json:"documents"`
	SignatureURL     string              `json:"signature_url,omitempty"`
	Completion       CompletionResponse  `json:"completion"`
	AvailableActions []string            `json:"available_actions"`
}

func FromApplicationDetail(d usecase.ApplicationDetail) ApplicationDetailResponse {
	docs := make([]DocumentResponse, 0, len(d.Documents))
	for _, l := range d.Documents {
		r := FromDocument(l.Document)
		r.URL = l.URL
		docs = append(docs, r)
	}
	actions := make([]string, 0, len(d.AvailableActions))
	for _, a := range d.AvailableActions {
		actions = append(actions, string(a))
	}
	return ApplicationDetailResponse{
		Application:      FromApplicationForReviewer(d.Application),
		Documents:        docs,
		SignatureURL:     d.SignatureURL,
		Completion:       FromCompletion(d.Completion),
		AvailableActions: actions,
	}
}

type TransitionResponse struct {
	Action   string         `json:"action"`
	From     StatusResponse `json:"from"`
	Actor    string         `json:"actor"`
	To       StatusResponse `json:"to"`
	Reason   string         `json:"reason,omitempty"`
	Notifies bool           `json:"notifies"`
}

type WorkflowResponse struct {
	Statuses      []StatusResponse       `json:"statuses"`
	Transitions   []TransitionResponse   `json:"transitions"`
	DocumentTypes []entities.DocumentType `json:"document_types"`
	Equipment     []string               `json:"equipment_options"`
}

// FromWorkflow exposes the transition table and checklists to the UI.
func FromWorkflow() WorkflowResponse {
	statuses := make([]StatusResponse, 0, len(entities.AllStatuses))
	for _, s := range entities.AllStatuses {
		statuses = append(statuses, FromStatus(s))
	}
	transitions := make([]TransitionResponse, 0, len(entities.TransitionRules))
	for _, r := range entities.TransitionRules {
		transitions = append(transitions, TransitionResponse{
			Action:   string(r.Action),
			From:     FromStatus(r.From),
			Actor:    string(r.Actor),
			To:       FromStatus(r.To),
			Reason:   reasonName(r.Reason),
			Notifies: r.Notify,
		})
	}
	return WorkflowResponse{
		Statuses:      statuses,
		Transitions:   transitions,
		DocumentTypes: entities.DocumentTypes,
		Equipment:     entities.EquipmentOptions,
	}
}

func reasonName(r entities.ReasonField) string {
	switch r {
	case entities.ReasonRefusal:
		return "refusal_reason"
	case entities.ReasonMissingElements:
		return "missing_elements_reason"
	default:
		return ""
	}
}
