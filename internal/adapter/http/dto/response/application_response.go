package response

import (
	"time"

	"grant_portal/internal/domain/entities"
	"grant_portal/internal/usecase"
)

type StatusResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

func FromStatus(s entities.ApplicationStatus) StatusResponse {
	return StatusResponse{Code: s.Code(), Label: s.String()}
}

type ApplicationResponse struct {
	ID                    string                   `json:"id"`
	UserID                string                   `json:"user_id"`
	Status                StatusResponse           `json:"status"`
	Form                  entities.ApplicationForm `json:"form"`
	RefusalReason         string                   `json:"refusal_reason,omitempty"`
	MissingElementsReason string                   `json:"missing_elements_reason,omitempty"`
	ReviewerComment       string                   `json:"reviewer_comment,omitempty"`
	HasSignature          bool                     `json:"has_signature"`
	Version               int64                    `json:"version"`
	CreatedAt             time.Time                `json:"created_at"`
	UpdatedAt             time.Time                `json:"updated_at"`
	SubmittedAt           *time.Time               `json:"submitted_at,omitempty"`
}

// FromApplication renders the record for its owner. The internal reviewer
// comment is left out; reviewers get it through FromApplicationForReviewer.
func FromApplication(a entities.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                    a.ID,
		UserID:                a.UserID,
		Status:                FromStatus(a.CurrentStatus()),
		Form:                  a.Form,
		RefusalReason:         a.RefusalReason,
		MissingElementsReason: a.MissingElementsReason,
		HasSignature:          a.HasSignature(),
		Version:               a.Version,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
		SubmittedAt:           a.SubmittedAt,
	}
}

func FromApplicationForReviewer(a entities.Application) ApplicationResponse {
	r := FromApplication(a)
	r.ReviewerComment = a.ReviewerComment
	return r
}

type CompletionResponse struct {
	CompletionPercent     int      `json:"completion_percent"`
	Complete              bool     `json:"complete"`
	MissingFields         []string `json:"missing_fields"`
	MissingDocuments      []string `json:"missing_documents"`
	MissingDocumentLabels []string `json:"missing_document_labels"`
	RequiredDocuments     []string `json:"required_documents"`
}

func FromCompletion(r entities.CompletionReport) CompletionResponse {
	return CompletionResponse{
		CompletionPercent:     r.CompletionPercent,
		Complete:              r.Complete(),
		MissingFields:         nonNil(r.MissingFieldLabels),
		MissingDocuments:      docKeys(r.MissingDocuments),
		MissingDocumentLabels: nonNil(r.MissingDocumentLabels),
		RequiredDocuments:     docKeys(r.RequiredDocuments),
	}
}

type DocumentResponse struct {
	ID          string    `json:"id"`
	DocKey      string    `json:"doc_key"`
	Label       string    `json:"label"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type,omitempty"`
	SizeBytes   int64     `json:"size_bytes"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromDocument(d entities.Document) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		DocKey:      string(d.DocKey),
		Label:       d.DocKey.Label(),
		FileName:    d.FileName,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		CreatedAt:   d.CreatedAt,
	}
}

type ApplicationViewResponse struct {
	Application ApplicationResponse `json:"application"`
	Reason      string              `json:"reason,omitempty"`
	Page        string              `json:"page"`
	Completion  CompletionResponse  `json:"completion"`
	Documents   []DocumentResponse  `json:"documents"`
}

func FromApplicationView(v usecase.ApplicationView) ApplicationViewResponse {
	docs := make([]DocumentResponse, 0, len(v.Documents))
	for _, d := range v.Documents {
		docs = append(docs, FromDocument(d))
	}
	return ApplicationViewResponse{
		Application: FromApplication(v.Application),
		Reason:      v.Reason,
		Page:        string(v.Page),
		Completion:  FromCompletion(v.Completion),
		Documents:   docs,
	}
}

type LandingResponse struct {
	Page   string          `json:"page"`
	Status *StatusResponse `json:"status,omitempty"`
}

func FromLanding(page entities.LandingPage, app entities.Application) LandingResponse {
	r := LandingResponse{Page: string(page)}
	if app.Exists() {
		s := FromStatus(app.CurrentStatus())
		r.Status = &s
	}
	return r
}

func docKeys(keys []entities.DocumentKey) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, string(k))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
