package interfaces

import (
	"context"
	"grant_portal/internal/domain/entities"
)

// IApplicationRepository abstracts DynamoDB persistence for Application.
//
// Like the other repositories, lookups and conditional writes return a zero
// Application (empty ID) and a nil error when nothing matched:
//   - SaveDraft / SetSignature: the application is no longer editable
//   - UpdateWorkflow: the stored version is not the expected one

type IApplicationRepository interface {
	GetByUserID(ctx context.Context, userID string) (entities.Application, error)
	GetByID(ctx context.Context, id string) (entities.Application, error)
	SaveDraft(ctx context.Context, app entities.Application) (entities.Application, error)
	SetSignature(ctx context.Context, userID string, signaturePath string) (entities.Application, error)
	UpdateWorkflow(ctx context.Context, next entities.Application, expectedVersion int64) (entities.Application, error)
	UpdateComment(ctx context.Context, userID string, comment string) (entities.Application, error)
	ListByStatuses(ctx context.Context, statuses []entities.ApplicationStatus) ([]entities.Application, error)
	ListAll(ctx context.Context) ([]entities.Application, error)
}
