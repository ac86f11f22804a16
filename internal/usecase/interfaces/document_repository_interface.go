package interfaces

import (
	"context"
	"grant_portal/internal/domain/entities"
)

// IDocumentRepository abstracts DynamoDB persistence for uploaded documents.

type IDocumentRepository interface {
	Create(ctx context.Context, d entities.Document) (entities.Document, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Document, error)
}
