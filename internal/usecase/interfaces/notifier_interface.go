package interfaces

import (
	"context"
	"grant_portal/internal/domain/entities"
)

// INotifier is the outbound side-channel used when reviewers ask the applicant
// for missing elements. Callers log failures and carry on.
type INotifier interface {
	NotifyMissingElements(ctx context.Context, app entities.Application, reason string) error
}
