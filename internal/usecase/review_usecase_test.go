package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"grant_portal/internal/domain/entities"
	"grant_portal/internal/usecase/interfaces"
	mock_interfaces "grant_portal/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type reviewDeps struct {
	repo     *mock_interfaces.MockIApplicationRepository
	docs     *mock_interfaces.MockIDocumentRepository
	storage  *mock_interfaces.MockIBlobStorage
	notifier *mock_interfaces.MockINotifier
	lock     *mock_interfaces.MockIActionLock
}

func newReviewUseCase(t *testing.T) (*ReviewUseCase, reviewDeps) {
	ctrl := gomock.NewController(t)
	d := reviewDeps{
		repo:     mock_interfaces.NewMockIApplicationRepository(ctrl),
		docs:     mock_interfaces.NewMockIDocumentRepository(ctrl),
		storage:  mock_interfaces.NewMockIBlobStorage(ctrl),
		notifier: mock_interfaces.NewMockINotifier(ctrl),
		lock:     mock_interfaces.NewMockIActionLock(ctrl),
	}
	uc := NewReviewUseCase(d.repo, d.docs, d.storage, d.notifier, d.lock, nil)
	uc.now = func() time.Time { return time.Date(2025, 5, 21, 14, 0, 0, 0, time.UTC) }
	return uc, d
}

func underReview(n int) []entities.Application {
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	out := make([]entities.Application, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, entities.Application{
			ID:        fmt.Sprintf("app-%02d", i),
			UserID:    fmt.Sprintf("user-%02d", i),
			Status:    entities.StatusUnderReview,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return out
}

func TestReviewUseCase_List(t *testing.T) {
	t.Run("applicant rejected", func(t *testing.T) {
		uc, _ := newReviewUseCase(t)
		_, err := uc.List(context.Background(), entities.ActorApplicant, entities.NewReviewQuery(entities.TabAll))
		if !errors.Is(err, ErrReviewerRequired) {
			t.Fatalf("expected ErrReviewerRequired, got %v", err)
		}
	})

	t.Run("third page of 23", func(t *testing.T) {
		uc, d := newReviewUseCase(t)
		d.repo.EXPECT().ListByStatuses(gomock.Any(), []entities.ApplicationStatus{entities.StatusUnderReview}).Return(underReview(23), nil)

		page, err := uc.List(context.Background(), entities.ActorReviewerTier1, entities.NewReviewQuery(entities.TabInReview).WithPage(3))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Items) != 3 || page.Items[0].ID != "app-20" || page.TotalPages != 3 || page.HasNext {
			t.Fatalf("unexpected page %+v", page)
		}
	})

	t.Run("default tab for tier2", func(t *testing.T) {
		uc, d := newReviewUseCase(t)
		d.repo.EXPECT().ListByStatuses(gomock.Any(), []entities.ApplicationStatus{entities.StatusCompliant}).Return(nil, nil)

		page, err := uc.List(context.Background(), entities.ActorReviewerTier2, entities.ReviewQuery{Page: 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Items == nil || len(page.Items) != 0 || page.TotalPages != 1 {
			t.Fatalf("unexpected empty page %+v", page)
		}
	})

	t.Run("all tab scans", func(t *testing.T) {
		uc, d := newReviewUseCase(t)
		d.repo.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("db"))

		_, err := uc.List(context.Background(), entities.ActorReviewerTier1, entities.NewReviewQuery(entities.TabAll))
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestReviewUseCase_FetchDetail(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		uc, d := newReviewUseCase(t)
		d.repo.EXPECT().GetByID(gomock.Any(), "app-1").Return(entities.Application{}, nil)

		_, err := uc.FetchDetail(context.Background(), entities.ActorReviewerTier1, "app-1")
		if !errors.Is(err, ErrApplicationNotFound) {
			t.Fatalf("expected ErrApplicationNotFound, got %v", err)
		}
	})

	t.Run("documents signature and actions", func(t *testing.T) {
		uc, d := newReviewUseCase(t)
		app := entities.Application{ID: "app-1", UserID: "user-1", Status: entities.StatusUnderReview, SignaturePath: "user-1/sig.png"}
		d.repo.EXPECT().GetByID(gomock.Any(), "app-1").Return(app, nil)
		d.docs.EXPECT().ListByUserID(gomock.Any(), "user-1").Return([]entities.Document{
			{ID: "d1", DocKey: entities.DocRIB, FilePath: "user-1/rib/d1-rib.pdf"},
		}, nil)
		d.storage.EXPECT().PublicURL(gomock.Any(), interfaces.BucketDocuments, "user-1/rib/d1-rib.pdf").Return("http://minio/documents/rib", nil)
		d.storage.EXPECT().PublicURL(gomock.Any(), interfaces.BucketSignatures, "user-1/sig.png").Return("http://minio/signatures/sig", nil)

		detail, err := uc.FetchDetail(context.Background(), entities.ActorReviewerTier1, "app-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(detail.Documents) != 1 || detail.Documents[0].Label != "RIB professionnel" || detail.Documents[0].URL == "" {
			t.Fatalf("unexpected documents %+v", detail.Documents)
		}
		if detail.SignatureURL != "http://minio/signatures/sig" {
			t.Fatalf("unexpected signature url %q", detail.SignatureURL)
		}
		if len(detail.AvailableActions) != 3 {
			t.Fatalf("expected tier1 actions, got %v", detail.AvailableActions)
		}
	})
}

func TestReviewUseCase_ApplyTransition(t *testing.T) {
	t.Run("unauthorized before any read", func(t *testing.T) {
		uc, _ := newReviewUseCase(t)
		_, err := uc.ApplyTransition(context.Background(), entities.ActorReviewerTier2, "app-1", entities.ActionTier1Approve, "")
		if !errors.Is(err, entities.ErrUnauthorizedActor) {
			t.Fatalf("expected ErrUnauthorizedActor, got %v", err)
		}
	})

	t.Run("unknown action", func(t *testing.T) {
		uc, _ := newReviewUseCase(t)
		_, err := uc.ApplyTransition(context.Background(), entities.ActorReviewerTier1, "app-1", "tier1-archive", "")
		if !errors.Is(err, entities.ErrUnknownAction) {
			t.Fatalf("expected ErrUnknownAction, got %v", err)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		uc, _ := newReviewUseCase(t)
		_, err := uc.ApplyTransition(context.Background(), entities.ActorReviewerTier1, " ", entities.ActionTier1Approve, "")
		if !errors.Is(err, ErrInvalidApplicationID) {
			t.Fatalf("expected ErrInvalidApplicationID, got %v", err)
		}
	})

	t.Run("request changes notifies applicant", func(t *testing.T) {
		uc, d := newReviewUseCase(t)
		app := entities.Application{ID: "app-1", UserID: "user-1", Status: entities.StatusUnderReview, Version: 7}
		d.lock.EXPECT().Acquire(gomock.Any(), "transition:app-1").Return(noopRelease(), nil)
		d.repo.EXPECT().GetByID(gomock.Any(), "app-1").Return(app, nil)
		d.repo.EXPECT().UpdateWorkflow(gomock.Any(), gomock.Any(), int64(7)).DoAndReturn(
			func(_ context.Context, next entities.Application, _ int64) (entities.Application, error) {
				if next.Status != entities.StatusMissingElements || next.MissingElementsReason != "Pièce RIB illisible" {
					t.Fatalf("unexpected next %+v", next)
				}
				next.Version = 8
				return next, nil
			},
		)
		d.notifier.EXPECT().NotifyMissingElements(gomock.Any(), gomock.Any(), "Pièce RIB illisible").Return(nil)

		res, err := uc.ApplyTransition(context.Background(), entities.ActorReviewerTier1, "app-1", entities.ActionTier1RequestChanges, "Pièce RIB illisible")
		uc.Wait()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.StatusMissingElements || res.Version != 8 {
			t.Fatalf("unexpected result %+v", res)
		}
	})

	t.Run("notification failure keeps the decision", func(t *testing.T) {
		uc, d := newReviewUseCase(t)
		app := entities.Application{ID: "app-1", UserID: "user-1", Status: entities.StatusUnderReview}
		d.lock.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(noopRelease(), nil)
		d.repo.EXPECT().GetByID(gomock.Any(), "app-1").Return(app, nil)
		d.repo.EXPECT().UpdateWorkflow(gomock.Any(), gomock.Any(), int64(0)).DoAndReturn(
			func(_ context.Context, next entities.Application, _ int64) (entities.Application, error) { return next, nil },
		)
		d.notifier.EXPECT().NotifyMissingElements(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("ses throttled"))

		res, err := uc.ApplyTransition(context.Background(), entities.ActorReviewerTier1, "app-1", entities.ActionTier1RequestChanges, "RIB")
		uc.Wait()
		if err != nil {
			t.Fatalf("notification failure must not fail the transition: %v", err)
		}
		if res.Status != entities.StatusMissingElements {
			t.Fatalf("unexpected status %q", res.Status)
		}
	})

	t.Run("slow notification does not hold the response or the lock", func(t *testing.T) {
		uc, d := newReviewUseCase(t)
		uc.notifyTimeout = 200 * time.Millisecond
		app := entities.Application{ID: "app-1", UserID: "user-1", Status: entities.StatusUnderReview}

		released := make(chan struct{})
		d.lock.EXPECT().Acquire(gomock.Any(), "transition:app-1").Return(interfaces.ReleaseFunc(func(context.Context) error {
			close(released)
			return nil
		}), nil)
		d.repo.EXPECT().GetByID(gomock.Any(), "app-1").Return(app, nil)
		d.repo.EXPECT().UpdateWorkflow(gomock.Any(), gomock.Any(), int64(0)).DoAndReturn(
			func(_ context.Context, next entities.Application, _ int64) (entities.Application, error) { return next, nil },
		)

		notified := make(chan error, 1)
		d.notifier.EXPECT().NotifyMissingElements(gomock.Any(), gomock.Any(), "RIB illisible").DoAndReturn(
			func(ctx context.Context, _ entities.Application, _ string) error {
				select {
				case <-released:
				default:
					t.Errorf("notification started while the transition lock was still held")
				}
				if _, ok := ctx.Deadline(); !ok {
					t.Errorf("notification context must carry a deadline")
				}
				<-ctx.Done()
				notified <- ctx.Err()
				return ctx.Err()
			},
		)

		reqCtx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		start := time.Now()
		res, err := uc.ApplyTransition(reqCtx, entities.ActorReviewerTier1, "app-1", entities.ActionTier1RequestChanges, "RIB illisible")
		elapsed := time.Since(start)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.StatusMissingElements {
			t.Fatalf("unexpected status %q", res.Status)
		}
		if elapsed > 100*time.Millisecond {
			t.Fatalf("transition waited on the notification: %s", elapsed)
		}

		uc.Wait()
		if err := <-notified; !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected the notification to be cut by its own timeout, got %v", err)
		}
	})

	t.Run("tier2 refuse stores reason without notification", func(t *testing.T) {
		uc, d := newReviewUseCase(t)
		app := entities.Application{ID: "app-1", UserID: "user-1", Status: entities.StatusCompliant, Version: 3}
		d.lock.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(noopRelease(), nil)
		d.repo.EXPECT().GetByID(gomock.Any(), "app-1").Return(app, nil)
		d.repo.EXPECT().UpdateWorkflow(gomock.Any(), gomock.Any(), int64(3)).DoAndReturn(
			func(_ context.Context, next entities.Application, _ int64) (entities.Application, error) { return next, nil },
		)

		res, err := uc.ApplyTransition(context.Background(), entities.ActorReviewerTier2, "app-1", entities.ActionTier2Refuse, "Budget épuisé")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.StatusRefused || res.RefusalReason != "Budget épuisé" {
			t.Fatalf("unexpected result %+v", res)
		}
	})

	t.Run("refuse without reason", func(t *testing.T) {
		uc, d := newReviewUseCase(t)
		d.lock.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(noopRelease(), nil)
		d.repo.EXPECT().GetByID(gomock.Any(), "app-1").Return(entities.Application{ID: "app-1", Status: entities.StatusUnderReview}, nil)

		_, err := uc.ApplyTransition(context.Background(), entities.ActorReviewerTier1, "app-1", entities.ActionTier1Refuse, "  ")
		if !errors.Is(err, entities.ErrReasonRequired) {
			t.Fatalf("expected ErrReasonRequired, got %v", err)
		}
	})

	t.Run("wrong status", func(t *testing.T) {
		uc, d := newReviewUseCase(t)
		d.lock.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(noopRelease(), nil)
		d.repo.EXPECT().GetByID(gomock.Any(), "app-1").Return(entities.Application{ID: "app-1", Status: entities.StatusApproved}, nil)

		_, err := uc.ApplyTransition(context.Background(), entities.ActorReviewerTier2, "app-1", entities.ActionTier2Refuse, "x")
		if !errors.Is(err, entities.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("concurrent decision", func(t *testing.T) {
		uc, d := newReviewUseCase(t)
		d.lock.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(noopRelease(), nil)
		d.repo.EXPECT().GetByID(gomock.Any(), "app-1").Return(entities.Application{ID: "app-1", Status: entities.StatusUnderReview, Version: 2}, nil)
		d.repo.EXPECT().UpdateWorkflow(gomock.Any(), gomock.Any(), int64(2)).Return(entities.Application{}, nil)

		_, err := uc.ApplyTransition(context.Background(), entities.ActorReviewerTier1, "app-1", entities.ActionTier1Approve, "")
		if !errors.Is(err, ErrConcurrentModification) {
			t.Fatalf("expected ErrConcurrentModification, got %v", err)
		}
	})

	t.Run("lock held", func(t *testing.T) {
		uc, d := newReviewUseCase(t)
		d.lock.EXPECT().Acquire(gomock.Any(), "transition:app-1").Return(nil, interfaces.ErrActionInProgress)

		_, err := uc.ApplyTransition(context.Background(), entities.ActorReviewerTier1, "app-1", entities.ActionTier1Approve, "")
		if !errors.Is(err, interfaces.ErrActionInProgress) {
			t.Fatalf("expected ErrActionInProgress, got %v", err)
		}
	})
}

func TestReviewUseCase_Comment(t *testing.T) {
	t.Run("applicant rejected", func(t *testing.T) {
		uc, _ := newReviewUseCase(t)
		if _, err := uc.Comment(context.Background(), entities.ActorApplicant, "app-1", "x"); !errors.Is(err, ErrReviewerRequired) {
			t.Fatalf("expected ErrReviewerRequired, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		uc, d := newReviewUseCase(t)
		d.repo.EXPECT().GetByID(gomock.Any(), "app-1").Return(entities.Application{ID: "app-1", UserID: "user-1"}, nil)
		d.repo.EXPECT().UpdateComment(gomock.Any(), "user-1", "Appeler le demandeur").Return(entities.Application{ID: "app-1", ReviewerComment: "Appeler le demandeur"}, nil)

		res, err := uc.Comment(context.Background(), entities.ActorReviewerTier2, "app-1", " Appeler le demandeur ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ReviewerComment != "Appeler le demandeur" {
			t.Fatalf("unexpected comment %q", res.ReviewerComment)
		}
	})
}
