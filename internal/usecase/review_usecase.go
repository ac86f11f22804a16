package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"grant_portal/internal/domain/entities"
	"grant_portal/internal/infrastructure/logger"
	"grant_portal/internal/infrastructure/metrics"
	"grant_portal/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// DefaultNotifyTimeout bounds one missing-elements notification.
const DefaultNotifyTimeout = 30 * time.Second

var (
	ErrInvalidApplicationID = errors.New("invalid application id")
	ErrReviewerRequired     = errors.New("reviewer role required")
)

// DocumentLink is an uploaded document with a URL the reviewer can open.
type DocumentLink struct {
	entities.Document
	Label string `json:"label"`
	URL   string `json:"url"`
}

// ApplicationDetail is the reviewer view of one application.
type ApplicationDetail struct {
	Application      entities.Application
	Documents        []DocumentLink
	SignatureURL     string
	Completion       entities.CompletionReport
	AvailableActions []entities.Action
}

// IReviewUseCase exposes the reviewer dashboards:
//   - list with tab / status filter / search / page => List()
//   - detail panel => FetchDetail()
//   - action buttons => ApplyTransition()
//   - internal note => Comment()

type IReviewUseCase interface {
	List(ctx context.Context, actor entities.Actor, q entities.ReviewQuery) (entities.Page[entities.Application], error)
	FetchDetail(ctx context.Context, actor entities.Actor, applicationID string) (ApplicationDetail, error)
	ApplyTransition(ctx context.Context, actor entities.Actor, applicationID string, action entities.Action, reason string) (entities.Application, error)
	Comment(ctx context.Context, actor entities.Actor, applicationID string, comment string) (entities.Application, error)
}

type ReviewUseCase struct {
	repo     interfaces.IApplicationRepository
	docs     interfaces.IDocumentRepository
	storage  interfaces.IBlobStorage
	notifier interfaces.INotifier
	lock     interfaces.IActionLock
	log      *zap.Logger
	now      func() time.Time

	notifyTimeout time.Duration
	notifying     sync.WaitGroup
}

var _ IReviewUseCase = (*ReviewUseCase)(nil)

func NewReviewUseCase(
	repo interfaces.IApplicationRepository,
	docs interfaces.IDocumentRepository,
	storage interfaces.IBlobStorage,
	notifier interfaces.INotifier,
	lock interfaces.IActionLock,
	log *zap.Logger,
) *ReviewUseCase {
	return &ReviewUseCase{
		repo:     repo,
		docs:     docs,
		storage:  storage,
		notifier: notifier,
		lock:     lock,
		log:      logger.OrNop(log).Named("review"),
		now:      func() time.Time { return time.Now().UTC() },

		notifyTimeout: DefaultNotifyTimeout,
	}
}

// Wait blocks until notifications already dispatched have finished.
func (u *ReviewUseCase) Wait() {
	u.notifying.Wait()
}

func (u *ReviewUseCase) List(ctx context.Context, actor entities.Actor, q entities.ReviewQuery) (entities.Page[entities.Application], error) {
	if !actor.IsReviewer() {
		return entities.Page[entities.Application]{}, ErrReviewerRequired
	}
	if q.Tab == "" {
		q.Tab = entities.DefaultTab(actor)
	}

	var (
		apps []entities.Application
		err  error
	)
	if q.Tab == entities.TabAll {
		apps, err = u.repo.ListAll(ctx)
	} else {
		apps, err = u.repo.ListByStatuses(ctx, q.Tab.Statuses())
	}
	if err != nil {
		return entities.Page[entities.Application]{}, err
	}

	page := entities.Paginate(q.Filter(apps), q.Page, entities.ReviewPageSize)
	if page.Items == nil {
		page.Items = []entities.Application{}
	}
	return page, nil
}

func (u *ReviewUseCase) FetchDetail(ctx context.Context, actor entities.Actor, applicationID string) (ApplicationDetail, error) {
	if !actor.IsReviewer() {
		return ApplicationDetail{}, ErrReviewerRequired
	}
	app, err := u.load(ctx, applicationID)
	if err != nil {
		return ApplicationDetail{}, err
	}

	docs, err := u.docs.ListByUserID(ctx, app.UserID)
	if err != nil {
		return ApplicationDetail{}, err
	}
	links := make([]DocumentLink, 0, len(docs))
	for _, d := range docs {
		url, err := u.storage.PublicURL(ctx, interfaces.BucketDocuments, d.FilePath)
		if err != nil {
			u.log.Warn("document url failed", zap.String("document_id", d.ID), zap.Error(err))
		}
		links = append(links, DocumentLink{Document: d, Label: d.DocKey.Label(), URL: url})
	}

	detail := ApplicationDetail{
		Application:      app,
		Documents:        links,
		Completion:       completionOf(app, docs),
		AvailableActions: entities.AvailableActions(app.CurrentStatus(), actor),
	}
	if app.HasSignature() {
		if detail.SignatureURL, err = u.storage.PublicURL(ctx, interfaces.BucketSignatures, app.SignaturePath); err != nil {
			u.log.Warn("signature url failed", zap.String("application_id", app.ID), zap.Error(err))
		}
	}
	return detail, nil
}

// ApplyTransition checks the actor before loading anything, then applies the
// step under the application's version. The applicant notification is sent
// after the lock is released and never undoes a stored decision.
func (u *ReviewUseCase) ApplyTransition(ctx context.Context, actor entities.Actor, applicationID string, action entities.Action, reason string) (entities.Application, error) {
	applicationID = strings.TrimSpace(applicationID)
	if applicationID == "" {
		return entities.Application{}, ErrInvalidApplicationID
	}
	if _, err := entities.Authorize(action, actor); err != nil {
		metrics.Transitions.WithLabelValues(string(action), metrics.OutcomeRejected).Inc()
		return entities.Application{}, err
	}

	release, err := u.lock.Acquire(ctx, "transition:"+applicationID)
	if err != nil {
		return entities.Application{}, err
	}
	ctx = context.WithoutCancel(ctx)
	updated, rule, err := u.transition(ctx, actor, applicationID, action, reason)
	if err := release(ctx); err != nil {
		u.log.Warn("action lock release failed", zap.Error(err))
	}
	if err != nil {
		return entities.Application{}, err
	}

	if rule.Notify && u.notifier != nil {
		u.notifyMissingElements(updated)
	}
	return updated, nil
}

func (u *ReviewUseCase) transition(ctx context.Context, actor entities.Actor, applicationID string, action entities.Action, reason string) (entities.Application, entities.TransitionRule, error) {
	app, err := u.load(ctx, applicationID)
	if err != nil {
		return entities.Application{}, entities.TransitionRule{}, err
	}

	next, rule, err := entities.ApplyTransition(app, actor, action, entities.TransitionInput{Reason: reason, Now: u.now()})
	if err != nil {
		metrics.Transitions.WithLabelValues(string(action), metrics.OutcomeRejected).Inc()
		u.log.Info("transition rejected",
			zap.String("application_id", app.ID),
			zap.String("action", string(action)),
			zap.String("actor", string(actor)),
			zap.Error(err),
		)
		return entities.Application{}, entities.TransitionRule{}, err
	}

	updated, err := u.repo.UpdateWorkflow(ctx, next, app.Version)
	if err != nil {
		metrics.Transitions.WithLabelValues(string(action), metrics.OutcomeError).Inc()
		u.log.Error("transition write failed", zap.String("application_id", app.ID), zap.Error(err))
		return entities.Application{}, entities.TransitionRule{}, err
	}
	if !updated.Exists() {
		metrics.Transitions.WithLabelValues(string(action), metrics.OutcomeRejected).Inc()
		return entities.Application{}, entities.TransitionRule{}, ErrConcurrentModification
	}
	metrics.Transitions.WithLabelValues(string(action), metrics.OutcomeSuccess).Inc()
	u.log.Info("transition applied",
		zap.String("application_id", updated.ID),
		zap.String("action", string(action)),
		zap.String("from", app.CurrentStatus().Code()),
		zap.String("to", updated.Status.Code()),
	)
	return updated, rule, nil
}

// notifyMissingElements sends in the background with its own deadline; the
// reviewer's response and the transition lock never wait on it.
func (u *ReviewUseCase) notifyMissingElements(app entities.Application) {
	u.notifying.Add(1)
	go func() {
		defer u.notifying.Done()
		ctx, cancel := context.WithTimeout(context.Background(), u.notifyTimeout)
		defer cancel()
		if err := u.notifier.NotifyMissingElements(ctx, app, app.MissingElementsReason); err != nil {
			u.log.Warn("missing elements notification failed", zap.String("application_id", app.ID), zap.Error(err))
		}
	}()
}

func (u *ReviewUseCase) Comment(ctx context.Context, actor entities.Actor, applicationID string, comment string) (entities.Application, error) {
	if !actor.IsReviewer() {
		return entities.Application{}, ErrReviewerRequired
	}
	app, err := u.load(ctx, applicationID)
	if err != nil {
		return entities.Application{}, err
	}
	updated, err := u.repo.UpdateComment(ctx, app.UserID, strings.TrimSpace(comment))
	if err != nil {
		return entities.Application{}, err
	}
	if !updated.Exists() {
		return entities.Application{}, ErrApplicationNotFound
	}
	return updated, nil
}

func (u *ReviewUseCase) load(ctx context.Context, applicationID string) (entities.Application, error) {
	applicationID = strings.TrimSpace(applicationID)
	if applicationID == "" {
		return entities.Application{}, ErrInvalidApplicationID
	}
	app, err := u.repo.GetByID(ctx, applicationID)
	if err != nil {
		return entities.Application{}, err
	}
	if !app.Exists() {
		return entities.Application{}, ErrApplicationNotFound
	}
	return app, nil
}
