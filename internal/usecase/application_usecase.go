package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"grant_portal/internal/domain/entities"
	"grant_portal/internal/infrastructure/logger"
	"grant_portal/internal/infrastructure/metrics"
	"grant_portal/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidUserID          = errors.New("invalid user id")
	ErrApplicationNotFound    = errors.New("application not found")
	ErrApplicationNotEditable = errors.New("application can no longer be edited")
	ErrConcurrentModification = errors.New("application was modified concurrently")
	ErrEmptyUpload            = errors.New("empty upload")
)

// UploadFile is one file received from the applicant.
type UploadFile struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

func (f UploadFile) empty() bool {
	return f.Reader == nil || f.Size <= 0
}

// DocumentUpload binds an uploaded file to the checklist entry it satisfies.
type DocumentUpload struct {
	DocKey entities.DocumentKey
	File   UploadFile
}

// SubmitCommand is everything the applicant sends when clicking "submit".
type SubmitCommand struct {
	Form      entities.ApplicationForm
	Documents []DocumentUpload
	Signature *UploadFile
}

// ApplicationView is the applicant status page.
type ApplicationView struct {
	Application entities.Application
	Reason      string
	Documents   []entities.Document
	Completion  entities.CompletionReport
	Page        entities.LandingPage
}

// IApplicationUseCase exposes the applicant side of the workflow:
//   - status page and redirect policy => GetMine(), Landing()
//   - progress bar => Completion()
//   - draft form => SaveDraft(), UploadDocument()
//   - "Soumettre" / "Mettre à jour le dossier" => Submit()

type IApplicationUseCase interface {
	GetMine(ctx context.Context, userID string) (ApplicationView, error)
	Landing(ctx context.Context, userID string, explicitEdit bool) (entities.LandingPage, entities.Application, error)
	Completion(ctx context.Context, userID string) (entities.CompletionReport, error)
	SaveDraft(ctx context.Context, userID string, form entities.ApplicationForm) (entities.Application, error)
	UploadDocument(ctx context.Context, userID string, docKey entities.DocumentKey, file UploadFile) (entities.Document, error)
	Submit(ctx context.Context, userID string, cmd SubmitCommand) (entities.Application, error)
}

type ApplicationUseCase struct {
	repo    interfaces.IApplicationRepository
	docs    interfaces.IDocumentRepository
	storage interfaces.IBlobStorage
	lock    interfaces.IActionLock
	log     *zap.Logger
	now     func() time.Time
}

var _ IApplicationUseCase = (*ApplicationUseCase)(nil)

func NewApplicationUseCase(
	repo interfaces.IApplicationRepository,
	docs interfaces.IDocumentRepository,
	storage interfaces.IBlobStorage,
	lock interfaces.IActionLock,
	log *zap.Logger,
) *ApplicationUseCase {
	return &ApplicationUseCase{
		repo:    repo,
		docs:    docs,
		storage: storage,
		lock:    lock,
		log:     logger.OrNop(log).Named("application"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (u *ApplicationUseCase) GetMine(ctx context.Context, userID string) (ApplicationView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ApplicationView{}, ErrInvalidUserID
	}

	app, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return ApplicationView{}, err
	}
	if !app.Exists() {
		return ApplicationView{}, ErrApplicationNotFound
	}

	docs, err := u.docs.ListByUserID(ctx, userID)
	if err != nil {
		return ApplicationView{}, err
	}

	return ApplicationView{
		Application: app,
		Reason:      app.VisibleReason(),
		Documents:   docs,
		Completion:  completionOf(app, docs),
		Page:        entities.ResolveLandingPage(&app, false),
	}, nil
}

func (u *ApplicationUseCase) Landing(ctx context.Context, userID string, explicitEdit bool) (entities.LandingPage, entities.Application, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", entities.Application{}, ErrInvalidUserID
	}

	app, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return "", entities.Application{}, err
	}
	return entities.ResolveLandingPage(&app, explicitEdit), app, nil
}

func (u *ApplicationUseCase) Completion(ctx context.Context, userID string) (entities.CompletionReport, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.CompletionReport{}, ErrInvalidUserID
	}

	app, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return entities.CompletionReport{}, err
	}
	docs, err := u.docs.ListByUserID(ctx, userID)
	if err != nil {
		return entities.CompletionReport{}, err
	}
	return completionOf(app, docs), nil
}

func (u *ApplicationUseCase) SaveDraft(ctx context.Context, userID string, form entities.ApplicationForm) (entities.Application, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.Application{}, ErrInvalidUserID
	}
	if err := entities.ValidateEquipmentOption(form.BesoinEquipement); err != nil {
		return entities.Application{}, err
	}

	current, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return entities.Application{}, err
	}
	return u.saveDraft(ctx, userID, current, form)
}

// saveDraft upserts the form. The repository refuses the write if the status
// moved out of the editable set since current was read.
func (u *ApplicationUseCase) saveDraft(ctx context.Context, userID string, current entities.Application, form entities.ApplicationForm) (entities.Application, error) {
	if current.Exists() && !current.CurrentStatus().Editable() {
		return entities.Application{}, ErrApplicationNotEditable
	}

	app := current
	if !app.Exists() {
		app = entities.NewDraftApplication(uuid.NewString(), userID, u.now())
	}
	app.Form = form
	app.UpdatedAt = u.now()

	saved, err := u.repo.SaveDraft(ctx, app)
	if err != nil {
		u.log.Error("save draft failed", zap.String("user_id", userID), zap.Error(err))
		return entities.Application{}, err
	}
	if !saved.Exists() {
		return entities.Application{}, ErrApplicationNotEditable
	}
	u.log.Debug("draft saved", zap.String("user_id", userID), zap.String("application_id", saved.ID), zap.Int64("version", saved.Version))
	return saved, nil
}

func (u *ApplicationUseCase) UploadDocument(ctx context.Context, userID string, docKey entities.DocumentKey, file UploadFile) (entities.Document, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.Document{}, ErrInvalidUserID
	}
	if _, err := entities.ParseDocumentKey(string(docKey)); err != nil {
		return entities.Document{}, err
	}

	release, err := u.lock.Acquire(ctx, fmt.Sprintf("upload:%s:%s", userID, docKey))
	if err != nil {
		return entities.Document{}, err
	}
	// In-flight writes finish even if the client goes away.
	ctx = context.WithoutCancel(ctx)
	defer u.release(ctx, release)

	current, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return entities.Document{}, err
	}
	if current.Exists() && !current.CurrentStatus().Editable() {
		return entities.Document{}, ErrApplicationNotEditable
	}
	return u.storeDocument(ctx, userID, DocumentUpload{DocKey: docKey, File: file})
}

func (u *ApplicationUseCase) storeDocument(ctx context.Context, userID string, up DocumentUpload) (entities.Document, error) {
	if up.File.empty() {
		return entities.Document{}, ErrEmptyUpload
	}

	id := uuid.NewString()
	objectKey := path.Join(userID, string(up.DocKey), id+"-"+sanitizeFileName(up.File.FileName))
	if err := u.storage.Upload(ctx, interfaces.BucketDocuments, objectKey, up.File.Reader, up.File.Size, up.File.ContentType); err != nil {
		metrics.DocumentUploads.WithLabelValues(string(up.DocKey), metrics.OutcomeError).Inc()
		u.log.Error("document upload failed", zap.String("user_id", userID), zap.String("doc_key", string(up.DocKey)), zap.Error(err))
		return entities.Document{}, err
	}

	doc, err := u.docs.Create(ctx, entities.Document{
		ID:          id,
		UserID:      userID,
		DocKey:      up.DocKey,
		FilePath:    objectKey,
		FileName:    up.File.FileName,
		ContentType: up.File.ContentType,
		SizeBytes:   up.File.Size,
		CreatedAt:   u.now(),
	})
	if err != nil {
		metrics.DocumentUploads.WithLabelValues(string(up.DocKey), metrics.OutcomeError).Inc()
		u.log.Error("document record failed", zap.String("user_id", userID), zap.String("object_key", objectKey), zap.Error(err))
		return entities.Document{}, err
	}
	metrics.DocumentUploads.WithLabelValues(string(up.DocKey), metrics.OutcomeSuccess).Inc()
	return doc, nil
}

// Submit runs the whole submission sequence for a draft or a returned
// application:
//
//  1. validate everything in memory (no write on failure)
//  2. save the form
//  3. upload each document, one after the other
//  4. upload the signature
//  5. move the status to UnderReview
//
// The status change is the last write, so a failure at any earlier step leaves
// an editable application holding whatever already went through; the
// applicant simply submits again.
func (u *ApplicationUseCase) Submit(ctx context.Context, userID string, cmd SubmitCommand) (entities.Application, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.Application{}, ErrInvalidUserID
	}
	if err := entities.ValidateEquipmentOption(cmd.Form.BesoinEquipement); err != nil {
		return entities.Application{}, err
	}
	for _, d := range cmd.Documents {
		if _, err := entities.ParseDocumentKey(string(d.DocKey)); err != nil {
			return entities.Application{}, err
		}
	}

	release, err := u.lock.Acquire(ctx, "submit:"+userID)
	if err != nil {
		return entities.Application{}, err
	}
	ctx = context.WithoutCancel(ctx)
	defer u.release(ctx, release)

	current, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return entities.Application{}, err
	}
	action, err := entities.ApplicantSubmitAction(current.CurrentStatus())
	if err != nil {
		metrics.Submissions.WithLabelValues(metrics.OutcomeRejected).Inc()
		return entities.Application{}, err
	}

	var existing []entities.Document
	if current.Exists() {
		if existing, err = u.docs.ListByUserID(ctx, userID); err != nil {
			return entities.Application{}, err
		}
	}
	// Empty files count as not provided, so they surface as missing
	// documents before anything is written.
	var documents []DocumentUpload
	for _, d := range cmd.Documents {
		if d.File.empty() {
			u.log.Info("empty upload ignored", zap.String("user_id", userID), zap.String("doc_key", string(d.DocKey)))
			continue
		}
		documents = append(documents, d)
	}
	signature := cmd.Signature
	if signature != nil && signature.empty() {
		signature = nil
	}

	uploaded := entities.DocumentKeySet(existing)
	for _, d := range documents {
		uploaded[d.DocKey] = true
	}
	report := entities.EvaluateCompletion(entities.CompletionInput{
		Form:         cmd.Form,
		Uploaded:     uploaded,
		HasSignature: current.HasSignature() || signature != nil,
	})

	candidate := current
	candidate.Form = cmd.Form
	if _, _, err := entities.ApplyTransition(candidate, entities.ActorApplicant, action, entities.TransitionInput{Completion: &report, Now: u.now()}); err != nil {
		metrics.Submissions.WithLabelValues(metrics.OutcomeRejected).Inc()
		u.log.Info("submission rejected", zap.String("user_id", userID), zap.Error(err))
		return entities.Application{}, err
	}

	saved, err := u.saveDraft(ctx, userID, current, cmd.Form)
	if err != nil {
		metrics.Submissions.WithLabelValues(metrics.OutcomeError).Inc()
		return entities.Application{}, err
	}

	for _, d := range documents {
		if _, err := u.storeDocument(ctx, userID, d); err != nil {
			metrics.Submissions.WithLabelValues(metrics.OutcomeError).Inc()
			return entities.Application{}, err
		}
	}

	if signature != nil {
		if saved, err = u.storeSignature(ctx, userID, *signature); err != nil {
			metrics.Submissions.WithLabelValues(metrics.OutcomeError).Inc()
			return entities.Application{}, err
		}
	}

	next, _, err := entities.ApplyTransition(saved, entities.ActorApplicant, action, entities.TransitionInput{Completion: &report, Now: u.now()})
	if err != nil {
		metrics.Submissions.WithLabelValues(metrics.OutcomeRejected).Inc()
		return entities.Application{}, err
	}
	updated, err := u.repo.UpdateWorkflow(ctx, next, saved.Version)
	if err != nil {
		metrics.Submissions.WithLabelValues(metrics.OutcomeError).Inc()
		u.log.Error("status update failed", zap.String("user_id", userID), zap.Error(err))
		return entities.Application{}, err
	}
	if !updated.Exists() {
		metrics.Submissions.WithLabelValues(metrics.OutcomeError).Inc()
		return entities.Application{}, ErrConcurrentModification
	}

	metrics.Submissions.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.Transitions.WithLabelValues(string(action), metrics.OutcomeSuccess).Inc()
	u.log.Info("application submitted",
		zap.String("user_id", userID),
		zap.String("application_id", updated.ID),
		zap.String("action", string(action)),
		zap.Int("documents", len(documents)),
	)
	return updated, nil
}

func (u *ApplicationUseCase) storeSignature(ctx context.Context, userID string, file UploadFile) (entities.Application, error) {
	if file.empty() {
		return entities.Application{}, ErrEmptyUpload
	}
	objectKey := path.Join(userID, fmt.Sprintf("signature-%d.png", u.now().UnixNano()))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "image/png"
	}
	if err := u.storage.Upload(ctx, interfaces.BucketSignatures, objectKey, file.Reader, file.Size, contentType); err != nil {
		u.log.Error("signature upload failed", zap.String("user_id", userID), zap.Error(err))
		return entities.Application{}, err
	}
	app, err := u.repo.SetSignature(ctx, userID, objectKey)
	if err != nil {
		return entities.Application{}, err
	}
	if !app.Exists() {
		return entities.Application{}, ErrApplicationNotEditable
	}
	return app, nil
}

func (u *ApplicationUseCase) release(ctx context.Context, release interfaces.ReleaseFunc) {
	if release == nil {
		return
	}
	if err := release(ctx); err != nil {
		u.log.Warn("action lock release failed", zap.Error(err))
	}
}

func completionOf(app entities.Application, docs []entities.Document) entities.CompletionReport {
	return entities.EvaluateCompletion(entities.CompletionInput{
		Form:         app.Form,
		Uploaded:     entities.DocumentKeySet(docs),
		HasSignature: app.HasSignature(),
	})
}

// sanitizeFileName keeps object keys readable and free of path separators.
func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
