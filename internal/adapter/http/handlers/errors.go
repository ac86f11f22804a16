package handlers

import (
	"errors"
	"net/http"

	request "grant_portal/internal/adapter/http/dto/request"
	"grant_portal/internal/domain/entities"
	"grant_portal/internal/usecase"
	"grant_portal/internal/usecase/interfaces"
	"grant_portal/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload  = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errInvalidUpload   = pkg.NewDomainErrorSimple("INVALID_UPLOAD", "Invalid or missing file", http.StatusBadRequest)
	errUploadTooLarge  = pkg.NewDomainErrorSimple("UPLOAD_TOO_LARGE", "Uploaded file is too large", http.StatusRequestEntityTooLarge)
	errUnauthenticated = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing or invalid identity", http.StatusUnauthorized)
)

func mapError(err error) *pkg.AppError {
	var validation *entities.ValidationError
	switch {
	case errors.As(err, &validation):
		return pkg.NewDomainError("VALIDATION_FAILED", "Application is incomplete", err, http.StatusUnprocessableEntity).
			WithDetails(map[string]any{
				"missing_fields":          nonNilStrings(validation.MissingFieldLabels),
				"missing_documents":       docKeyStrings(validation.MissingDocuments),
				"missing_document_labels": nonNilStrings(validation.MissingDocumentLabels),
			})
	case errors.Is(err, entities.ErrUnauthorizedActor), errors.Is(err, usecase.ErrReviewerRequired):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Action not allowed for this role", http.StatusForbidden)
	case errors.Is(err, entities.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Action not allowed in the current status", http.StatusConflict)
	case errors.Is(err, usecase.ErrApplicationNotEditable):
		return pkg.NewDomainErrorSimple("APPLICATION_NOT_EDITABLE", "Application can no longer be edited", http.StatusConflict)
	case errors.Is(err, interfaces.ErrActionInProgress):
		return pkg.NewDomainErrorSimple("ACTION_IN_PROGRESS", "Another action is already in progress", http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrentModification):
		return pkg.NewDomainErrorSimple("CONCURRENT_MODIFICATION", "Application was modified by someone else, reload and retry", http.StatusConflict)
	case errors.Is(err, entities.ErrReasonRequired):
		return pkg.NewDomainErrorSimple("REASON_REQUIRED", "A reason is required for this action", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return pkg.NewDomainErrorSimple("APPLICATION_NOT_FOUND", "Application not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidUserID),
		errors.Is(err, usecase.ErrInvalidApplicationID),
		errors.Is(err, usecase.ErrEmptyUpload),
		errors.Is(err, entities.ErrUnknownAction),
		errors.Is(err, entities.ErrInvalidDocumentKey),
		errors.Is(err, entities.ErrInvalidEquipmentOption),
		errors.Is(err, entities.ErrInvalidTab),
		errors.Is(err, entities.ErrInvalidStatus),
		errors.Is(err, request.ErrInvalidFormPayload):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, err error) {
	appErr := mapError(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func docKeyStrings(keys []entities.DocumentKey) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, string(k))
	}
	return out
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
