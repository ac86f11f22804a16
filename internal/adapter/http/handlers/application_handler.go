package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"grant_portal/internal/adapter/http/dto/request"
	"grant_portal/internal/adapter/http/dto/response"
	"grant_portal/internal/adapter/http/middleware"
	"grant_portal/internal/domain/entities"
	"grant_portal/internal/usecase"

	"github.com/gin-gonic/gin"
)

const (
	formFieldPayload   = "form"
	formFieldFile      = "file"
	formFieldSignature = "signature"

	// multipart overhead allowed on top of the per-file limit
	multipartSlack = 1 << 20
)

// ApplicationHandler serves the applicant's own application.
type ApplicationHandler struct {
	usecase        usecase.IApplicationUseCase
	maxUploadBytes int64
}

func NewApplicationHandler(uc usecase.IApplicationUseCase, maxUploadBytes int64) *ApplicationHandler {
	return &ApplicationHandler{usecase: uc, maxUploadBytes: maxUploadBytes}
}

// GetMine godoc
// @Summary  Applicant status view
// @Tags     applicant
// @Produce  json
// @Success  200 {object} response.ApplicationViewResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /me/application [get]
func (h *ApplicationHandler) GetMine(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	view, err := h.usecase.GetMine(c.Request.Context(), p.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromApplicationView(view))
}

// Landing godoc
// @Summary  Page the applicant lands on
// @Tags     applicant
// @Produce  json
// @Param    edit query bool false "explicit edit link"
// @Success  200 {object} response.LandingResponse
// @Router   /me/landing [get]
func (h *ApplicationHandler) Landing(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var q request.LandingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	page, app, err := h.usecase.Landing(c.Request.Context(), p.UserID, q.Edit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromLanding(page, app))
}

// Completion godoc
// @Summary  Completion report of the current draft
// @Tags     applicant
// @Produce  json
// @Success  200 {object} response.CompletionResponse
// @Router   /me/completion [get]
func (h *ApplicationHandler) Completion(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	report, err := h.usecase.Completion(c.Request.Context(), p.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromCompletion(report))
}

// SaveDraft godoc
// @Summary  Save the draft form
// @Tags     applicant
// @Accept   json
// @Produce  json
// @Param    payload body request.ApplicationFormRequest true "form"
// @Success  200 {object} response.ApplicationResponse
// @Failure  409 {object} pkg.HTTPError
// @Router   /me/application [put]
func (h *ApplicationHandler) SaveDraft(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var payload request.ApplicationFormRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	app, err := h.usecase.SaveDraft(c.Request.Context(), p.UserID, payload.ToForm())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromApplication(app))
}

// UploadDocument godoc
// @Summary  Upload one checklist document
// @Tags     applicant
// @Accept   multipart/form-data
// @Produce  json
// @Param    doc_key path     string true "document key"
// @Param    file    formData file   true "document"
// @Success  201 {object} response.DocumentResponse
// @Router   /me/documents/{doc_key} [post]
func (h *ApplicationHandler) UploadDocument(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	key, err := entities.ParseDocumentKey(c.Param("doc_key"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartSlack)
	fh, err := c.FormFile(formFieldFile)
	if err != nil {
		h.writeUploadError(c, err)
		return
	}
	if fh.Size > h.maxUploadBytes {
		c.JSON(errUploadTooLarge.HTTPStatus, errUploadTooLarge.ToHTTPError())
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(errInvalidUpload.HTTPStatus, errInvalidUpload.ToHTTPError())
		return
	}
	defer f.Close()

	doc, err := h.usecase.UploadDocument(c.Request.Context(), p.UserID, key, uploadFile(fh, f))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromDocument(doc))
}

// Submit godoc
// @Summary  Submit or resubmit the application
// @Tags     applicant
// @Accept   multipart/form-data
// @Produce  json
// @Param    form      formData string true  "form JSON"
// @Param    signature formData file   false "signature PNG"
// @Success  200 {object} response.ApplicationResponse
// @Failure  422 {object} pkg.HTTPError
// @Router   /me/application/submit [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(len(entities.DocumentTypes)+1)*h.maxUploadBytes+multipartSlack)
	mf, err := c.MultipartForm()
	if err != nil {
		h.writeUploadError(c, err)
		return
	}

	form, err := request.ParseFormField(firstValue(mf.Value[formFieldPayload]))
	if err != nil {
		writeError(c, err)
		return
	}

	cmd := usecase.SubmitCommand{Form: form}
	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	open := func(fh *multipart.FileHeader) (usecase.UploadFile, bool) {
		if fh.Size > h.maxUploadBytes {
			c.JSON(errUploadTooLarge.HTTPStatus, errUploadTooLarge.ToHTTPError())
			return usecase.UploadFile{}, false
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(errInvalidUpload.HTTPStatus, errInvalidUpload.ToHTTPError())
			return usecase.UploadFile{}, false
		}
		opened = append(opened, f)
		return uploadFile(fh, f), true
	}

	for _, dt := range entities.DocumentTypes {
		headers := mf.File[string(dt.Key)]
		if len(headers) == 0 {
			continue
		}
		file, ok := open(headers[0])
		if !ok {
			return
		}
		cmd.Documents = append(cmd.Documents, usecase.DocumentUpload{DocKey: dt.Key, File: file})
	}
	if headers := mf.File[formFieldSignature]; len(headers) > 0 {
		file, ok := open(headers[0])
		if !ok {
			return
		}
		cmd.Signature = &file
	}

	app, err := h.usecase.Submit(c.Request.Context(), p.UserID, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromApplication(app))
}

func (h *ApplicationHandler) writeUploadError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(errUploadTooLarge.HTTPStatus, errUploadTooLarge.ToHTTPError())
		return
	}
	c.JSON(errInvalidUpload.HTTPStatus, errInvalidUpload.ToHTTPError())
}

func uploadFile(fh *multipart.FileHeader, f multipart.File) usecase.UploadFile {
	return usecase.UploadFile{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	}
}

func principal(c *gin.Context) (middleware.Principal, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
	}
	return p, ok
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
