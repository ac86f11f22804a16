package handlers

import (
	"net/http"

	"grant_portal/internal/adapter/http/dto/request"
	"grant_portal/internal/adapter/http/dto/response"
	"grant_portal/internal/domain/entities"
	"grant_portal/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ReviewHandler serves the tier 1 and tier 2 dashboards.
type ReviewHandler struct {
	usecase usecase.IReviewUseCase
}

func NewReviewHandler(uc usecase.IReviewUseCase) *ReviewHandler {
	return &ReviewHandler{usecase: uc}
}

// List godoc
// @Summary  Dashboard list
// @Tags     review
// @Produce  json
// @Param    tab    query string false "in_review, missing, compliant, approved, refused, all"
// @Param    status query string false "status code or label"
// @Param    search query string false "case-insensitive match on nom or email"
// @Param    page   query int    false "1-based page"
// @Success  200 {object} response.ReviewPageResponse
// @Router   /reviews/applications [get]
func (h *ReviewHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var q request.ReviewListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	query, err := q.ToQuery(p.Actor)
	if err != nil {
		writeError(c, err)
		return
	}
	page, err := h.usecase.List(c.Request.Context(), p.Actor, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromReviewPage(page))
}

// Detail godoc
// @Summary  Application detail with document links
// @Tags     review
// @Produce  json
// @Param    id path string true "application id"
// @Success  200 {object} response.ApplicationDetailResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /reviews/applications/{id} [get]
func (h *ReviewHandler) Detail(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	detail, err := h.usecase.FetchDetail(c.Request.Context(), p.Actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromApplicationDetail(detail))
}

// Transition godoc
// @Summary  Apply a workflow action
// @Tags     review
// @Accept   json
// @Produce  json
// @Param    id      path string                    true "application id"
// @Param    payload body request.TransitionRequest true "action"
// @Success  200 {object} response.ApplicationResponse
// @Failure  403 {object} pkg.HTTPError
// @Failure  409 {object} pkg.HTTPError
// @Router   /reviews/applications/{id}/transitions [post]
func (h *ReviewHandler) Transition(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var payload request.TransitionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	action, err := entities.ParseAction(payload.Action)
	if err != nil {
		writeError(c, err)
		return
	}
	app, err := h.usecase.ApplyTransition(c.Request.Context(), p.Actor, c.Param("id"), action, payload.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromApplicationForReviewer(app))
}

// Comment godoc
// @Summary  Set the internal reviewer comment
// @Tags     review
// @Accept   json
// @Produce  json
// @Param    id      path string                 true "application id"
// @Param    payload body request.CommentRequest true "comment"
// @Success  200 {object} response.ApplicationResponse
// @Router   /reviews/applications/{id}/comment [put]
func (h *ReviewHandler) Comment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var payload request.CommentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	app, err := h.usecase.Comment(c.Request.Context(), p.Actor, c.Param("id"), payload.Comment)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromApplicationForReviewer(app))
}
