package routes

import (
	"grant_portal/internal/adapter/http/handlers"
	"grant_portal/internal/adapter/http/middleware"
	"grant_portal/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	PathMe       = "/me"
	PathReviews  = "/reviews"
	PathWorkflow = "/workflow"
	PathPing     = "/ping"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, handlers.Ping)
	rg.GET(PathWorkflow, handlers.Workflow)
}

func addApplicantRoutes(rg *gin.RouterGroup, h *handlers.ApplicationHandler) {
	me := rg.Group(PathMe, middleware.Auth(), middleware.RequireActors(entities.ActorApplicant))
	{
		me.GET("/application", h.GetMine)
		me.PUT("/application", h.SaveDraft)
		me.POST("/application/submit", h.Submit)
		me.GET("/landing", h.Landing)
		me.GET("/completion", h.Completion)
		me.POST("/documents/:doc_key", h.UploadDocument)
	}
}

func addReviewRoutes(rg *gin.RouterGroup, h *handlers.ReviewHandler) {
	reviews := rg.Group(PathReviews, middleware.Auth(), middleware.RequireActors(entities.ActorReviewerTier1, entities.ActorReviewerTier2))
	{
		reviews.GET("/applications", h.List)
		reviews.GET("/applications/:id", h.Detail)
		reviews.POST("/applications/:id/transitions", h.Transition)
		reviews.PUT("/applications/:id/comment", h.Comment)
	}
}
