package handlers

import (
	"net/http"

	"grant_portal/internal/adapter/http/dto/response"

	"github.com/gin-gonic/gin"
)

// Workflow godoc
// @Summary  Statuses, transition table and checklists
// @Tags     workflow
// @Produce  json
// @Success  200 {object} response.WorkflowResponse
// @Router   /workflow [get]
func Workflow(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromWorkflow())
}

// Ping godoc
// @Summary  Liveness check
// @Tags     health
// @Produce  json
// @Success  200 {object} map[string]string
// @Router   /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
