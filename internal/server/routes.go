package server

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the API endpoints on a /v1 router group.
//
//	GET  /v1/health     - Liveness
//	POST /v1/worksheets - Generate a worksheet
//	POST /v1/evaluate   - Evaluate an arithmetic expression
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/health", h.HandleHealth)
	rg.POST("/worksheets", h.HandleWorksheet)
	rg.POST("/evaluate", h.HandleEvaluate)
}
