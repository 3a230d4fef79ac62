package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"kidsmath/internal/config"
	"kidsmath/internal/expr"
	"kidsmath/internal/formula"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// Handlers serves the kidsmath API.
type Handlers struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewHandlers returns handlers using cfg for worksheet defaults and limits.
func NewHandlers(cfg *config.Config, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{cfg: cfg, logger: logger}
}

func getOrCreateRequestID(c *gin.Context) string {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Header(requestIDHeader, id)
	return id
}

// HandleHealth handles GET /v1/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Version: h.cfg.Version})
}

// HandleWorksheet handles POST /v1/worksheets.
//
// The body is a worksheet config; fields left out take the server defaults.
//
//	200 OK: WorksheetResponse
//	400 Bad Request: body is not JSON
//	422 Unprocessable Entity: settings fail validation
//	503 Service Unavailable: request cancelled or timed out during generation
func (h *Handlers) HandleWorksheet(c *gin.Context) {
	logger := h.logger.With(zap.String("request_id", getOrCreateRequestID(c)))

	req := h.cfg.Worksheet
	req.Operators = append([]string(nil), req.Operators...)
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	if req.Tests > h.cfg.Server.MaxTests {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "too many tests requested",
			Code:  "TOO_MANY_TESTS",
		})
		return
	}

	opts, err := req.Options(logger)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "INVALID_WORKSHEET"})
		return
	}

	start := time.Now()
	b, err := formula.GenerateParallel(c.Request.Context(), opts, 0)
	generateDuration.Observe(time.Since(start).Seconds())
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("generation timed out", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "worksheet generation timed out", Code: "GENERATE_TIMEOUT"})
		return
	case errors.Is(err, context.Canceled):
		logger.Info("generation cancelled", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "worksheet generation cancelled", Code: "GENERATE_CANCELLED"})
		return
	case err != nil:
		logger.Error("generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "GENERATE_FAILED"})
		return
	}
	formulasGenerated.Add(float64(b.Len()))

	logger.Info("worksheet generated",
		zap.Int("tests", b.Len()),
		zap.Int("numbers", req.Numbers),
		zap.Uint64("seed", b.Seed))

	c.JSON(http.StatusOK, WorksheetResponse{
		Formulas: b.Formulas,
		Targets:  b.Targets,
		Split:    formula.SplitCount(req.Numbers),
		Seed:     b.Seed,
	})
}

// HandleEvaluate handles POST /v1/evaluate.
//
//	200 OK: EvaluateResponse
//	400 Bad Request: missing expression or syntax error
//	422 Unprocessable Entity: disallowed construct or arithmetic error
func (h *Handlers) HandleEvaluate(c *gin.Context) {
	logger := h.logger.With(zap.String("request_id", getOrCreateRequestID(c)))

	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		evaluations.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "expression is required", Code: "INVALID_REQUEST"})
		return
	}

	v, err := expr.Evaluate(req.Expression)
	if err != nil {
		status, code, result := http.StatusUnprocessableEntity, "ARITHMETIC_ERROR", "arithmetic"
		switch {
		case errors.Is(err, expr.ErrSyntax):
			status, code, result = http.StatusBadRequest, "SYNTAX_ERROR", "syntax"
		case errors.Is(err, expr.ErrDisallowed):
			code, result = "DISALLOWED", "disallowed"
		}
		evaluations.WithLabelValues(result).Inc()
		logger.Debug("evaluation rejected", zap.String("expression", req.Expression), zap.Error(err))
		c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
		return
	}

	evaluations.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, EvaluateResponse{Value: v})
}
