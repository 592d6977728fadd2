// Package api exposes the checkers as a JSON HTTP API on gin.
//
//	GET  /api/v1/strategies
//	POST /api/v1/unique
//	POST /api/v1/unique/batch
//	POST /api/v1/permutation
//
// Setting "strategy" to "all" runs every strategy and reports whether they agree.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyellow/strcheck/internal/analyzer"
	"github.com/garyellow/strcheck/internal/charset"
	domerrors "github.com/garyellow/strcheck/internal/errors"
	"github.com/garyellow/strcheck/internal/logger"
	"github.com/garyellow/strcheck/internal/metrics"
	"github.com/garyellow/strcheck/internal/permutation"
	"github.com/garyellow/strcheck/internal/sentry"
	"github.com/garyellow/strcheck/internal/uniqueness"
)

const module = "api"

// Handler serves the check endpoints.
type Handler struct {
	svc     *analyzer.Service
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewHandler creates a Handler. m may be nil.
func NewHandler(svc *analyzer.Service, m *metrics.Metrics, log *logger.Logger) *Handler {
	return &Handler{
		svc:     svc,
		metrics: m,
		logger:  log.WithModule(module),
	}
}

// Register mounts the API routes on rg.
func (h *Handler) Register(rg *gin.RouterGroup) {
	v1 := rg.Group("/api/v1")
	v1.GET("/strategies", h.strategies)
	v1.POST("/unique", h.unique)
	v1.POST("/unique/batch", h.uniqueBatch)
	v1.POST("/permutation", h.permutation)
}

type uniqueRequest struct {
	Input    *string `json:"input" binding:"required"`
	Strategy string  `json:"strategy"`
	Alphabet string  `json:"alphabet"`
}

type batchRequest struct {
	Inputs   []string `json:"inputs" binding:"required"`
	Strategy string   `json:"strategy"`
	Alphabet string   `json:"alphabet"`
}

type permutationRequest struct {
	A                    *string `json:"a" binding:"required"`
	B                    *string `json:"b" binding:"required"`
	Strategy             string  `json:"strategy"`
	Alphabet             string  `json:"alphabet"`
	UnicodeNormalization bool    `json:"unicode_normalization"`
}

type alphabetInfo struct {
	Name string `json:"name"`
	Base int32  `json:"base"`
	Size int    `json:"size"`
}

func (h *Handler) strategies(c *gin.Context) {
	cfg := h.svc.Config()

	alphabets := make([]alphabetInfo, 0, len(charset.Names()))
	for _, name := range charset.Names() {
		a, _ := charset.Lookup(name)
		alphabets = append(alphabets, alphabetInfo{Name: a.Name, Base: a.Base, Size: a.Size})
	}

	c.JSON(http.StatusOK, gin.H{
		"unique":      uniqueness.Strategies(),
		"permutation": permutation.Strategies(),
		"alphabets":   alphabets,
		"defaults": gin.H{
			"alphabet":    cfg.DefaultAlphabet,
			"unique":      cfg.DefaultUniqueStrategy,
			"permutation": cfg.DefaultPermutationStrategy,
		},
		"limits": gin.H{
			"max_input_runes": cfg.MaxInputRunes,
			"max_batch_size":  cfg.MaxBatchSize,
		},
	})
}

func (h *Handler) unique(c *gin.Context) {
	var req uniqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, domerrors.NewValidationError("body", err.Error()))
		return
	}
	ctx := c.Request.Context()

	if analyzer.IsStrategyAll(req.Strategy) {
		cmp, err := h.svc.CompareUnique(ctx, *req.Input, req.Alphabet)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, cmp)
		return
	}

	res, err := h.svc.Unique(ctx, analyzer.UniqueRequest{
		Input:    *req.Input,
		Strategy: req.Strategy,
		Alphabet: req.Alphabet,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) uniqueBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, domerrors.NewValidationError("body", err.Error()))
		return
	}

	results, err := h.svc.UniqueBatch(c.Request.Context(), analyzer.BatchRequest{
		Inputs:   req.Inputs,
		Strategy: req.Strategy,
		Alphabet: req.Alphabet,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *Handler) permutation(c *gin.Context) {
	var req permutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, domerrors.NewValidationError("body", err.Error()))
		return
	}
	ctx := c.Request.Context()

	if analyzer.IsStrategyAll(req.Strategy) {
		cmp, err := h.svc.ComparePermutation(ctx, *req.A, *req.B, req.Alphabet, req.UnicodeNormalization)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, cmp)
		return
	}

	res, err := h.svc.Permutation(ctx, analyzer.PermutationRequest{
		A:                    *req.A,
		B:                    *req.B,
		Strategy:             req.Strategy,
		Alphabet:             req.Alphabet,
		UnicodeNormalization: req.UnicodeNormalization,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// StatusFor maps a check error to an HTTP status and a metrics label.
func StatusFor(err error) (int, string) {
	switch {
	case domerrors.IsInvalidAlphabet(err):
		return http.StatusUnprocessableEntity, "invalid_alphabet"
	case domerrors.IsInputTooLong(err):
		return http.StatusRequestEntityTooLarge, "too_long"
	case domerrors.IsUnknownStrategy(err), domerrors.IsUnknownAlphabet(err), domerrors.IsInvalidInput(err):
		return http.StatusBadRequest, "invalid_request"
	case domerrors.IsRateLimitExceeded(err):
		return http.StatusTooManyRequests, "rate_limit"
	case domerrors.IsTimeout(err):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, errorType := StatusFor(err)
	if h.metrics != nil {
		h.metrics.RecordHTTPError(errorType, module)
	}

	body := gin.H{"error": err.Error()}
	var alphaErr *domerrors.AlphabetError
	if errors.As(err, &alphaErr) {
		body["alphabet"] = alphaErr.Alphabet
		body["position"] = alphaErr.Position
		body["rune"] = string(alphaErr.Rune)
	}

	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).ErrorContext(c.Request.Context(), "Check failed")
		sentry.CaptureException(c.Request.Context(), err, map[string]string{"module": module, "path": c.FullPath()})
		body["error"] = "internal error"
	}
	c.AbortWithStatusJSON(status, body)
}
