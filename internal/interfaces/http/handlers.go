package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pitchdesk/pitchdesk/internal/application/service"
	"github.com/pitchdesk/pitchdesk/internal/domain/lifecycle"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	completionService service.CompletionService
	transitionService service.TransitionService
	contestService    service.ContestService
	payoutService     service.PayoutService
	queryService      service.QueryService
	logger            Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	completionService service.CompletionService,
	transitionService service.TransitionService,
	contestService service.ContestService,
	payoutService service.PayoutService,
	queryService service.QueryService,
	logger Logger,
) *Handlers {
	return &Handlers{
		completionService: completionService,
		transitionService: transitionService,
		contestService:    contestService,
		payoutService:     payoutService,
		queryService:      queryService,
		logger:            logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// CompletePitchRequest is the body for POST /pitches/:id/complete
type CompletePitchRequest struct {
	ActorID  int64  `json:"actor_id" binding:"required"`
	Feedback string `json:"feedback"`
	Rating   *int   `json:"rating"`
}

// CompletePitch handles POST /pitches/:id/complete
func (h *Handlers) CompletePitch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CompletePitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	pitch, err := h.completionService.Complete(c.Request.Context(), id, req.ActorID, req.Feedback, req.Rating)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: pitch})
}

// TransitionPitchRequest is the body for POST /pitches/:id/transition
type TransitionPitchRequest struct {
	ActorID int64  `json:"actor_id" binding:"required"`
	Target  string `json:"target" binding:"required"`
}

// TransitionPitch handles POST /pitches/:id/transition
func (h *Handlers) TransitionPitch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req TransitionPitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	pitch, err := h.transitionService.Transition(c.Request.Context(), id, req.ActorID, lifecycle.Status(req.Target))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: pitch})
}

// CloseEarlyRequest is the body for POST /projects/:id/close-early
type CloseEarlyRequest struct {
	ActorID int64  `json:"actor_id" binding:"required"`
	Reason  string `json:"reason"`
}

// CloseContestEarly handles POST /projects/:id/close-early
func (h *Handlers) CloseContestEarly(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CloseEarlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	if err := h.contestService.CloseEarly(c.Request.Context(), id, req.ActorID, req.Reason); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// ReopenRequest is the body for POST /projects/:id/reopen
type ReopenRequest struct {
	ActorID int64 `json:"actor_id" binding:"required"`
}

// ReopenContest handles POST /projects/:id/reopen
func (h *Handlers) ReopenContest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ReopenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	if err := h.contestService.Reopen(c.Request.Context(), id, req.ActorID); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// BypassHoldRequest is the body for POST /payouts/:id/bypass
type BypassHoldRequest struct {
	ActorID int64  `json:"actor_id" binding:"required"`
	Reason  string `json:"reason"`
}

// BypassHold handles POST /payouts/:id/bypass
func (h *Handlers) BypassHold(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req BypassHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	if err := h.payoutService.BypassHold(c.Request.Context(), id, req.Reason, req.ActorID); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// CalculateHoldReleaseDate handles GET /payouts/hold-release-date
func (h *Handlers) CalculateHoldReleaseDate(c *gin.Context) {
	workflowType := c.Query("workflow_type")
	if workflowType == "" {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "workflow_type is required"})
		return
	}

	releaseDate, err := h.payoutService.CalculateHoldReleaseDate(c.Request.Context(), workflowType)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{
		"workflow_type":     workflowType,
		"hold_release_date": releaseDate.Format(time.RFC3339),
	}})
}

// GetPitch handles GET /pitches/:id
func (h *Handlers) GetPitch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	pitch, err := h.queryService.GetPitch(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: pitch})
}

// ListProjectPitches handles GET /projects/:id/pitches
func (h *Handlers) ListProjectPitches(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	pitches, err := h.queryService.ListProjectPitches(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: pitches})
}

// ListPitchEvents handles GET /pitches/:id/events
func (h *Handlers) ListPitchEvents(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	events, err := h.queryService.ListPitchEvents(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: events})
}

// GetPayout handles GET /payouts/:id
func (h *Handlers) GetPayout(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	schedule, err := h.queryService.GetPayout(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: schedule})
}

// pathID parses the :id path parameter, writing a 400 on failure
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid id"})
		return 0, false
	}
	return id, true
}

// writeError maps the service error taxonomy to HTTP status codes
func (h *Handlers) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrAlreadyFinalized),
		errors.Is(err, service.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, service.ErrDependencyFailure):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError || status == http.StatusBadGateway {
		h.logger.Error("Request failed", "error", err, "path", c.Request.URL.Path)
	}
	c.JSON(status, Response{Success: false, Error: err.Error()})
}
