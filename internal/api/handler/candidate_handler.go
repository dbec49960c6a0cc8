package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hirepipe/ats/internal/api/metrics"
	"github.com/hirepipe/ats/internal/core/domain"
	"github.com/hirepipe/ats/internal/core/ports"
)

// CandidateHandler handles HTTP requests for candidates and their stages.
type CandidateHandler struct {
	service ports.CandidateService
}

func NewCandidateHandler(service ports.CandidateService) *CandidateHandler {
	return &CandidateHandler{service: service}
}

// ListByJob returns a job's candidates in submission order.
//
// @Summary      List candidates for a job
// @Tags         candidates
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {array}   domain.Candidate
// @Failure      400    {object}  errorResponse
// @Router       /jobs/{jobId}/candidates [get]
func (h *CandidateHandler) ListByJob(c echo.Context) error {
	jobID, err := pathID(c, "jobId")
	if err != nil {
		return err
	}

	candidates, err := h.service.ListCandidates(c.Request().Context(), jobID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, candidates)
}

// Create submits a candidate on behalf of the calling recruiter.
//
// @Summary      Submit a candidate
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        body  body      createCandidateRequest  true  "Candidate"
// @Success      200   {object}  domain.Candidate
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /candidates [post]
func (h *CandidateHandler) Create(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req createCandidateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	candidate, err := h.service.CreateCandidate(c.Request().Context(), toCandidateInput(req, id.ID))
	if err != nil {
		return err
	}

	metrics.CandidatesSubmittedTotal.WithLabelValues(string(candidate.Stage)).Inc()
	return c.JSON(http.StatusOK, candidate)
}

// UpdateStage moves a candidate to another pipeline stage.
//
// @Summary      Update candidate stage
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id    path      int                 true  "Candidate ID"
// @Param        body  body      updateStageRequest  true  "Target stage"
// @Success      200   {object}  domain.Candidate
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /candidates/{id}/stage [patch]
func (h *CandidateHandler) UpdateStage(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}

	candidateID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateStageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	candidate, err := h.service.UpdateStage(c.Request().Context(), ports.UpdateStageInput{
		CandidateID: candidateID,
		Stage:       domain.Stage(req.Stage),
		Actor:       actor,
	})
	if err != nil {
		return err
	}

	metrics.StageTransitionsTotal.WithLabelValues(string(candidate.Stage)).Inc()
	return c.JSON(http.StatusOK, candidate)
}

// History returns the recorded stage changes of a candidate, oldest first.
//
// @Summary      Candidate stage history
// @Tags         candidates
// @Produce      json
// @Param        id   path      int  true  "Candidate ID"
// @Success      200  {array}   domain.StageEvent
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /candidates/{id}/history [get]
func (h *CandidateHandler) History(c echo.Context) error {
	candidateID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	events, err := h.service.StageHistory(c.Request().Context(), candidateID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
