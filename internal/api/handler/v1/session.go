package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prodexpert/expertise-api/internal/api/handler/v1/request"
	"github.com/prodexpert/expertise-api/internal/api/handler/v1/response"
	"github.com/prodexpert/expertise-api/internal/api/middleware"
	"github.com/prodexpert/expertise-api/internal/domain"
	"github.com/prodexpert/expertise-api/internal/service"
)

type EvaluationService interface {
	OpenSession(ctx context.Context, sampleID, commissionID, userID uint) (domain.EvaluationSession, error)
	GetSession(ctx context.Context, id uint) (domain.EvaluationSession, error)
	CompleteSession(ctx context.Context, id uint) (domain.EvaluationSession, error)
	CancelSession(ctx context.Context, id uint) (domain.EvaluationSession, error)
	UpsertEvaluation(ctx context.Context, sessionID, memberID uint, input service.EvaluationInput) (domain.ExpertEvaluation, error)
	SetExclusionVote(ctx context.Context, sessionID, memberID uint, exclude bool, note string) (domain.ExpertEvaluation, error)
	SubmitEvaluation(ctx context.Context, sessionID, memberID uint) (domain.ExpertEvaluation, error)
	GetEvaluation(ctx context.Context, sessionID, memberID uint) (domain.ExpertEvaluation, error)
	SetExcludedFromCalculation(ctx context.Context, evaluationID uint, excluded bool) (domain.ExpertEvaluation, error)
}

type SessionHandler struct {
	svc EvaluationService
}

func NewSessionHandler(svc EvaluationService) *SessionHandler {
	return &SessionHandler{
		svc: svc,
	}
}

// HandleOpenSession godoc
// @Summary      Activate a commission's evaluation session for a sample
// @Tags         sessions
// @Produce      json
// @Param        request   body      request.OpenSessionRequest true "request body"
// @Success      201      {object}   domain.EvaluationSession
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sessions [post]
func (h *SessionHandler) HandleOpenSession(ctx *gin.Context) {
	req := request.OpenSessionRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	userID := ctx.GetUint(middleware.CtxKeyUserID)

	session, err := h.svc.OpenSession(ctx.Request.Context(), req.SampleID, req.CommissionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSampleNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSampleNotFound))
		case errors.Is(err, service.ErrCommissionNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrCommissionNotFound))
		case errors.Is(err, service.ErrSampleNotEvaluable):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrSessionAlreadyActive):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrInvalidRoster) || errors.Is(err, service.ErrCommissionNotEligible):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleOpenSession -> h.svc.OpenSession -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, session)
}

// HandleGetSession godoc
// @Summary      Get an evaluation session by ID
// @Tags         sessions
// @Produce      json
// @Param        sessionID   path       int  true  "session ID"
// @Success      200      {object}   domain.EvaluationSession
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sessions/{sessionID} [get]
func (h *SessionHandler) HandleGetSession(ctx *gin.Context) {
	sessionID, err := parseIDParam(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	session, err := h.svc.GetSession(ctx.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSessionNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetSession -> h.svc.GetSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleCompleteSession godoc
// @Summary      Complete an active evaluation session
// @Tags         sessions
// @Produce      json
// @Param        sessionID   path       int  true  "session ID"
// @Success      200      {object}   domain.EvaluationSession
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sessions/{sessionID}/complete [post]
func (h *SessionHandler) HandleCompleteSession(ctx *gin.Context) {
	h.transition(ctx, "v1.HandleCompleteSession", h.svc.CompleteSession)
}

// HandleCancelSession godoc
// @Summary      Cancel an active evaluation session
// @Tags         sessions
// @Produce      json
// @Param        sessionID   path       int  true  "session ID"
// @Success      200      {object}   domain.EvaluationSession
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sessions/{sessionID}/cancel [post]
func (h *SessionHandler) HandleCancelSession(ctx *gin.Context) {
	h.transition(ctx, "v1.HandleCancelSession", h.svc.CancelSession)
}

// HandleUpsertEvaluation godoc
// @Summary      Record or update a member's evaluation in a session
// @Tags         sessions
// @Produce      json
// @Param        sessionID   path      int  true  "session ID"
// @Param        request   body      request.UpsertEvaluationRequest true "request body"
// @Success      200      {object}   domain.ExpertEvaluation
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sessions/{sessionID}/evaluations [put]
func (h *SessionHandler) HandleUpsertEvaluation(ctx *gin.Context) {
	sessionID, err := parseIDParam(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpsertEvaluationRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	input := service.EvaluationInput{
		FinalScore: req.FinalScore,
	}
	for _, cs := range req.CriterionScores {
		input.CriterionScores = append(input.CriterionScores, service.CriterionScoreInput{
			CriterionID: cs.CriterionID,
			Score:       cs.Score,
		})
	}

	evaluation, err := h.svc.UpsertEvaluation(ctx.Request.Context(), sessionID, req.MemberID, input)
	if err != nil {
		h.renderEvaluationErr(ctx, "v1.HandleUpsertEvaluation", err)

		return
	}

	ctx.JSON(http.StatusOK, evaluation)
}

// HandleSetExclusionVote godoc
// @Summary      Record a member's vote to exclude the sample
// @Tags         sessions
// @Produce      json
// @Param        sessionID   path      int  true  "session ID"
// @Param        request   body      request.ExclusionVoteRequest true "request body"
// @Success      200      {object}   domain.ExpertEvaluation
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sessions/{sessionID}/exclusion-vote [put]
func (h *SessionHandler) HandleSetExclusionVote(ctx *gin.Context) {
	sessionID, err := parseIDParam(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.ExclusionVoteRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	evaluation, err := h.svc.SetExclusionVote(ctx.Request.Context(), sessionID, req.MemberID, req.Exclude, req.Note)
	if err != nil {
		h.renderEvaluationErr(ctx, "v1.HandleSetExclusionVote", err)

		return
	}

	ctx.JSON(http.StatusOK, evaluation)
}

// HandleSubmitEvaluation godoc
// @Summary      Submit a member's evaluation
// @Tags         sessions
// @Produce      json
// @Param        sessionID   path      int  true  "session ID"
// @Param        request   body      request.SubmitEvaluationRequest true "request body"
// @Success      200      {object}   domain.ExpertEvaluation
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sessions/{sessionID}/evaluations/submit [post]
func (h *SessionHandler) HandleSubmitEvaluation(ctx *gin.Context) {
	sessionID, err := parseIDParam(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.SubmitEvaluationRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	evaluation, err := h.svc.SubmitEvaluation(ctx.Request.Context(), sessionID, req.MemberID)
	if err != nil {
		h.renderEvaluationErr(ctx, "v1.HandleSubmitEvaluation", err)

		return
	}

	ctx.JSON(http.StatusOK, evaluation)
}

// HandleGetEvaluation godoc
// @Summary      Get a member's evaluation in a session
// @Tags         sessions
// @Produce      json
// @Param        sessionID   path       int  true  "session ID"
// @Param        memberID    path       int  true  "commission member ID"
// @Success      200      {object}   domain.ExpertEvaluation
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sessions/{sessionID}/members/{memberID}/evaluation [get]
func (h *SessionHandler) HandleGetEvaluation(ctx *gin.Context) {
	sessionID, err := parseIDParam(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	memberID, err := parseIDParam(ctx, "memberID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	evaluation, err := h.svc.GetEvaluation(ctx.Request.Context(), sessionID, memberID)
	if err != nil {
		if errors.Is(err, service.ErrEvaluationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEvaluationNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetEvaluation -> h.svc.GetEvaluation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, evaluation)
}

// HandleSetCalculationExclusion godoc
// @Summary      Flag an evaluation in or out of the score calculation
// @Tags         sessions
// @Produce      json
// @Param        evaluationID   path      int  true  "evaluation ID"
// @Param        request   body      request.CalculationExclusionRequest true "request body"
// @Success      200      {object}   domain.ExpertEvaluation
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /evaluations/{evaluationID}/calculation-exclusion [put]
func (h *SessionHandler) HandleSetCalculationExclusion(ctx *gin.Context) {
	evaluationID, err := parseIDParam(ctx, "evaluationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.CalculationExclusionRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	evaluation, err := h.svc.SetExcludedFromCalculation(ctx.Request.Context(), evaluationID, req.Excluded)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEvaluationNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEvaluationNotFound))
		case errors.Is(err, service.ErrSampleLocked):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleSetCalculationExclusion -> h.svc.SetExcludedFromCalculation -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, evaluation)
}

func (h *SessionHandler) transition(ctx *gin.Context, op string, fn func(context.Context, uint) (domain.EvaluationSession, error)) {
	sessionID, err := parseIDParam(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	session, err := fn(ctx.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSessionNotFound))
		case errors.Is(err, service.ErrSessionNotActive):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("%v -> %w", op, err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, session)
}

func (h *SessionHandler) renderEvaluationErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.RenderErr(ctx, response.ErrNotFound(service.ErrSessionNotFound))
	case errors.Is(err, service.ErrEvaluationNotFound):
		response.RenderErr(ctx, response.ErrNotFound(service.ErrEvaluationNotFound))
	case errors.Is(err, service.ErrMemberNotFound):
		response.RenderErr(ctx, response.ErrNotFound(service.ErrMemberNotFound))
	case errors.Is(err, service.ErrSessionNotActive),
		errors.Is(err, service.ErrDuplicateEvaluation),
		errors.Is(err, domain.ErrAlreadySubmitted):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrMemberNotInCommission),
		errors.Is(err, service.ErrMemberCannotSubmit),
		errors.Is(err, service.ErrCriterionNotFound),
		errors.Is(err, domain.ErrWrongEvaluationMode),
		errors.Is(err, domain.ErrScoreOutOfRange),
		errors.Is(err, domain.ErrExclusionNoteRequired),
		errors.Is(err, domain.ErrFinalScoreRequired),
		errors.Is(err, domain.ErrCriterionScoresRequired),
		errors.Is(err, domain.ErrRequiredCriterionMissing):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
