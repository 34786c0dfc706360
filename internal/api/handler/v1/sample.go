package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prodexpert/expertise-api/internal/api/handler/v1/request"
	"github.com/prodexpert/expertise-api/internal/api/handler/v1/response"
	"github.com/prodexpert/expertise-api/internal/domain"
	"github.com/prodexpert/expertise-api/internal/service"
)

type SampleService interface {
	CreateSample(ctx context.Context, sample domain.ProductSample) (domain.ProductSample, error)
	GetSample(ctx context.Context, id uint) (domain.ProductSample, error)
	GetEventSamples(ctx context.Context, eventID uint) ([]domain.ProductSample, error)
	SubmitSample(ctx context.Context, id uint) (domain.ProductSample, error)
	ExcludeSample(ctx context.Context, id uint, reason string) (domain.ProductSample, error)
	CompleteSample(ctx context.Context, id uint) (domain.ProductSample, error)
}

type ScoringService interface {
	ScoreSample(ctx context.Context, sampleID uint) (domain.ProductSample, error)
}

type SampleHandler struct {
	svc        SampleService
	scoringSvc ScoringService
}

func NewSampleHandler(svc SampleService, scoringSvc ScoringService) *SampleHandler {
	return &SampleHandler{
		svc:        svc,
		scoringSvc: scoringSvc,
	}
}

// HandleCreateSample godoc
// @Summary      Register a product sample for an event
// @Tags         samples
// @Produce      json
// @Param        request   body      request.CreateSampleRequest true "request body"
// @Success      201      {object}   domain.ProductSample
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /samples [post]
func (h *SampleHandler) HandleCreateSample(ctx *gin.Context) {
	req := request.CreateSampleRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	sample, err := h.svc.CreateSample(ctx.Request.Context(), domain.ProductSample{
		EventID:     req.EventID,
		CategoryID:  req.CategoryID,
		ApplicantID: req.ApplicantID,
		Name:        req.Name,
		Mode:        domain.EvaluationMode(req.Mode),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
		case errors.Is(err, service.ErrCategoryNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrCategoryNotFound))
		case errors.Is(err, service.ErrSampleCodeExists) || errors.Is(err, service.ErrSampleNumberTaken):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleCreateSample -> h.svc.CreateSample -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, sample)
}

// HandleGetSample godoc
// @Summary      Get a product sample by ID
// @Tags         samples
// @Produce      json
// @Param        sampleID   path       int  true  "sample ID"
// @Success      200      {object}   domain.ProductSample
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /samples/{sampleID} [get]
func (h *SampleHandler) HandleGetSample(ctx *gin.Context) {
	sampleID, err := parseIDParam(ctx, "sampleID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	sample, err := h.svc.GetSample(ctx.Request.Context(), sampleID)
	if err != nil {
		if errors.Is(err, service.ErrSampleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSampleNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetSample -> h.svc.GetSample -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, sample)
}

// HandleGetEventSamples godoc
// @Summary      List the samples registered for an event
// @Tags         samples
// @Produce      json
// @Param        eventID   path       int  true  "event ID"
// @Success      200      {array}    domain.ProductSample
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/samples [get]
func (h *SampleHandler) HandleGetEventSamples(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	samples, err := h.svc.GetEventSamples(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEventSamples -> h.svc.GetEventSamples -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, samples)
}

// HandleSubmitSample godoc
// @Summary      Submit a draft sample for evaluation
// @Tags         samples
// @Produce      json
// @Param        sampleID   path       int  true  "sample ID"
// @Success      200      {object}   domain.ProductSample
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /samples/{sampleID}/submit [post]
func (h *SampleHandler) HandleSubmitSample(ctx *gin.Context) {
	h.transition(ctx, "v1.HandleSubmitSample", func(c context.Context, id uint) (domain.ProductSample, error) {
		return h.svc.SubmitSample(c, id)
	})
}

// HandleExcludeSample godoc
// @Summary      Exclude a sample from the competition
// @Tags         samples
// @Produce      json
// @Param        sampleID   path      int  true  "sample ID"
// @Param        request   body      request.ExcludeSampleRequest true "request body"
// @Success      200      {object}   domain.ProductSample
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /samples/{sampleID}/exclude [post]
func (h *SampleHandler) HandleExcludeSample(ctx *gin.Context) {
	req := request.ExcludeSampleRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	h.transition(ctx, "v1.HandleExcludeSample", func(c context.Context, id uint) (domain.ProductSample, error) {
		return h.svc.ExcludeSample(c, id, req.Reason)
	})
}

// HandleCompleteSample godoc
// @Summary      Complete an evaluated sample
// @Tags         samples
// @Produce      json
// @Param        sampleID   path       int  true  "sample ID"
// @Success      200      {object}   domain.ProductSample
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /samples/{sampleID}/complete [post]
func (h *SampleHandler) HandleCompleteSample(ctx *gin.Context) {
	h.transition(ctx, "v1.HandleCompleteSample", func(c context.Context, id uint) (domain.ProductSample, error) {
		return h.svc.CompleteSample(c, id)
	})
}

// HandleScoreSample godoc
// @Summary      Aggregate the submitted evaluations into a final score
// @Tags         samples
// @Produce      json
// @Param        sampleID   path       int  true  "sample ID"
// @Success      200      {object}   domain.ProductSample
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /samples/{sampleID}/score [post]
func (h *SampleHandler) HandleScoreSample(ctx *gin.Context) {
	sampleID, err := parseIDParam(ctx, "sampleID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	sample, err := h.scoringSvc.ScoreSample(ctx.Request.Context(), sampleID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSampleNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSampleNotFound))
		case errors.Is(err, service.ErrSampleLocked):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrNoUsableEvaluations):
			response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
		case errors.Is(err, service.ErrInvalidTransition):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleScoreSample -> h.scoringSvc.ScoreSample -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, sample)
}

func (h *SampleHandler) transition(ctx *gin.Context, op string, fn func(context.Context, uint) (domain.ProductSample, error)) {
	sampleID, err := parseIDParam(ctx, "sampleID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	sample, err := fn(ctx.Request.Context(), sampleID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSampleNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSampleNotFound))
		case errors.Is(err, service.ErrInvalidTransition):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, domain.ErrExclusionReasonRequired):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("%v -> %w", op, err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, sample)
}
