package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prodexpert/expertise-api/internal/api/handler/v1/request"
	"github.com/prodexpert/expertise-api/internal/api/handler/v1/response"
	"github.com/prodexpert/expertise-api/internal/api/middleware"
	"github.com/prodexpert/expertise-api/internal/domain"
	"github.com/prodexpert/expertise-api/internal/service"
)

type EventService interface {
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	GetEvents(ctx context.Context) ([]domain.Event, error)
	AddCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	AddCriterion(ctx context.Context, criterion domain.EvaluationCriterion) (domain.EvaluationCriterion, error)
	GetCriteria(ctx context.Context, eventID uint, commissionID *uint) ([]domain.EvaluationCriterion, error)
	SetScoringPolicy(ctx context.Context, policy domain.ScoringPolicy) (domain.ScoringPolicy, error)
	GetScoringPolicy(ctx context.Context, eventID uint) (domain.ScoringPolicy, error)
}

type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{
		svc: svc,
	}
}

// HandleCreateEvent godoc
// @Summary      Create an evaluation event
// @Tags         events
// @Produce      json
// @Param        request   body      request.CreateEventRequest true "request body"
// @Success      201      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events [post]
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	req := request.CreateEventRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), domain.Event{
		Name:        req.Name,
		Date:        req.Date,
		Location:    req.Location,
		Description: req.Description,
		OrganizerID: ctx.GetUint(middleware.CtxKeyUserID),
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleGetEvents godoc
// @Summary      List all events
// @Tags         events
// @Produce      json
// @Success      200      {array}    domain.Event
// @Failure      500      {object}   response.Err
// @Router       /events [get]
func (h *EventHandler) HandleGetEvents(ctx *gin.Context) {
	events, err := h.svc.GetEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEvents -> h.svc.GetEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventID   path       int  true  "event ID"
// @Success      200      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleAddCategory godoc
// @Summary      Add a product category to an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Param        request   body      request.CreateCategoryRequest true "request body"
// @Success      201      {object}   domain.Category
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/categories [post]
func (h *EventHandler) HandleAddCategory(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.CreateCategoryRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	category, err := h.svc.AddCategory(ctx.Request.Context(), domain.Category{
		EventID: eventID,
		Name:    req.Name,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleAddCategory -> h.svc.AddCategory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, category)
}

// HandleAddCriterion godoc
// @Summary      Add an evaluation criterion to an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Param        request   body      request.CreateCriterionRequest true "request body"
// @Success      201      {object}   domain.EvaluationCriterion
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/criteria [post]
func (h *EventHandler) HandleAddCriterion(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.CreateCriterionRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	criterion, err := h.svc.AddCriterion(ctx.Request.Context(), domain.EvaluationCriterion{
		EventID:      eventID,
		CommissionID: req.CommissionID,
		Name:         req.Name,
		Weight:       req.Weight,
		MinScore:     req.MinScore,
		MaxScore:     req.MaxScore,
		IsRequired:   req.IsRequired,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleAddCriterion -> h.svc.AddCriterion -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, criterion)
}

// HandleGetCriteria godoc
// @Summary      List the evaluation criteria of an event
// @Tags         events
// @Produce      json
// @Param        eventID        path       int  true   "event ID"
// @Param        commission_id  query      int  false  "restrict to criteria visible to one commission"
// @Success      200      {array}    domain.EvaluationCriterion
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/criteria [get]
func (h *EventHandler) HandleGetCriteria(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var commissionID *uint
	if raw := ctx.Query("commission_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid commission_id %q", raw)))

			return
		}

		id := uint(parsed)
		commissionID = &id
	}

	criteria, err := h.svc.GetCriteria(ctx.Request.Context(), eventID, commissionID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetCriteria -> h.svc.GetCriteria -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, criteria)
}

// HandleGetScoringPolicy godoc
// @Summary      Get the scoring policy of an event
// @Tags         events
// @Produce      json
// @Param        eventID   path       int  true  "event ID"
// @Success      200      {object}   domain.ScoringPolicy
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/scoring-policy [get]
func (h *EventHandler) HandleGetScoringPolicy(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	policy, err := h.svc.GetScoringPolicy(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetScoringPolicy -> h.svc.GetScoringPolicy -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, policy)
}

// HandleUpdateScoringPolicy godoc
// @Summary      Update the scoring policy of an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Param        request   body      request.UpdateScoringPolicyRequest true "request body"
// @Success      200      {object}   domain.ScoringPolicy
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/scoring-policy [put]
func (h *EventHandler) HandleUpdateScoringPolicy(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateScoringPolicyRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	policy, err := h.svc.SetScoringPolicy(ctx.Request.Context(), domain.ScoringPolicy{
		EventID:          eventID,
		TrimFromCount:    req.TrimFromCount,
		TrimCountHigh:    req.TrimCountHigh,
		TrimCountLow:     req.TrimCountLow,
		RoundingDecimals: req.RoundingDecimals,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateScoringPolicy -> h.svc.SetScoringPolicy -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, policy)
}
