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

type CommissionService interface {
	CreateCommission(ctx context.Context, commission domain.Commission) (domain.Commission, error)
	GetCommission(ctx context.Context, id uint) (domain.Commission, error)
	AddMember(ctx context.Context, commissionID uint, member domain.CommissionMember) (domain.CommissionMember, error)
	ExcludeMember(ctx context.Context, commissionID, memberID uint, reason string) (domain.CommissionMember, error)
	AssignCategory(ctx context.Context, commissionID, categoryID uint) error
}

type CommissionHandler struct {
	svc CommissionService
}

func NewCommissionHandler(svc CommissionService) *CommissionHandler {
	return &CommissionHandler{
		svc: svc,
	}
}

// HandleCreateCommission godoc
// @Summary      Create a commission with its initial roster
// @Tags         commissions
// @Produce      json
// @Param        request   body      request.CreateCommissionRequest true "request body"
// @Success      201      {object}   domain.Commission
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /commissions [post]
func (h *CommissionHandler) HandleCreateCommission(ctx *gin.Context) {
	req := request.CreateCommissionRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	members := make([]domain.CommissionMember, 0, len(req.Members))
	for _, m := range req.Members {
		members = append(members, domain.CommissionMember{
			UserID: m.UserID,
			Role:   domain.CommissionRole(m.Role),
		})
	}

	commission, err := h.svc.CreateCommission(ctx.Request.Context(), domain.Commission{
		Name:    req.Name,
		Members: members,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidRoster) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateCommission -> h.svc.CreateCommission -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, commission)
}

// HandleGetCommission godoc
// @Summary      Get a commission with its roster
// @Tags         commissions
// @Produce      json
// @Param        commissionID   path       int  true  "commission ID"
// @Success      200      {object}   domain.Commission
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /commissions/{commissionID} [get]
func (h *CommissionHandler) HandleGetCommission(ctx *gin.Context) {
	commissionID, err := parseIDParam(ctx, "commissionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	commission, err := h.svc.GetCommission(ctx.Request.Context(), commissionID)
	if err != nil {
		if errors.Is(err, service.ErrCommissionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrCommissionNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetCommission -> h.svc.GetCommission -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, commission)
}

// HandleAddMember godoc
// @Summary      Add a member to a commission
// @Tags         commissions
// @Produce      json
// @Param        commissionID   path      int  true  "commission ID"
// @Param        request   body      request.AddMemberRequest true "request body"
// @Success      201      {object}   domain.CommissionMember
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /commissions/{commissionID}/members [post]
func (h *CommissionHandler) HandleAddMember(ctx *gin.Context) {
	commissionID, err := parseIDParam(ctx, "commissionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.AddMemberRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	member, err := h.svc.AddMember(ctx.Request.Context(), commissionID, domain.CommissionMember{
		UserID: req.UserID,
		Role:   domain.CommissionRole(req.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommissionNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrCommissionNotFound))
		case errors.Is(err, service.ErrInvalidRoster):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleAddMember -> h.svc.AddMember -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, member)
}

// HandleExcludeMember godoc
// @Summary      Exclude a member from a commission
// @Tags         commissions
// @Produce      json
// @Param        commissionID   path      int  true  "commission ID"
// @Param        memberID       path      int  true  "member ID"
// @Param        request   body      request.ExcludeMemberRequest true "request body"
// @Success      200      {object}   domain.CommissionMember
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /commissions/{commissionID}/members/{memberID}/exclude [post]
func (h *CommissionHandler) HandleExcludeMember(ctx *gin.Context) {
	commissionID, err := parseIDParam(ctx, "commissionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	memberID, err := parseIDParam(ctx, "memberID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.ExcludeMemberRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	member, err := h.svc.ExcludeMember(ctx.Request.Context(), commissionID, memberID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrMemberNotFound))
		case errors.Is(err, domain.ErrMemberAlreadyExcluded):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, domain.ErrExclusionReasonRequired):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleExcludeMember -> h.svc.ExcludeMember -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, member)
}

// HandleAssignCategory godoc
// @Summary      Assign a category to a commission
// @Tags         commissions
// @Produce      json
// @Param        commissionID   path      int  true  "commission ID"
// @Param        request   body      request.AssignCategoryRequest true "request body"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /commissions/{commissionID}/categories [post]
func (h *CommissionHandler) HandleAssignCategory(ctx *gin.Context) {
	commissionID, err := parseIDParam(ctx, "commissionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.AssignCategoryRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.AssignCategory(ctx.Request.Context(), commissionID, req.CategoryID); err != nil {
		if errors.Is(err, service.ErrCommissionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrCommissionNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleAssignCategory -> h.svc.AssignCategory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
