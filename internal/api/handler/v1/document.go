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

type DocumentService interface {
	CreateDocument(ctx context.Context, kind domain.DocumentKind, sampleID, userID uint) (domain.ResultDocument, error)
	CreateNewVersion(ctx context.Context, documentID, userID uint) (domain.ResultDocument, error)
	GetDocument(ctx context.Context, id uint) (domain.ResultDocument, error)
	GetVersionChain(ctx context.Context, id uint) ([]domain.ResultDocument, error)
	GenerateDocument(ctx context.Context, id uint) (domain.ResultDocument, error)
	SendDocument(ctx context.Context, id uint) (domain.ResultDocument, error)
	AcknowledgeDocument(ctx context.Context, id uint) (domain.ResultDocument, error)
}

type DocumentHandler struct {
	svc DocumentService
}

func NewDocumentHandler(svc DocumentService) *DocumentHandler {
	return &DocumentHandler{
		svc: svc,
	}
}

// HandleCreateDocument godoc
// @Summary      Create version 1 of a result document for a scored sample
// @Tags         documents
// @Produce      json
// @Param        request   body      request.CreateDocumentRequest true "request body"
// @Success      201      {object}   domain.ResultDocument
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /documents [post]
func (h *DocumentHandler) HandleCreateDocument(ctx *gin.Context) {
	req := request.CreateDocumentRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	userID := ctx.GetUint(middleware.CtxKeyUserID)

	document, err := h.svc.CreateDocument(ctx.Request.Context(), domain.DocumentKind(req.Kind), req.SampleID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSampleNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSampleNotFound))
		case errors.Is(err, service.ErrSampleNotScored):
			response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
		default:
			err = fmt.Errorf("v1.HandleCreateDocument -> h.svc.CreateDocument -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, document)
}

// HandleCreateNewVersion godoc
// @Summary      Append the next version of a result document
// @Tags         documents
// @Produce      json
// @Param        documentID   path       int  true  "document ID"
// @Success      201      {object}   domain.ResultDocument
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /documents/{documentID}/versions [post]
func (h *DocumentHandler) HandleCreateNewVersion(ctx *gin.Context) {
	documentID, err := parseIDParam(ctx, "documentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	userID := ctx.GetUint(middleware.CtxKeyUserID)

	document, err := h.svc.CreateNewVersion(ctx.Request.Context(), documentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrDocumentNotFound))
		case errors.Is(err, service.ErrSampleNotScored):
			response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
		case errors.Is(err, service.ErrDuplicateVersion):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleCreateNewVersion -> h.svc.CreateNewVersion -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, document)
}

// HandleGetDocument godoc
// @Summary      Get a result document by ID
// @Tags         documents
// @Produce      json
// @Param        documentID   path       int  true  "document ID"
// @Success      200      {object}   domain.ResultDocument
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /documents/{documentID} [get]
func (h *DocumentHandler) HandleGetDocument(ctx *gin.Context) {
	documentID, err := parseIDParam(ctx, "documentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	document, err := h.svc.GetDocument(ctx.Request.Context(), documentID)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrDocumentNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetDocument -> h.svc.GetDocument -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, document)
}

// HandleGetVersionChain godoc
// @Summary      List the version chain of a document, latest first
// @Tags         documents
// @Produce      json
// @Param        documentID   path       int  true  "document ID"
// @Success      200      {array}    domain.ResultDocument
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /documents/{documentID}/versions [get]
func (h *DocumentHandler) HandleGetVersionChain(ctx *gin.Context) {
	documentID, err := parseIDParam(ctx, "documentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	chain, err := h.svc.GetVersionChain(ctx.Request.Context(), documentID)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrDocumentNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetVersionChain -> h.svc.GetVersionChain -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, chain)
}

// HandleGenerateDocument godoc
// @Summary      Generate a draft document
// @Tags         documents
// @Produce      json
// @Param        documentID   path       int  true  "document ID"
// @Success      200      {object}   domain.ResultDocument
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /documents/{documentID}/generate [post]
func (h *DocumentHandler) HandleGenerateDocument(ctx *gin.Context) {
	h.transition(ctx, "v1.HandleGenerateDocument", h.svc.GenerateDocument)
}

// HandleSendDocument godoc
// @Summary      Send the latest version of a document to the applicant
// @Tags         documents
// @Produce      json
// @Param        documentID   path       int  true  "document ID"
// @Success      200      {object}   domain.ResultDocument
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /documents/{documentID}/send [post]
func (h *DocumentHandler) HandleSendDocument(ctx *gin.Context) {
	h.transition(ctx, "v1.HandleSendDocument", h.svc.SendDocument)
}

// HandleAcknowledgeDocument godoc
// @Summary      Acknowledge receipt of a sent document
// @Tags         documents
// @Produce      json
// @Param        documentID   path       int  true  "document ID"
// @Success      200      {object}   domain.ResultDocument
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /documents/{documentID}/acknowledge [post]
func (h *DocumentHandler) HandleAcknowledgeDocument(ctx *gin.Context) {
	h.transition(ctx, "v1.HandleAcknowledgeDocument", h.svc.AcknowledgeDocument)
}

func (h *DocumentHandler) transition(ctx *gin.Context, op string, fn func(context.Context, uint) (domain.ResultDocument, error)) {
	documentID, err := parseIDParam(ctx, "documentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	document, err := fn(ctx.Request.Context(), documentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrDocumentNotFound))
		case errors.Is(err, service.ErrNotLatestVersion),
			errors.Is(err, domain.ErrInvalidDocumentTransition):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("%v -> %w", op, err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, document)
}
