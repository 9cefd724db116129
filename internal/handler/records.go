package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DaviCMachado/my-price-tracker/internal/apierror"
	"github.com/DaviCMachado/my-price-tracker/internal/dto"
	"github.com/DaviCMachado/my-price-tracker/internal/middleware"
	"github.com/DaviCMachado/my-price-tracker/internal/service"
)

type RecordsHandler struct{ svc service.RecordService }

func NewRecordsHandler(svc service.RecordService) *RecordsHandler {
	return &RecordsHandler{svc: svc}
}

// Create godoc
// @Summary  Register a new price observation
// @Tags     records
// @Security BearerAuth
// @Param    body body dto.RecordDraftRequest true "Price record draft"
// @Success  201 {object} dto.RecordResponse
// @Failure  422 {object} apierror.ValidationError
// @Router   /v1/records [post]
func (h *RecordsHandler) Create(c *gin.Context) {
	var req dto.RecordDraftRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.OwnerID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary  List price records, newest first
// @Tags     records
// @Security BearerAuth
// @Param    search query string false "Case-insensitive product substring"
// @Param    page   query int    false "Page (default 1)"
// @Param    limit  query int    false "Page size (default 20, max 100)"
// @Success  200 {object} dto.RecordListResponse
// @Router   /v1/records [get]
func (h *RecordsHandler) List(c *gin.Context) {
	var filter dto.RecordFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list records"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EditDraft returns a record converted back to editable form state.
func (h *RecordsHandler) EditDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.EditDraft(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecordsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.RecordDraftRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), middleware.OwnerID(c), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecordsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.OwnerID(c), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
