package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DaviCMachado/my-price-tracker/internal/apierror"
	"github.com/DaviCMachado/my-price-tracker/internal/service"
)

// ViewsHandler serves the read-only derived views (dashboard, product index,
// per-store comparison).
type ViewsHandler struct{ svc service.ViewService }

func NewViewsHandler(svc service.ViewService) *ViewsHandler {
	return &ViewsHandler{svc: svc}
}

// DashboardStats godoc
// @Summary  Global price statistics (count, mean, min, max)
// @Tags     views
// @Security BearerAuth
// @Success  200 {object} dto.StatsResponse
// @Router   /v1/dashboard/stats [get]
func (h *ViewsHandler) DashboardStats(c *gin.Context) {
	resp, err := h.svc.DashboardStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not compute stats"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ViewsHandler) ProductIndex(c *gin.Context) {
	resp, err := h.svc.ProductIndex(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list products"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Comparison godoc
// @Summary  Latest price per store for a product, cheapest first
// @Tags     views
// @Security BearerAuth
// @Param    product query string true "Exact product name"
// @Success  200 {object} dto.ComparisonResponse
// @Failure  400 {object} apierror.APIError
// @Router   /v1/products/comparison [get]
func (h *ViewsHandler) Comparison(c *gin.Context) {
	product := c.Query("product")
	if product == "" {
		c.JSON(http.StatusBadRequest, apierror.New("product query parameter required"))
		return
	}
	resp, err := h.svc.Comparison(c.Request.Context(), product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not compute comparison"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
