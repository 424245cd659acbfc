package handler

import (
	"net/http"

	"rasosehat-backend/internal/middleware"
	"rasosehat-backend/internal/model"
	"rasosehat-backend/internal/service"
	"rasosehat-backend/pkg/pagination"
	"rasosehat-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	verificationService service.VerificationService
}

func NewVerificationHandler(verificationService service.VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

type DecisionRequest struct {
	Decision string `json:"keputusan" binding:"required"`
	Note     string `json:"catatan"`
}

func (h *VerificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	{
		admin.PUT("/restaurants/:id/verify", h.DecideRestaurant)
		admin.GET("/restaurants/:id/verifications", h.RestaurantHistory)
		admin.PUT("/menus/:id/verify", h.DecideMenu)
		admin.GET("/menus/:id/verifications", h.MenuHistory)
	}
}

// DecideRestaurant approves or rejects a restaurant
// @Summary  Verify restaurant
// @Tags     admin
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id path string true "restaurant id"
// @Param    body body DecisionRequest true "decision (approve/reject or disetujui/ditolak) and optional note"
// @Success  200 {object} response.Response
// @Router   /api/admin/restaurants/{id}/verify [put]
func (h *VerificationHandler) DecideRestaurant(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	restaurant, err := h.verificationService.DecideRestaurant(
		c.Request.Context(), c.Param("id"), req.Decision, req.Note, c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, restaurant))
}

// DecideMenu approves or rejects a menu
// @Summary  Verify menu
// @Tags     admin
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id path string true "menu id"
// @Param    body body DecisionRequest true "decision and optional note"
// @Success  200 {object} response.Response
// @Router   /api/admin/menus/{id}/verify [put]
func (h *VerificationHandler) DecideMenu(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	menu, err := h.verificationService.DecideMenu(
		c.Request.Context(), c.Param("id"), req.Decision, req.Note, c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, menu))
}

// RestaurantHistory lists the verification audit trail of a restaurant
// @Summary  Restaurant verification history
// @Tags     admin
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "restaurant id"
// @Success  200 {object} response.Paged
// @Router   /api/admin/restaurants/{id}/verifications [get]
func (h *VerificationHandler) RestaurantHistory(c *gin.Context) {
	params := pagination.Parse(c)
	records, total, err := h.verificationService.RestaurantHistory(
		c.Request.Context(), c.Param("id"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.List(http.StatusOK, records, total, params.Page, params.Limit))
}

// MenuHistory lists the verification audit trail of a menu
// @Summary  Menu verification history
// @Tags     admin
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "menu id"
// @Success  200 {object} response.Paged
// @Router   /api/admin/menus/{id}/verifications [get]
func (h *VerificationHandler) MenuHistory(c *gin.Context) {
	params := pagination.Parse(c)
	records, total, err := h.verificationService.MenuHistory(
		c.Request.Context(), c.Param("id"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.List(http.StatusOK, records, total, params.Page, params.Limit))
}
