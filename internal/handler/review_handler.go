package handler

import (
	"net/http"

	"rasosehat-backend/internal/middleware"
	"rasosehat-backend/internal/service"
	"rasosehat-backend/pkg/pagination"
	"rasosehat-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	menuService   service.MenuService
}

func NewReviewHandler(reviewService service.ReviewService, menuService service.MenuService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, menuService: menuService}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	menus := router.Group("/api/menus")
	{
		menus.GET("/:slug/reviews", h.ListByMenu)
		menus.POST("/:slug/reviews", middleware.RequireAuth(), h.Create)
	}
}

// Create submits a review for an approved menu
// @Summary  Review a menu
// @Tags     reviews
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    slug path string true "menu slug"
// @Param    body body service.CreateReviewRequest true "rating and comment"
// @Success  201 {object} response.Response
// @Router   /api/menus/{slug}/reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	var req service.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	menu, err := h.menuService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), c.GetString("userID"), menu.ID.String(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, review))
}

// ListByMenu lists reviews of a menu, newest first
// @Summary  Menu reviews
// @Tags     reviews
// @Produce  json
// @Param    slug path string true "menu slug"
// @Success  200 {object} response.Paged
// @Router   /api/menus/{slug}/reviews [get]
func (h *ReviewHandler) ListByMenu(c *gin.Context) {
	menu, err := h.menuService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	params := pagination.Parse(c)
	reviews, total, err := h.reviewService.ListByMenu(c.Request.Context(), menu.ID.String(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.List(http.StatusOK, reviews, total, params.Page, params.Limit))
}
