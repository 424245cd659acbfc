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

type MenuHandler struct {
	menuService  service.MenuService
	pivotService service.PivotService
}

func NewMenuHandler(menuService service.MenuService, pivotService service.PivotService) *MenuHandler {
	return &MenuHandler{menuService: menuService, pivotService: pivotService}
}

func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup) {
	menus := router.Group("/api/menus")
	{
		menus.GET("", h.Search)
		menus.GET("/:slug", h.GetBySlug)
	}

	router.GET("/api/categories", h.ListCategories)
	router.GET("/api/ingredients", h.ListIngredients)
	router.GET("/api/diet-claims", h.ListDietClaims)

	seller := router.Group("/api/seller/menus")
	seller.Use(middleware.RequireRole(model.RoleSeller, model.RoleAdmin))
	{
		seller.GET("", h.Mine)
		seller.POST("", h.Create)
		seller.PUT("/:id", h.Update)
		seller.DELETE("/:id", h.Delete)
	}
}

// Search lists approved menus with optional keyword and category filters
// @Summary  Browse menus
// @Tags     menus
// @Produce  json
// @Param    keyword query string false "name substring"
// @Param    category_id query string false "category filter"
// @Success  200 {object} response.Paged
// @Router   /api/menus [get]
func (h *MenuHandler) Search(c *gin.Context) {
	params := pagination.Parse(c)
	menus, total, err := h.menuService.Search(c.Request.Context(), service.MenuSearchRequest{
		Keyword:    c.Query("keyword"),
		CategoryID: c.Query("category_id"),
		Page:       params.Page,
		Limit:      params.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.List(http.StatusOK, menus, total, params.Page, params.Limit))
}

// GetBySlug returns a hydrated menu detail
// @Summary  Menu detail
// @Tags     menus
// @Produce  json
// @Param    slug path string true "menu slug"
// @Success  200 {object} response.Response
// @Router   /api/menus/{slug} [get]
func (h *MenuHandler) GetBySlug(c *gin.Context) {
	menu, err := h.menuService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, menu))
}

// ListCategories returns all menu categories
// @Summary  Menu categories
// @Tags     menus
// @Produce  json
// @Success  200 {object} response.Response
// @Router   /api/categories [get]
func (h *MenuHandler) ListCategories(c *gin.Context) {
	categories, err := h.menuService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, categories))
}

// ListIngredients returns the ingredient reference table
// @Summary  Ingredients
// @Tags     menus
// @Produce  json
// @Success  200 {object} response.Paged
// @Router   /api/ingredients [get]
func (h *MenuHandler) ListIngredients(c *gin.Context) {
	params := pagination.Parse(c)
	ingredients, total, err := h.pivotService.ListIngredients(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.List(http.StatusOK, ingredients, total, params.Page, params.Limit))
}

// ListDietClaims returns the diet claim reference table
// @Summary  Diet claims
// @Tags     menus
// @Produce  json
// @Success  200 {object} response.Paged
// @Router   /api/diet-claims [get]
func (h *MenuHandler) ListDietClaims(c *gin.Context) {
	params := pagination.Parse(c)
	claims, total, err := h.pivotService.ListDietClaims(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.List(http.StatusOK, claims, total, params.Page, params.Limit))
}

// Mine lists the seller's own menus
// @Summary  Own menus
// @Tags     seller
// @Security BearerAuth
// @Produce  json
// @Success  200 {object} response.Paged
// @Router   /api/seller/menus [get]
func (h *MenuHandler) Mine(c *gin.Context) {
	params := pagination.Parse(c)
	menus, total, err := h.menuService.Mine(c.Request.Context(), c.GetString("userID"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.List(http.StatusOK, menus, total, params.Page, params.Limit))
}

// Create adds a menu to the seller's restaurant
// @Summary  Create menu
// @Tags     seller
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    body body service.MenuPayload true "menu payload"
// @Success  201 {object} response.Response
// @Router   /api/seller/menus [post]
func (h *MenuHandler) Create(c *gin.Context) {
	var req service.MenuPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	menu, err := h.menuService.Create(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, menu))
}

// Update replaces a menu's fields and associations
// @Summary  Update menu
// @Tags     seller
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id path string true "menu id"
// @Param    body body service.MenuPayload true "menu payload"
// @Success  200 {object} response.Response
// @Router   /api/seller/menus/{id} [put]
func (h *MenuHandler) Update(c *gin.Context) {
	var req service.MenuPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	menu, err := h.menuService.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, menu))
}

// Delete removes a menu
// @Summary  Delete menu
// @Tags     seller
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "menu id"
// @Success  200 {object} response.Response
// @Router   /api/seller/menus/{id} [delete]
func (h *MenuHandler) Delete(c *gin.Context) {
	if err := h.menuService.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
