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

type RestaurantHandler struct {
	restaurantService service.RestaurantService
}

func NewRestaurantHandler(restaurantService service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService}
}

func (h *RestaurantHandler) RegisterRoutes(router *gin.RouterGroup) {
	restaurants := router.Group("/api/restaurants")
	{
		restaurants.POST("", middleware.RequireAuth(), h.Create)
		restaurants.GET("/me", middleware.RequireAuth(), h.Mine)
		restaurants.PUT("/profile", middleware.RequireAuth(), h.UpdateProfile)
		restaurants.PUT("/documents", middleware.RequireAuth(), h.UpdateDocuments)
		restaurants.POST("/submit", middleware.RequireAuth(), h.Submit)
		restaurants.GET("/:id", h.GetByID)
	}

	admin := router.Group("/api/admin/restaurants")
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	{
		admin.GET("", h.AdminList)
	}
}

// Create starts restaurant registration with the step-1 skeleton
// @Summary  Create restaurant (step 1)
// @Tags     restaurants
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    body body service.CreateRestaurantRequest true "name and address"
// @Success  201 {object} response.Response
// @Router   /api/restaurants [post]
func (h *RestaurantHandler) Create(c *gin.Context) {
	var req service.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	restaurant, err := h.restaurantService.Create(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, restaurant))
}

// UpdateProfile fills the step-2 profile fields
// @Summary  Update restaurant profile (step 2)
// @Tags     restaurants
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    body body service.UpdateRestaurantProfileRequest true "profile fields"
// @Success  200 {object} response.Response
// @Router   /api/restaurants/profile [put]
func (h *RestaurantHandler) UpdateProfile(c *gin.Context) {
	var req service.UpdateRestaurantProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	restaurant, err := h.restaurantService.UpdateProfile(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, restaurant))
}

// UpdateDocuments attaches the step-3 documents bundle
// @Summary  Update restaurant documents (step 3)
// @Tags     restaurants
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    body body service.UpdateRestaurantDocumentsRequest true "documents bundle"
// @Success  200 {object} response.Response
// @Router   /api/restaurants/documents [put]
func (h *RestaurantHandler) UpdateDocuments(c *gin.Context) {
	var req service.UpdateRestaurantDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	restaurant, err := h.restaurantService.UpdateDocuments(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, restaurant))
}

// Submit moves the restaurant into the verification queue
// @Summary  Submit restaurant for verification
// @Tags     restaurants
// @Security BearerAuth
// @Produce  json
// @Success  200 {object} response.Response
// @Router   /api/restaurants/submit [post]
func (h *RestaurantHandler) Submit(c *gin.Context) {
	restaurant, err := h.restaurantService.Submit(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, restaurant))
}

// Mine returns the caller's restaurant
// @Summary  Own restaurant
// @Tags     restaurants
// @Security BearerAuth
// @Produce  json
// @Success  200 {object} response.Response
// @Router   /api/restaurants/me [get]
func (h *RestaurantHandler) Mine(c *gin.Context) {
	restaurant, err := h.restaurantService.Mine(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, restaurant))
}

// GetByID returns a restaurant by id
// @Summary  Restaurant detail
// @Tags     restaurants
// @Produce  json
// @Param    id path string true "restaurant id"
// @Success  200 {object} response.Response
// @Router   /api/restaurants/{id} [get]
func (h *RestaurantHandler) GetByID(c *gin.Context) {
	restaurant, err := h.restaurantService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, restaurant))
}

// AdminList returns restaurants filtered by status
// @Summary  List restaurants (admin)
// @Tags     admin
// @Security BearerAuth
// @Produce  json
// @Param    status query string false "status filter (menunggu/disetujui/ditolak)"
// @Success  200 {object} response.Paged
// @Router   /api/admin/restaurants [get]
func (h *RestaurantHandler) AdminList(c *gin.Context) {
	params := pagination.Parse(c)
	restaurants, total, err := h.restaurantService.ListByStatus(c.Request.Context(), c.Query("status"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.List(http.StatusOK, restaurants, total, params.Page, params.Limit))
}
