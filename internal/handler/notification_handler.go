package handler

import (
	"net/http"

	"rasosehat-backend/internal/middleware"
	"rasosehat-backend/internal/service"
	"rasosehat-backend/pkg/pagination"
	"rasosehat-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/api/notifications")
	notifications.Use(middleware.RequireAuth())
	{
		notifications.GET("", h.List)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.PUT("/read-all", h.MarkAllRead)
		notifications.PUT("/:id/read", h.MarkRead)
	}
}

// List returns the caller's notifications, newest first
// @Summary  List notifications
// @Tags     notifications
// @Security BearerAuth
// @Produce  json
// @Success  200 {object} response.Paged
// @Router   /api/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	params := pagination.Parse(c)
	notifications, total, err := h.notificationService.List(
		c.Request.Context(), c.GetString("userID"), c.GetString("userEmail"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.List(http.StatusOK, notifications, total, params.Page, params.Limit))
}

// UnreadCount returns the caller's unread notification count
// @Summary  Unread notification count
// @Tags     notifications
// @Security BearerAuth
// @Produce  json
// @Success  200 {object} response.Response
// @Router   /api/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.UnreadCount(
		c.Request.Context(), c.GetString("userID"), c.GetString("userEmail"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"unread": count}))
}

// MarkRead marks one notification read
// @Summary  Mark notification read
// @Tags     notifications
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "notification id"
// @Success  200 {object} response.Response
// @Router   /api/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	err := h.notificationService.MarkRead(
		c.Request.Context(), c.Param("id"), c.GetString("userID"), c.GetString("userEmail"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"read": true}))
}

// MarkAllRead marks every unread notification of the caller read
// @Summary  Mark all notifications read
// @Tags     notifications
// @Security BearerAuth
// @Produce  json
// @Success  200 {object} response.Response
// @Router   /api/notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	affected, err := h.notificationService.MarkAllRead(
		c.Request.Context(), c.GetString("userID"), c.GetString("userEmail"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"marked": affected}))
}
