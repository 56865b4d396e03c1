package handler

import (
	"Flicker/internal/api/dto"
	"Flicker/internal/pkg/response"
	"Flicker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// UserOpsHandler 用户域信封入口：POST|GET /api/users?operation=xxx&json={...}
type UserOpsHandler struct {
	userSvc         service.UserService
	notificationSvc service.NotificationService
}

func NewUserOpsHandler(userSvc service.UserService, notificationSvc service.NotificationService) *UserOpsHandler {
	return &UserOpsHandler{
		userSvc:         userSvc,
		notificationSvc: notificationSvc,
	}
}

func (s *UserOpsHandler) Dispatch(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodPost {
		response.InvalidRequestMethod(c)
		return
	}

	operation := envelopeParam(c, "operation")
	jsonStr := envelopeParam(c, "json")
	if operation == "" || jsonStr == "" {
		response.MissingParameters(c)
		return
	}
	raw := []byte(jsonStr)

	switch operation {
	case "searchUser":
		s.searchUser(c, raw)
	case "getNotifications":
		s.getNotifications(c, raw)
	case "getUnreadCount":
		s.getUnreadCount(c, raw)
	case "markNotificationRead":
		s.markNotificationRead(c, raw)
	case "markAllNotificationsRead":
		s.markAllNotificationsRead(c, raw)
	default:
		response.InvalidOperation(c)
	}
}

func (s *UserOpsHandler) searchUser(c *gin.Context, raw []byte) {
	var req dto.UserSearchDTO
	if err := json.Unmarshal(raw, &req); err != nil {
		response.Error(c, err)
		return
	}

	users, err := s.userSvc.SearchUsers(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

func (s *UserOpsHandler) getNotifications(c *gin.Context, raw []byte) {
	var req struct {
		Page     int `json:"page"`
		PageSize int `json:"page_size"`
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		response.Error(c, err)
		return
	}

	userID := viewerID(c, raw)
	if userID == 0 {
		response.Error(c, service.ErrMissingFields)
		return
	}

	list, err := s.notificationSvc.GetNotificationList(c.Request.Context(), userID, req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *UserOpsHandler) getUnreadCount(c *gin.Context, raw []byte) {
	userID := viewerID(c, raw)
	if userID == 0 {
		response.Error(c, service.ErrMissingFields)
		return
	}

	count, err := s.notificationSvc.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, count)
}

func (s *UserOpsHandler) markNotificationRead(c *gin.Context, raw []byte) {
	var req dto.NotificationReadDTO
	if err := json.Unmarshal(raw, &req); err != nil {
		response.Error(c, err)
		return
	}
	if req.NotificationID == "" {
		response.Error(c, service.ErrMissingFields)
		return
	}

	userID := viewerID(c, raw)
	if userID == 0 {
		response.Error(c, service.ErrMissingFields)
		return
	}

	if err := s.notificationSvc.MarkRead(c.Request.Context(), userID, req.NotificationID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, true)
}

func (s *UserOpsHandler) markAllNotificationsRead(c *gin.Context, raw []byte) {
	userID := viewerID(c, raw)
	if userID == 0 {
		response.Error(c, service.ErrMissingFields)
		return
	}

	if err := s.notificationSvc.MarkAllRead(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, true)
}
