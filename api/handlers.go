package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"group-chat/auth"
	"group-chat/domain"
	"group-chat/services"
	"group-chat/validation"

	"github.com/gin-gonic/gin"
)

// Handler translates HTTP requests into service calls. It holds no rules of
// its own beyond parsing.
type Handler struct {
	groups   services.IGroupService
	members  services.IMembershipService
	messages services.IMessageService
	log      *slog.Logger
}

func NewHandler(groups services.IGroupService, members services.IMembershipService, messages services.IMessageService, log *slog.Logger) *Handler {
	return &Handler{groups: groups, members: members, messages: messages, log: log}
}

func (h *Handler) CreateGroup(c *gin.Context) {
	var request validation.CreateGroupRequest
	if !h.bind(c, &request) {
		return
	}
	group, err := h.groups.CreateGroup(c.Request.Context(), auth.UserID(c), request)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusCreated, group)
}

func (h *Handler) ListMyGroups(c *gin.Context) {
	groups, err := h.groups.ListMyGroups(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, groups)
}

func (h *Handler) GetGroup(c *gin.Context) {
	details, err := h.groups.GetGroup(c.Request.Context(), c.Param("groupId"), auth.UserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, details)
}

func (h *Handler) UpdateGroup(c *gin.Context) {
	var request validation.UpdateGroupRequest
	if !h.bind(c, &request) {
		return
	}
	group, err := h.groups.UpdateGroup(c.Request.Context(), c.Param("groupId"), auth.UserID(c), request)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, group)
}

func (h *Handler) ToggleAdminOnly(c *gin.Context) {
	group, err := h.groups.ToggleAdminOnly(c.Request.Context(), c.Param("groupId"), auth.UserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"isAdminOnly": group.IsAdminOnly})
}

func (h *Handler) AddMember(c *gin.Context) {
	var request validation.AddMemberRequest
	if !h.bind(c, &request) {
		return
	}
	if err := validation.Validate(&request); err != nil {
		writeError(c, h.log, err)
		return
	}
	member, err := h.members.AddMember(c.Request.Context(), c.Param("groupId"), auth.UserID(c), request.UserID, domain.Role(request.Role))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusCreated, member)
}

func (h *Handler) RemoveMember(c *gin.Context) {
	if err := h.members.RemoveMember(c.Request.Context(), c.Param("groupId"), c.Param("userId"), auth.UserID(c)); err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"removed": c.Param("userId")})
}

func (h *Handler) UpdateRole(c *gin.Context) {
	var request validation.UpdateRoleRequest
	if !h.bind(c, &request) {
		return
	}
	if err := validation.Validate(&request); err != nil {
		writeError(c, h.log, err)
		return
	}
	member, err := h.members.UpdateRole(c.Request.Context(), c.Param("groupId"), auth.UserID(c), c.Param("userId"), domain.Role(request.Role))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, member)
}

func (h *Handler) LeaveGroup(c *gin.Context) {
	if err := h.members.LeaveGroup(c.Request.Context(), c.Param("groupId"), auth.UserID(c)); err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"left": c.Param("groupId")})
}

// MuteMember accepts an empty body for an indefinite mute.
func (h *Handler) MuteMember(c *gin.Context) {
	var request validation.MuteRequest
	if c.Request.ContentLength != 0 && !h.bind(c, &request) {
		return
	}
	member, err := h.members.MuteMember(c.Request.Context(), c.Param("groupId"), auth.UserID(c), c.Param("userId"), request.Minutes, request.Reason)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, member)
}

func (h *Handler) UnmuteMember(c *gin.Context) {
	member, err := h.members.UnmuteMember(c.Request.Context(), c.Param("groupId"), auth.UserID(c), c.Param("userId"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, member)
}

func (h *Handler) SendMessage(c *gin.Context) {
	var request validation.SendMessageRequest
	if !h.bind(c, &request) {
		return
	}
	message, err := h.messages.Send(c.Request.Context(), c.Param("groupId"), auth.UserID(c), request)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusCreated, message)
}

// ListMessages reads ?limit (1..100, default 50) and ?before (RFC 3339).
func (h *Handler) ListMessages(c *gin.Context) {
	limit, err := intQuery(c, "limit")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	var before *time.Time
	if raw := c.Query("before"); raw != "" {
		at, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			writeError(c, h.log, validation.Invalid("before", "must be an RFC 3339 timestamp"))
			return
		}
		before = &at
	}
	page, err := h.messages.ListMessages(c.Request.Context(), c.Param("groupId"), auth.UserID(c), limit, before)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, page)
}

func (h *Handler) SearchMessages(c *gin.Context) {
	limit, err := intQuery(c, "limit")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	messages, err := h.messages.Search(c.Request.Context(), c.Param("groupId"), auth.UserID(c), c.Query("q"), limit)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, messages)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	count, err := h.messages.UnreadCount(c.Request.Context(), c.Param("groupId"), auth.UserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"unreadCount": count})
}

func (h *Handler) MarkRead(c *gin.Context) {
	message, err := h.messages.MarkRead(c.Request.Context(), c.Param("messageId"), auth.UserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, message)
}

func (h *Handler) DeleteMessage(c *gin.Context) {
	message, err := h.messages.SoftDelete(c.Request.Context(), c.Param("messageId"), auth.UserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, message)
}

func (h *Handler) bind(c *gin.Context, request any) bool {
	if err := c.ShouldBindJSON(request); err != nil {
		writeError(c, h.log, validation.Invalid("body", "malformed JSON: "+err.Error()))
		return false
	}
	return true
}

// intQuery returns 0 when the parameter is absent so services apply defaults.
func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, validation.Invalid(name, "must be a positive integer")
	}
	return value, nil
}
