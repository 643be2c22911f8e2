package handler

import (
	"net/http"
	"strconv"

	"filmmatch/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// FriendHandler exposes the friend-request lifecycle and friend queries.
type FriendHandler struct {
	friends *service.FriendService
}

func NewFriendHandler(friends *service.FriendService) *FriendHandler {
	return &FriendHandler{friends: friends}
}

// SendRequestInput defines the structure for sending a friend request.
type SendRequestInput struct {
	ReceiverID uint   `json:"receiver_id" binding:"required"`
	Message    string `json:"message"`
}

// SendRequest godoc
// @Summary      Send friend request
// @Description  Sends a friend request to another user, with an optional message.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendRequestInput true "Request Info"
// @Success      201  {object}  map[string]uint "{"id": 1}"
// @Failure      400  {object}  ErrorResponse "Self request or duplicate pending request"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Receiver not found"
// @Router       /friend-requests [post]
func (h *FriendHandler) SendRequest(c *gin.Context) {
	var input SendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.friends.SendRequest(c.Request.Context(), currentUserID(c), input.ReceiverID, input.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": request.ID})
}

// GetFriendRequests godoc
// @Summary      Get pending friend requests
// @Description  Lists pending friend requests addressed to the current user.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} service.FriendRequestSummary
// @Failure      401 {object} ErrorResponse
// @Router       /friend-requests [get]
func (h *FriendHandler) GetFriendRequests(c *gin.Context) {
	requests, err := h.friends.Requests(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// AcceptRequest godoc
// @Summary      Accept friend request
// @Description  Accepts a pending friend request addressed to the current user.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Request ID"
// @Success      200 {object} map[string]string "{"message": "Request accepted"}"
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Request not found or already resolved"
// @Router       /friend-requests/{id}/accept [post]
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	if err := h.friends.Accept(c.Request.Context(), currentUserID(c), uint(requestID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request accepted"})
}

// DeclineRequest godoc
// @Summary      Decline friend request
// @Description  Declines a pending friend request addressed to the current user.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Request ID"
// @Success      200 {object} map[string]string "{"message": "Request declined"}"
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Request not found"
// @Router       /friend-requests/{id}/decline [post]
func (h *FriendHandler) DeclineRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	if err := h.friends.Decline(c.Request.Context(), currentUserID(c), uint(requestID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request declined"})
}

// GetFriends godoc
// @Summary      Get friends
// @Description  Lists the current user's friends.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} service.UserSummary
// @Failure      401 {object} ErrorResponse
// @Router       /friends [get]
func (h *FriendHandler) GetFriends(c *gin.Context) {
	friends, err := h.friends.Friends(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

// GetPossibleFriends godoc
// @Summary      Get possible friends
// @Description  Lists users the current user could befriend (no friendship, no pending request).
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} service.UserSummary
// @Failure      401 {object} ErrorResponse
// @Router       /friends/possible [get]
func (h *FriendHandler) GetPossibleFriends(c *gin.Context) {
	users, err := h.friends.PossibleFriends(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteFriend godoc
// @Summary      Remove a friend
// @Description  Ends the friendship between the current user and another user.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Friend User ID"
// @Success      200 {object} map[string]string "{"message": "Friend removed"}"
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Friendship not found"
// @Router       /friends/{id} [delete]
func (h *FriendHandler) DeleteFriend(c *gin.Context) {
	friendID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.friends.DeleteFriend(c.Request.Context(), currentUserID(c), uint(friendID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
}
