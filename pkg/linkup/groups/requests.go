package groups

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linkup-app/linkup/pkg/linkup/auth"
	"github.com/linkup-app/linkup/pkg/linkup/httperr"
	"github.com/linkup-app/linkup/pkg/linkup/models"
	"gorm.io/gorm"
)

// RequestResponse represents a join request in API responses
type RequestResponse struct {
	ID         uint            `json:"id"`
	GroupID    uint            `json:"groupId"`
	SenderID   uint            `json:"senderId"`
	Accepted   *bool           `json:"accepted"`
	AcceptTime *time.Time      `json:"acceptTime"`
	Sender     *models.Profile `json:"sender,omitempty"`
}

func requestResponse(r *models.GroupRequest) RequestResponse {
	resp := RequestResponse{
		ID:         r.ID,
		GroupID:    r.GroupID,
		SenderID:   r.SenderID,
		Accepted:   r.Accepted,
		AcceptTime: r.AcceptTime,
	}
	if r.Sender.ID != 0 {
		p := r.Sender.Profile()
		resp.Sender = &p
	}
	return resp
}

// SendRequest creates a pending join request for the authenticated user
// @Summary Send a join request
// @Tags requests
// @Produce json
// @Param id path int true "Group ID"
// @Success 201 {object} map[string]RequestResponse
// @Failure 400 {object} map[string]string "Already a member or request already sent"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{id}/request [post]
func (h *Handler) SendRequest(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	group, err := h.loadGroup(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if group.CreatorID == userID {
		httperr.Abort(c, httperr.BadRequest("You Can't Request To Join Your Own Group"))
		return
	}

	if err := h.db.Where("group_id = ? AND user_id = ?", group.ID, userID).
		First(&models.GroupMembership{}).Error; err == nil {
		httperr.Abort(c, httperr.BadRequest("You Are Already A Member"))
		return
	}
	if err := h.db.Where("group_id = ? AND sender_id = ?", group.ID, userID).
		First(&models.GroupRequest{}).Error; err == nil {
		httperr.Abort(c, httperr.BadRequest("Request Already Sent"))
		return
	}

	request := models.GroupRequest{GroupID: group.ID, SenderID: userID}
	if err := h.db.Create(&request).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": requestResponse(&request)})
}

// ListRequests returns a group's pending requests with sender profiles (creator only)
// @Summary List pending join requests
// @Tags requests
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} map[string][]RequestResponse
// @Failure 403 {object} map[string]string "Not the creator"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{id}/request/all [get]
func (h *Handler) ListRequests(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	group, err := h.loadGroup(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if err := requireCreator(group, userID, "You Can't View This Group Requests"); err != nil {
		httperr.Abort(c, err)
		return
	}

	var pending []models.GroupRequest
	if err := h.db.Preload("Sender").
		Where("group_id = ? AND accepted IS NULL", group.ID).
		Find(&pending).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	requests := make([]RequestResponse, len(pending))
	for i := range pending {
		requests[i] = requestResponse(&pending[i])
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// AcceptRequest accepts a pending join request (creator only)
// @Summary Accept a join request
// @Description Mark the request accepted and insert the membership row in one transaction. Accepting an already-accepted request is a no-op.
// @Tags requests
// @Produce json
// @Param id path int true "Group ID"
// @Param userId path int true "Sender's user ID"
// @Success 200 {object} map[string]RequestResponse
// @Failure 403 {object} map[string]string "Not the creator"
// @Failure 404 {object} map[string]string "Group or request not found"
// @Security BearerAuth
// @Router /groups/{id}/request/{userId}/accept [patch]
func (h *Handler) AcceptRequest(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	group, err := h.loadGroup(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if err := requireCreator(group, userID, "You Can't Respond To This Group Requests"); err != nil {
		httperr.Abort(c, err)
		return
	}

	senderID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Invalid User ID"))
		return
	}

	var request models.GroupRequest
	if err := h.db.Where("group_id = ? AND sender_id = ?", group.ID, senderID).
		First(&request).Error; err != nil {
		httperr.Abort(c, httperr.NotFound("Request Not Found"))
		return
	}

	if request.IsAccepted() {
		// Idempotent: state is untouched, the membership already exists.
		c.JSON(http.StatusOK, gin.H{"msg": "User Already A Member"})
		return
	}

	accepted := true
	now := time.Now()
	request.Accepted = &accepted
	request.AcceptTime = &now

	// One transaction across the request update and the membership insert
	// so a failure cannot leave an accepted request without a membership.
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&request).Error; err != nil {
			return err
		}
		membership := models.GroupMembership{GroupID: group.ID, UserID: request.SenderID}
		return tx.Create(&membership).Error
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Accepted", "request": requestResponse(&request)})
}

// DeclineRequest deletes a join request (creator only)
// @Summary Decline a join request
// @Description Delete the request row unconditionally. Declining an already-accepted request erases the acceptance record but leaves the membership in place.
// @Tags requests
// @Produce json
// @Param id path int true "Group ID"
// @Param userId path int true "Sender's user ID"
// @Success 200 {object} map[string]RequestResponse
// @Failure 403 {object} map[string]string "Not the creator"
// @Failure 404 {object} map[string]string "Group or request not found"
// @Security BearerAuth
// @Router /groups/{id}/request/{userId}/decline [delete]
func (h *Handler) DeclineRequest(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	group, err := h.loadGroup(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if err := requireCreator(group, userID, "You Can't Respond To This Group Requests"); err != nil {
		httperr.Abort(c, err)
		return
	}

	senderID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Invalid User ID"))
		return
	}

	var request models.GroupRequest
	if err := h.db.Where("group_id = ? AND sender_id = ?", group.ID, senderID).
		First(&request).Error; err != nil {
		httperr.Abort(c, httperr.NotFound("Request Not Found"))
		return
	}

	if err := h.db.Delete(&models.GroupRequest{}, request.ID).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Request Declined", "request": requestResponse(&request)})
}

// CancelRequest lets the sender withdraw their own pending request
// @Summary Cancel a join request
// @Tags requests
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]RequestResponse
// @Failure 400 {object} map[string]string "Request already accepted"
// @Failure 404 {object} map[string]string "No request to this group"
// @Security BearerAuth
// @Router /groups/{id}/request/cancel [delete]
func (h *Handler) CancelRequest(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Invalid Group ID"))
		return
	}

	var request models.GroupRequest
	if err := h.db.Where("group_id = ? AND sender_id = ?", groupID, userID).
		First(&request).Error; err != nil {
		httperr.Abort(c, httperr.NotFound("No Request Found To This Group"))
		return
	}

	if request.SenderID != userID {
		httperr.Abort(c, httperr.Forbidden("You Can't Cancel This Request"))
		return
	}
	if request.IsAccepted() {
		httperr.Abort(c, httperr.BadRequest("Request Already Accepted Try To Leave The Group"))
		return
	}

	if err := h.db.Delete(&models.GroupRequest{}, request.ID).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": requestResponse(&request)})
}

// RegisterRequestRoutes registers join request routes
func (h *Handler) RegisterRequestRoutes(rg *gin.RouterGroup) {
	rg.POST("/:id/request", h.SendRequest)
	rg.GET("/:id/request/all", h.ListRequests)
	rg.PATCH("/:id/request/:userId/accept", h.AcceptRequest)
	rg.DELETE("/:id/request/:userId/decline", h.DeclineRequest)
	rg.DELETE("/:id/request/cancel", h.CancelRequest)
}
