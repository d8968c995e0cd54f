package groups

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linkup-app/linkup/pkg/linkup/auth"
	"github.com/linkup-app/linkup/pkg/linkup/httperr"
	"github.com/linkup-app/linkup/pkg/linkup/models"
)

// ListMembers returns the members of a group with their public profiles.
// Visible to the creator and to members.
func (h *Handler) ListMembers(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	group, err := h.loadGroup(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	if group.CreatorID != userID {
		if err := h.db.Where("group_id = ? AND user_id = ?", group.ID, userID).
			First(&models.GroupMembership{}).Error; err != nil {
			httperr.Abort(c, httperr.Forbidden("You Can't View This Group Members"))
			return
		}
	}

	var memberships []models.GroupMembership
	if err := h.db.Preload("User").Where("group_id = ?", group.ID).
		Find(&memberships).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	members := make([]models.Profile, len(memberships))
	for i := range memberships {
		members[i] = memberships[i].User.Profile()
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

// Leave removes the authenticated user's membership. The request row that
// produced the membership, if still present, is left alone.
func (h *Handler) Leave(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	group, err := h.loadGroup(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if group.CreatorID == userID {
		httperr.Abort(c, httperr.BadRequest("You Can't Leave Your Own Group"))
		return
	}

	var membership models.GroupMembership
	if err := h.db.Where("group_id = ? AND user_id = ?", group.ID, userID).
		First(&membership).Error; err != nil {
		httperr.Abort(c, httperr.NotFound("You Are Not A Member Of This Group"))
		return
	}

	if err := h.db.Delete(&models.GroupMembership{}, membership.ID).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Left Group"})
}

// RegisterMemberRoutes registers membership routes
func (h *Handler) RegisterMemberRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id/members", h.ListMembers)
	rg.DELETE("/:id/leave", h.Leave)
}
