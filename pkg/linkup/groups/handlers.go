package groups

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/linkup-app/linkup/pkg/linkup/auth"
	"github.com/linkup-app/linkup/pkg/linkup/httperr"
	"github.com/linkup-app/linkup/pkg/linkup/models"
	"github.com/linkup-app/linkup/pkg/linkup/storage"
	"gorm.io/gorm"
)

// Handler handles group-related requests
type Handler struct {
	db    *gorm.DB
	store *storage.Store
}

// NewHandler creates a new groups handler
func NewHandler(db *gorm.DB, store *storage.Store) *Handler {
	return &Handler{db: db, store: store}
}

// GroupResponse represents a group in API responses
type GroupResponse struct {
	ID          uint            `json:"id"`
	CreatorID   uint            `json:"creatorId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Private     bool            `json:"private"`
	Image       string          `json:"image"`
	Creator     *models.Profile `json:"creator,omitempty"`
}

func groupResponse(g *models.Group) GroupResponse {
	resp := GroupResponse{
		ID:          g.ID,
		CreatorID:   g.CreatorID,
		Name:        g.Name,
		Description: g.Description,
		Private:     g.Private,
		Image:       g.Image,
	}
	if g.Creator.ID != 0 {
		p := g.Creator.Profile()
		resp.Creator = &p
	}
	return resp
}

// loadGroup fetches the group named by the :id route param.
func (h *Handler) loadGroup(c *gin.Context, preload ...string) (*models.Group, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, httperr.BadRequest("Invalid Group ID")
	}

	q := h.db
	for _, assoc := range preload {
		q = q.Preload(assoc)
	}

	var group models.Group
	if err := q.First(&group, id).Error; err != nil {
		return nil, httperr.NotFound("Group Not Found")
	}
	return &group, nil
}

// requireCreator is the single ownership predicate for group mutation and
// request adjudication. msg becomes the forbidden response body.
func requireCreator(group *models.Group, userID uint, msg string) error {
	if group.CreatorID != userID {
		return httperr.Forbidden(msg)
	}
	return nil
}

// Get returns a group with its creator's public profile embedded
// @Summary Get a group
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]GroupResponse
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	group, err := h.loadGroup(c, "Creator")
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"group": groupResponse(group)})
}

// Create creates a new group owned by the authenticated user
// @Summary Create a group
// @Description Create a group from a multipart form. The image field is required; the stored file is resized in the background after the row is committed.
// @Tags groups
// @Accept mpfd
// @Produce json
// @Param name formData string true "Group name"
// @Param description formData string false "Group description"
// @Param private formData string false "true to make the group private"
// @Param image formData file true "Group image"
// @Success 201 {object} map[string]GroupResponse
// @Failure 400 {object} map[string]string "Missing image"
// @Security BearerAuth
// @Router /groups/create [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	file, err := c.FormFile("image")
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Please Provide Group Image"))
		return
	}

	path, err := h.store.Save(file)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	group := models.Group{
		CreatorID:   userID,
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Private:     c.PostForm("private") == "true",
		Image:       path,
	}

	if err := h.db.Create(&group).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	// The row is committed before the resize finishes. A resize failure is
	// not rolled back against the group; the original upload stays usable.
	h.store.ResizeAsync(path)

	c.JSON(http.StatusCreated, gin.H{"group": groupResponse(&group)})
}

// Update applies a sparse update to a group (creator only)
// @Summary Edit a group
// @Description Apply the multipart fields present in the request, leaving absent fields untouched. A new image replaces the old file on disk before the path is updated.
// @Tags groups
// @Accept mpfd
// @Produce json
// @Param id path int true "Group ID"
// @Success 202 {object} map[string]GroupResponse
// @Failure 403 {object} map[string]string "Not the creator"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/update/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	group, err := h.loadGroup(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if err := requireCreator(group, userID, "You Can't Edit This Group"); err != nil {
		httperr.Abort(c, err)
		return
	}

	if name := c.PostForm("name"); name != "" {
		group.Name = name
	}
	if description := c.PostForm("description"); description != "" {
		group.Description = description
	}
	if private := c.PostForm("private"); private != "" {
		group.Private = private == "true"
	}

	if file, ferr := c.FormFile("image"); ferr == nil {
		// The old file is gone before the new one is in place; a crash in
		// between loses the image but never orphans a file.
		if err := h.store.Remove(group.Image); err != nil {
			httperr.Abort(c, err)
			return
		}
		path, err := h.store.Save(file)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		if err := h.store.Resize(path); err != nil {
			httperr.Abort(c, err)
			return
		}
		group.Image = path
	}

	if err := h.db.Save(group).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"group": groupResponse(group)})
}

// Delete deletes a group and its image file (creator only)
// @Summary Delete a group
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]GroupResponse
// @Failure 403 {object} map[string]string "Not the creator"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/delete/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	group, err := h.loadGroup(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if err := requireCreator(group, userID, "You Can't Delete This Group"); err != nil {
		httperr.Abort(c, err)
		return
	}

	if err := h.db.Delete(&models.Group{}, group.ID).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	// Row first, file second: a crash here leaves an orphaned file, which
	// is an acceptable leak rather than a correctness violation.
	if err := h.store.Remove(group.Image); err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"group": groupResponse(group)})
}

// RegisterRoutes registers group lifecycle routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/create", h.Create)
	rg.PATCH("/update/:id", h.Update)
	rg.DELETE("/delete/:id", h.Delete)
	rg.GET("/:id", h.Get)
}
