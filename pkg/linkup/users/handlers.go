package users

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

// searchPageSize is the fixed page size for directory search.
const searchPageSize = 4

// Handler handles user query requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new users handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// ExtendedProfile is the public profile plus the fields only shown on a
// full profile page.
type ExtendedProfile struct {
	models.Profile
	Gender    string     `json:"gender"`
	BirthDate *time.Time `json:"birthDate"`
	Bio       string     `json:"bio"`
}

func extendedProfile(u *models.User) ExtendedProfile {
	return ExtendedProfile{
		Profile:   u.Profile(),
		Gender:    u.Gender,
		BirthDate: u.BirthDate,
		Bio:       u.Bio,
	}
}

// SearchResponse is the paginated search result envelope. Cursor is the
// last row's id when a full page was returned, 0 when there are no more
// pages. Callers must treat 0 as end-of-results.
type SearchResponse struct {
	Result []models.Profile `json:"result"`
	Cursor uint             `json:"cursor"`
}

// Info returns a user's profile
// @Summary Get user info
// @Description Get the extended profile of the user with the given id, or of the authenticated user when no id is supplied
// @Tags users
// @Produce json
// @Param id query int false "User ID"
// @Success 200 {object} map[string]ExtendedProfile
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users [get]
func (h *Handler) Info(c *gin.Context) {
	idStr := c.Query("id")
	if idStr == "" {
		userID, _ := auth.GetUserID(c)
		idStr = strconv.FormatUint(uint64(userID), 10)
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Invalid User ID"))
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		httperr.Abort(c, httperr.NotFound("User Not Found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": extendedProfile(&user)})
}

// Search returns users matching a substring of their email
// @Summary Search users
// @Description Keyset-paginated substring search over the user directory, 4 results per page ordered by ascending id
// @Tags users
// @Produce json
// @Param search query string false "Substring to match against emails"
// @Param cursor query int false "Last id of the previous page"
// @Success 200 {object} SearchResponse
// @Security BearerAuth
// @Router /users/search [get]
func (h *Handler) Search(c *gin.Context) {
	search := c.Query("search")
	// A missing or malformed cursor starts from the beginning.
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 32)

	q := h.db.Where("email LIKE ?", "%"+search+"%").
		Order("id asc").
		Limit(searchPageSize)
	if cursor > 0 {
		// Keyset pagination: resume strictly after the cursor row so
		// concurrent inserts cannot skew pages the way offsets do.
		q = q.Where("id > ?", cursor)
	}

	var found []models.User
	if err := q.Find(&found).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search users"})
		return
	}

	result := make([]models.Profile, len(found))
	for i := range found {
		result[i] = found[i].Profile()
	}

	next := uint(0)
	if len(found) == searchPageSize {
		next = found[len(found)-1].ID
	}

	c.JSON(http.StatusOK, SearchResponse{Result: result, Cursor: next})
}

// RegisterRoutes registers user routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Info)
	rg.GET("/search", h.Search)
}
