package users

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/linkup-app/linkup/pkg/linkup/auth"
	"github.com/linkup-app/linkup/pkg/linkup/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)

	users := r.Group("/users")
	users.Use(auth.AuthMiddleware())
	handler.RegisterRoutes(users)

	return r
}

func createTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	hash, _ := auth.HashPassword("password123")
	user := models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Test",
		LastName:     "User",
		Bio:          "hello there",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func getAuthHeader(user models.User) string {
	token, _ := auth.GenerateToken(user.ID, user.Email)
	return "Bearer " + token
}

func doSearch(t *testing.T, router *gin.Engine, user models.User, search string, cursor uint) SearchResponse {
	url := fmt.Sprintf("/users/search?search=%s", search)
	if cursor > 0 {
		url = fmt.Sprintf("%s&cursor=%d", url, cursor)
	}

	req, _ := http.NewRequest("GET", url, nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response SearchResponse
	json.Unmarshal(resp.Body.Bytes(), &response)
	return response
}

func TestUserInfoByID(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	caller := createTestUser(t, db, "caller@example.com")
	target := createTestUser(t, db, "target@example.com")

	req, _ := http.NewRequest("GET", fmt.Sprintf("/users?id=%d", target.ID), nil)
	req.Header.Set("Authorization", getAuthHeader(caller))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response struct {
		User ExtendedProfile `json:"user"`
	}
	json.Unmarshal(resp.Body.Bytes(), &response)

	if response.User.ID != target.ID {
		t.Errorf("Expected user %d, got %d", target.ID, response.User.ID)
	}
	if response.User.Bio != "hello there" {
		t.Errorf("Expected extended profile to include bio, got %q", response.User.Bio)
	}
}

func TestUserInfoSelf(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "me@example.com")

	req, _ := http.NewRequest("GET", "/users", nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response struct {
		User ExtendedProfile `json:"user"`
	}
	json.Unmarshal(resp.Body.Bytes(), &response)

	if response.User.ID != user.ID {
		t.Errorf("Expected own profile %d, got %d", user.ID, response.User.ID)
	}
}

func TestUserInfoNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "me@example.com")

	req, _ := http.NewRequest("GET", "/users?id=999", nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

func TestUserSearchShortPage(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	caller := createTestUser(t, db, "caller@example.com")
	createTestUser(t, db, "gopher1@example.com")
	createTestUser(t, db, "gopher2@example.com")

	response := doSearch(t, router, caller, "gopher", 0)

	if len(response.Result) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(response.Result))
	}
	if response.Cursor != 0 {
		t.Errorf("Expected cursor 0 on a short page, got %d", response.Cursor)
	}
}

func TestUserSearchFullPageCursor(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	caller := createTestUser(t, db, "caller@example.com")
	for i := 0; i < 5; i++ {
		createTestUser(t, db, fmt.Sprintf("gopher%d@example.com", i))
	}

	response := doSearch(t, router, caller, "gopher", 0)

	if len(response.Result) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(response.Result))
	}
	if response.Cursor != response.Result[3].ID {
		t.Errorf("Expected cursor %d, got %d", response.Result[3].ID, response.Cursor)
	}
	for i := 1; i < len(response.Result); i++ {
		if response.Result[i].ID <= response.Result[i-1].ID {
			t.Errorf("Results not in strictly increasing id order: %d then %d",
				response.Result[i-1].ID, response.Result[i].ID)
		}
	}
}

func TestUserSearchPaginationWalk(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	caller := createTestUser(t, db, "caller@example.com")
	createTestUser(t, db, "unrelated@other.net")

	matching := 9
	for i := 0; i < matching; i++ {
		createTestUser(t, db, fmt.Sprintf("gopher%02d@example.com", i))
	}

	// Feed each page's cursor into the next call; the walk must visit every
	// matching user exactly once and stop at cursor 0.
	seen := map[uint]bool{}
	cursor := uint(0)
	pages := 0
	for {
		response := doSearch(t, router, caller, "gopher", cursor)
		pages++

		if len(response.Result) > 4 {
			t.Fatalf("Page of %d results exceeds the limit of 4", len(response.Result))
		}
		for _, p := range response.Result {
			if seen[p.ID] {
				t.Errorf("User %d returned twice", p.ID)
			}
			seen[p.ID] = true
		}

		if response.Cursor == 0 {
			break
		}
		cursor = response.Cursor
		if pages > matching {
			t.Fatal("Pagination did not terminate")
		}
	}

	if len(seen) != matching {
		t.Errorf("Expected %d distinct users across pages, got %d", matching, len(seen))
	}
	if pages != 3 {
		t.Errorf("Expected 3 pages for 9 matches, got %d", pages)
	}
}

func TestUserSearchNoMatches(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	caller := createTestUser(t, db, "caller@example.com")

	response := doSearch(t, router, caller, "nobody", 0)

	if len(response.Result) != 0 {
		t.Errorf("Expected no results, got %d", len(response.Result))
	}
	if response.Cursor != 0 {
		t.Errorf("Expected cursor 0, got %d", response.Cursor)
	}
}
