package apiserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	gormdb "gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	recipeapp "github.com/forkful/forkful/internal/application/recipe"
	siteapp "github.com/forkful/forkful/internal/application/site"
	userapp "github.com/forkful/forkful/internal/application/user"
	"github.com/forkful/forkful/internal/domain/user"
	"github.com/forkful/forkful/internal/infrastructure/config"
	"github.com/forkful/forkful/internal/infrastructure/http/handlers"
	"github.com/forkful/forkful/internal/infrastructure/persistence"
	gormrepo "github.com/forkful/forkful/internal/infrastructure/persistence/gorm"
	"github.com/forkful/forkful/internal/ports/outbound"
	"github.com/forkful/forkful/pkg/validation"
)

const (
	testSecret = "test-secret"
	testIssuer = "forkful-identity"
)

type stubAI struct{}

func (stubAI) GenerateFromIngredients(ctx context.Context, ingredients []string, opts outbound.GenerateOptions) ([]outbound.GeneratedRecipe, error) {
	return []outbound.GeneratedRecipe{{
		Name:         "Stub Dish",
		Description:  "From the stub",
		Ingredients:  ingredients,
		Instructions: []string{"Cook"},
		CookingTime:  20,
		Difficulty:   "easy",
		Cuisine:      "italian",
		Servings:     2,
	}}, nil
}

func (stubAI) IdentifyFromPhoto(ctx context.Context, image []byte, mimeType string) (*outbound.DishIdentification, error) {
	return &outbound.DishIdentification{Name: "Stub Dish", Confidence: 0.8}, nil
}

func (stubAI) GenerateImage(ctx context.Context, name, description string) string {
	return ""
}

type testEnv struct {
	handler http.Handler
	db      *gormdb.DB
	users   outbound.UserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gormdb.Open(sqlite.Open(dsn), &gormdb.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, persistence.Migrate(db))

	cfg := &config.Config{
		App:    config.AppConfig{Name: "Forkful", Version: "test"},
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0, ShutdownTimeout: time.Second},
		Auth:   config.AuthConfig{JWTSecret: testSecret, Issuer: testIssuer},
		Upload: config.UploadConfig{MaxBytes: 10 << 20, AllowedTypes: []string{"image/jpeg", "image/png"}},
	}

	log := zap.NewNop()
	validate := validation.New()

	recipes := gormrepo.NewRecipeRepository(db)
	reviews := gormrepo.NewReviewRepository(db)
	saved := gormrepo.NewSavedRecipeRepository(db)
	users := gormrepo.NewUserRepository(db)
	contacts := gormrepo.NewContactRepository(db)
	settings := gormrepo.NewSettingsRepository(db)

	recipeSvc := recipeapp.NewService(recipes, reviews, saved, settings, stubAI{}, validate, log)
	userSvc := userapp.NewService(users, log)
	siteSvc := siteapp.NewService(contacts, settings, recipes, reviews, users, validate, log)

	h := Handlers{
		Recipes: handlers.NewRecipeHandler(recipeSvc, log),
		AI:      handlers.NewAIHandler(recipeSvc, cfg, log),
		Reviews: handlers.NewReviewHandler(recipeSvc, log),
		Saved:   handlers.NewSavedRecipeHandler(recipeSvc, log),
		Contact: handlers.NewContactHandler(siteSvc, log),
		Auth:    handlers.NewAuthHandler(userSvc, log),
		Admin:   handlers.NewAdminHandler(recipeSvc, userSvc, siteSvc, log),
		Health:  handlers.NewHealthHandler(db, cfg, log),
	}
	server := NewServer(cfg, h, userSvc, log)

	return &testEnv{handler: server.Handler(), db: db, users: users}
}

// token issues a signed session token for the given subject.
func token(t *testing.T, externalID, email string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   externalID,
		"email": email,
		"iss":   testIssuer,
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (e *testEnv) request(t *testing.T, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// promote logs the user in once and raises their stored role.
func (e *testEnv) promote(t *testing.T, externalID string, role user.Role) {
	t.Helper()

	u, err := e.users.Upsert(context.Background(), user.Profile{ExternalID: externalID, Email: externalID + "@example.com"})
	require.NoError(t, err)
	found, err := e.users.UpdateRole(context.Background(), u.ID, role)
	require.NoError(t, err)
	require.True(t, found)
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "healthy", body["status"])
}

func TestContactFormPersistsUnread(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/contact", "", map[string]string{
		"name":    "Sam",
		"email":   "sam@example.com",
		"message": "Hello",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, false, body["isRead"])

	var count int64
	require.NoError(t, env.db.Model(&gormrepo.ContactMessageModel{}).Where("is_read = ?", false).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestSessionEndpointsRejectAnonymous(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/recipes", "", map[string]string{"name": "x"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/saved-recipes", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminGuard(t *testing.T) {
	env := newTestEnv(t)

	plain := token(t, "auth0|plain", "plain@example.com")
	rec := env.request(t, http.MethodGet, "/api/admin/stats", plain, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	env.promote(t, "auth0|boss", user.RoleAdmin)
	admin := token(t, "auth0|boss", "boss@example.com")
	rec = env.request(t, http.MethodGet, "/api/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBannedUserIsRejected(t *testing.T) {
	env := newTestEnv(t)

	env.promote(t, "auth0|banned", user.RoleBanned)
	banned := token(t, "auth0|banned", "banned@example.com")

	rec := env.request(t, http.MethodGet, "/api/auth/user", banned, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthUserUpsertsOnFirstLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/auth/user", token(t, "auth0|newbie", "newbie@example.com"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "auth0|newbie", body["externalId"])
	require.Equal(t, "user", body["role"])
}

func TestReviewRatingValidationOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	owner := token(t, "auth0|owner", "owner@example.com")
	created := env.request(t, http.MethodPost, "/api/recipes", owner, map[string]interface{}{
		"name":         "Rated Dish",
		"description":  "A dish to rate",
		"ingredients":  []string{"1 egg"},
		"instructions": []string{"Fry"},
		"cookingTime":  10,
		"difficulty":   "easy",
	})
	require.Equal(t, http.StatusCreated, created.Code)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &rec))
	recipeID := rec["id"].(string)

	reviewer := token(t, "auth0|reviewer", "reviewer@example.com")
	for _, rating := range []int{0, 6} {
		resp := env.request(t, http.MethodPost, "/api/recipes/"+recipeID+"/reviews", reviewer, map[string]int{"rating": rating})
		require.Equal(t, http.StatusBadRequest, resp.Code)

		var body struct {
			Message string `json:"message"`
			Errors  []struct {
				Field string `json:"field"`
			} `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		require.NotEmpty(t, body.Errors)
		require.Equal(t, "rating", body.Errors[0].Field)
	}

	for _, rating := range []int{1, 5} {
		resp := env.request(t, http.MethodPost, "/api/recipes/"+recipeID+"/reviews", reviewer, map[string]int{"rating": rating})
		require.Equal(t, http.StatusCreated, resp.Code)
	}
}

func TestNonOwnerCannotModifyRecipe(t *testing.T) {
	env := newTestEnv(t)

	owner := token(t, "auth0|author", "author@example.com")
	created := env.request(t, http.MethodPost, "/api/recipes", owner, map[string]interface{}{
		"name":         "Protected Dish",
		"description":  "Owned",
		"ingredients":  []string{"1 egg"},
		"instructions": []string{"Fry"},
		"cookingTime":  10,
		"difficulty":   "easy",
	})
	require.Equal(t, http.StatusCreated, created.Code)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &rec))
	recipeID := rec["id"].(string)

	stranger := token(t, "auth0|stranger", "stranger@example.com")
	resp := env.request(t, http.MethodPut, "/api/recipes/"+recipeID, stranger, map[string]string{"name": "Taken"})
	require.Equal(t, http.StatusForbidden, resp.Code)

	resp = env.request(t, http.MethodDelete, "/api/recipes/"+recipeID, stranger, nil)
	require.Equal(t, http.StatusForbidden, resp.Code)

	// Unchanged and still visible.
	resp = env.request(t, http.MethodGet, "/api/recipes/"+recipeID, "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var after map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &after))
	require.Equal(t, "Protected Dish", after["name"])
}

func TestNonAuthorCannotModifyReview(t *testing.T) {
	env := newTestEnv(t)

	owner := token(t, "auth0|chef", "chef@example.com")
	created := env.request(t, http.MethodPost, "/api/recipes", owner, map[string]interface{}{
		"name":         "Commented Dish",
		"description":  "Owned",
		"ingredients":  []string{"1 egg"},
		"instructions": []string{"Fry"},
		"cookingTime":  10,
		"difficulty":   "easy",
	})
	require.Equal(t, http.StatusCreated, created.Code)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &rec))
	recipeID := rec["id"].(string)

	reviewer := token(t, "auth0|critic", "critic@example.com")
	posted := env.request(t, http.MethodPost, "/api/recipes/"+recipeID+"/reviews", reviewer, map[string]interface{}{
		"rating":  5,
		"comment": "Superb",
	})
	require.Equal(t, http.StatusCreated, posted.Code)

	var rev map[string]interface{}
	require.NoError(t, json.Unmarshal(posted.Body.Bytes(), &rev))
	reviewID := rev["id"].(string)

	stranger := token(t, "auth0|lurker", "lurker@example.com")
	resp := env.request(t, http.MethodPut, "/api/reviews/"+reviewID, stranger, map[string]int{"rating": 1})
	require.Equal(t, http.StatusForbidden, resp.Code)

	resp = env.request(t, http.MethodDelete, "/api/reviews/"+reviewID, stranger, nil)
	require.Equal(t, http.StatusForbidden, resp.Code)

	// The review still carries the author's rating.
	resp = env.request(t, http.MethodGet, "/api/recipes/"+recipeID, "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var detail struct {
		Reviews []struct {
			Rating int `json:"rating"`
		} `json:"reviews"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &detail))
	require.Len(t, detail.Reviews, 1)
	require.Equal(t, 5, detail.Reviews[0].Rating)
}

func TestPublicListingFilters(t *testing.T) {
	env := newTestEnv(t)

	owner := token(t, "auth0|cook", "cook@example.com")
	dishes := []map[string]interface{}{
		{"name": "Pasta Carbonara", "description": "Roman classic", "cuisine": "italian"},
		{"name": "Risotto", "description": "Creamy rice", "cuisine": "italian"},
		{"name": "Pasta Salad", "description": "Cold dish", "cuisine": "american"},
	}
	for _, d := range dishes {
		d["ingredients"] = []string{"1 egg"}
		d["instructions"] = []string{"Cook"}
		d["cookingTime"] = 20
		d["difficulty"] = "easy"
		resp := env.request(t, http.MethodPost, "/api/recipes", owner, d)
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := env.request(t, http.MethodGet, "/api/recipes?cuisine=italian&search=pasta", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Items []map[string]interface{} `json:"items"`
		Total int64                    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, int64(1), body.Total)
	require.Len(t, body.Items, 1)
	require.Equal(t, "Pasta Carbonara", body.Items[0]["name"])
}

func TestGenerateEndpoint(t *testing.T) {
	env := newTestEnv(t)

	caller := token(t, "auth0|generator", "generator@example.com")
	resp := env.request(t, http.MethodPost, "/api/recipes/generate-from-ingredients", caller, map[string]interface{}{
		"ingredients": []string{"onion", "garlic"},
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body, 1)
	require.Equal(t, "Stub Dish", body[0]["name"])
	require.Equal(t, true, body[0]["aiGenerated"])
}
