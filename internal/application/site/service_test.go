package site

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	gormdb "gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/forkful/forkful/internal/infrastructure/persistence"
	gormrepo "github.com/forkful/forkful/internal/infrastructure/persistence/gorm"
	"github.com/forkful/forkful/pkg/errors"
	"github.com/forkful/forkful/pkg/validation"
)

func newTestService(t *testing.T) (*Service, *gormdb.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gormdb.Open(sqlite.Open(dsn), &gormdb.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, persistence.Migrate(db))

	svc := NewService(
		gormrepo.NewContactRepository(db),
		gormrepo.NewSettingsRepository(db),
		gormrepo.NewRecipeRepository(db),
		gormrepo.NewReviewRepository(db),
		gormrepo.NewUserRepository(db),
		validation.New(),
		zap.NewNop(),
	)
	return svc, db
}

func TestSubmitContactValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SubmitContact(context.Background(), ContactRequest{Name: "Sam", Email: "not-an-email", Message: "Hi"})
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.CodeValidationFailed))

	msg, err := svc.SubmitContact(context.Background(), ContactRequest{Name: "Sam", Email: "sam@example.com", Message: "Hi"})
	require.NoError(t, err)
	require.False(t, msg.IsRead)
}

func TestUpdateSettingsTemperatureBounds(t *testing.T) {
	svc, _ := newTestService(t)

	for _, temp := range []float64{-0.1, 1.5} {
		bad := temp
		_, err := svc.UpdateSettings(context.Background(), SettingsRequest{AITemperature: &bad})
		require.Error(t, err, "temperature %v must be rejected", temp)
		require.True(t, errors.Is(err, errors.CodeValidationFailed))
	}

	good := 0.4
	title := "New hero"
	updated, err := svc.UpdateSettings(context.Background(), SettingsRequest{AITemperature: &good, HeroTitle: &title})
	require.NoError(t, err)
	require.InDelta(t, 0.4, updated.AITemperature, 0.001)
	require.Equal(t, "New hero", updated.HeroTitle)

	// The update survives a fresh read.
	got, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 0.4, got.AITemperature, 0.001)
}

func TestUpdateSettingsFeaturedRecipeMustExist(t *testing.T) {
	svc, _ := newTestService(t)

	missing := uuid.NewString()
	_, err := svc.UpdateSettings(context.Background(), SettingsRequest{FeaturedRecipeID: &missing})
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestStatsCountsRows(t *testing.T) {
	svc, db := newTestService(t)

	email := "cook@example.com"
	u := gormrepo.UserModel{ExternalID: "auth0|cook", Email: &email, Role: "user"}
	require.NoError(t, db.Create(&u).Error)

	rec := gormrepo.RecipeModel{Name: "Dish", Approved: true, UserID: &u.ID}
	require.NoError(t, db.Create(&rec).Error)
	require.NoError(t, db.Create(&gormrepo.ReviewModel{RecipeID: rec.ID, UserID: u.ID, Rating: 5, Approved: true}).Error)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.TotalUsers)
	require.Equal(t, int64(1), stats.TotalRecipes)
	require.Equal(t, int64(1), stats.TotalReviews)
	require.Equal(t, stats.TotalRecipes, stats.AIRequests)
}
