package gorm

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/forkful/forkful/internal/domain/recipe"
	"github.com/forkful/forkful/internal/domain/user"
)

// openTestDB opens a uniquely named in-memory sqlite database with
// foreign keys on, so cascade behavior matches production.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&UserModel{},
		&RecipeModel{},
		&ReviewModel{},
		&SavedRecipeModel{},
		&ContactMessageModel{},
		&SiteSettingsModel{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) user.User {
	t.Helper()

	email := gofakeit.Email()
	model := UserModel{
		ExternalID: gofakeit.UUID(),
		Email:      &email,
		FirstName:  gofakeit.FirstName(),
		LastName:   gofakeit.LastName(),
		Role:       string(user.RoleUser),
	}
	require.NoError(t, db.Create(&model).Error)
	return ModelToUser(&model)
}

func createTestRecipe(t *testing.T, db *gorm.DB, ownerID *uuid.UUID, approved bool) recipe.Recipe {
	t.Helper()

	model := RecipeModel{
		Name:         gofakeit.Dinner(),
		Description:  gofakeit.Sentence(8),
		Ingredients:  StringSlice{"2 eggs", "100g flour"},
		Instructions: StringSlice{"Mix", "Bake"},
		CookingTime:  gofakeit.Number(10, 120),
		Difficulty:   string(recipe.DifficultyEasy),
		Cuisine:      "italian",
		UserID:       ownerID,
		Approved:     approved,
		Servings:     2,
	}
	require.NoError(t, db.Create(&model).Error)
	return ModelToRecipe(&model)
}

func createTestReview(t *testing.T, db *gorm.DB, recipeID, userID uuid.UUID, rating int, approved bool) recipe.Review {
	t.Helper()

	model := ReviewModel{
		RecipeID: recipeID,
		UserID:   userID,
		Rating:   rating,
		Comment:  gofakeit.Sentence(5),
		Approved: approved,
	}
	require.NoError(t, db.Create(&model).Error)
	return ModelToReview(&model)
}
