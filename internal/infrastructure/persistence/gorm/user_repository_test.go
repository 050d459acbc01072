package gorm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forkful/forkful/internal/domain/user"
)

func TestUserUpsertCreatesThenUpdates(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created, err := repo.Upsert(ctx, user.Profile{
		ExternalID: "auth0|abc123",
		Email:      "cook@example.com",
		FirstName:  "Dana",
	})
	require.NoError(t, err)
	require.Equal(t, user.RoleUser, created.Role)

	again, err := repo.Upsert(ctx, user.Profile{
		ExternalID: "auth0|abc123",
		Email:      "cook@example.com",
		FirstName:  "Dana",
		LastName:   "Reyes",
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, again.ID)
	require.Equal(t, "Reyes", again.LastName)

	var count int64
	require.NoError(t, db.Model(&UserModel{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestUserUpsertPreservesRole(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created, err := repo.Upsert(ctx, user.Profile{ExternalID: "auth0|admin", Email: "admin@example.com"})
	require.NoError(t, err)

	found, err := repo.UpdateRole(ctx, created.ID, user.RoleAdmin)
	require.NoError(t, err)
	require.True(t, found)

	// Re-login must not demote the promoted account.
	again, err := repo.Upsert(ctx, user.Profile{ExternalID: "auth0|admin", Email: "admin@example.com"})
	require.NoError(t, err)
	require.Equal(t, user.RoleAdmin, again.Role)
}

func TestUserDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	victim := createTestUser(t, db)
	bystander := createTestUser(t, db)

	ownRecipe := createTestRecipe(t, db, &victim.ID, true)
	otherRecipe := createTestRecipe(t, db, &bystander.ID, true)

	// The victim reviewed and saved the bystander's recipe; neither may
	// take that recipe down with the account.
	createTestReview(t, db, otherRecipe.ID, victim.ID, 4, true)
	require.NoError(t, NewSavedRecipeRepository(db).Save(ctx, victim.ID, otherRecipe.ID))

	found, err := repo.Delete(ctx, victim.ID)
	require.NoError(t, err)
	require.True(t, found)

	var recipes, reviews, saves int64
	require.NoError(t, db.Model(&RecipeModel{}).Where("id = ?", ownRecipe.ID).Count(&recipes).Error)
	require.Zero(t, recipes)
	require.NoError(t, db.Model(&ReviewModel{}).Where("user_id = ?", victim.ID).Count(&reviews).Error)
	require.Zero(t, reviews)
	require.NoError(t, db.Model(&SavedRecipeModel{}).Where("user_id = ?", victim.ID).Count(&saves).Error)
	require.Zero(t, saves)

	// The bystander's recipe survives.
	var remaining int64
	require.NoError(t, db.Model(&RecipeModel{}).Where("id = ?", otherRecipe.ID).Count(&remaining).Error)
	require.Equal(t, int64(1), remaining)
}

func TestUserFindMissingReturnsNil(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	u, err := repo.FindByExternalID(context.Background(), "auth0|nobody")
	require.NoError(t, err)
	require.Nil(t, u)
}
