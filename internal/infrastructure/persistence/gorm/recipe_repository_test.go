package gorm

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/forkful/forkful/internal/domain/recipe"
	"github.com/forkful/forkful/internal/ports/outbound"
)

type RecipeRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo outbound.RecipeRepository
	ctx  context.Context
}

func (s *RecipeRepositoryTestSuite) SetupTest() {
	s.db = openTestDB(s.T())
	s.repo = NewRecipeRepository(s.db)
	s.ctx = context.Background()
}

func TestRecipeRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeRepositoryTestSuite))
}

func (s *RecipeRepositoryTestSuite) TestCreateAssignsID() {
	owner := createTestUser(s.T(), s.db)

	rec := recipe.Recipe{
		Name:         "Shakshuka",
		Description:  "Eggs poached in spiced tomato sauce",
		Ingredients:  []string{"4 eggs", "400g tomatoes"},
		Instructions: []string{"Simmer sauce", "Poach eggs"},
		CookingTime:  30,
		Difficulty:   recipe.DifficultyEasy,
		Cuisine:      "middle eastern",
		UserID:       &owner.ID,
		Approved:     true,
		Servings:     2,
	}
	s.Require().NoError(s.repo.Create(s.ctx, &rec))
	s.NotEqual(uuid.Nil, rec.ID)
	s.False(rec.CreatedAt.IsZero())
}

func (s *RecipeRepositoryTestSuite) TestFindByIDMissingReturnsNil() {
	detail, err := s.repo.FindByID(s.ctx, uuid.New())
	s.Require().NoError(err)
	s.Nil(detail)
}

func (s *RecipeRepositoryTestSuite) TestFindByIDAggregatesApprovedReviews() {
	owner := createTestUser(s.T(), s.db)
	reviewerA := createTestUser(s.T(), s.db)
	reviewerB := createTestUser(s.T(), s.db)
	rec := createTestRecipe(s.T(), s.db, &owner.ID, true)

	createTestReview(s.T(), s.db, rec.ID, reviewerA.ID, 3, true)
	createTestReview(s.T(), s.db, rec.ID, reviewerB.ID, 5, true)
	// Unapproved reviews stay out of the aggregate and the join.
	createTestReview(s.T(), s.db, rec.ID, owner.ID, 1, false)

	detail, err := s.repo.FindByID(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Require().NotNil(detail)

	s.Len(detail.Reviews, 2)
	s.InDelta(4.0, detail.AverageRating, 0.001)
	s.Equal(2, detail.ReviewCount)
	for _, rev := range detail.Reviews {
		s.NotNil(rev.Reviewer)
	}
}

func (s *RecipeRepositoryTestSuite) TestFindByIDZeroReviewsZeroAverage() {
	owner := createTestUser(s.T(), s.db)
	rec := createTestRecipe(s.T(), s.db, &owner.ID, true)

	detail, err := s.repo.FindByID(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Require().NotNil(detail)
	s.Zero(detail.AverageRating)
	s.Zero(detail.ReviewCount)
}

func (s *RecipeRepositoryTestSuite) TestListReturnsOnlyApproved() {
	owner := createTestUser(s.T(), s.db)
	approved := createTestRecipe(s.T(), s.db, &owner.ID, true)
	unapproved := createTestRecipe(s.T(), s.db, &owner.ID, false)

	items, total, err := s.repo.List(s.ctx, recipe.ListFilter{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(items, 1)
	s.Equal(approved.ID, items[0].ID)
	s.NotEqual(unapproved.ID, items[0].ID)
}

func (s *RecipeRepositoryTestSuite) TestListIncludeUnapproved() {
	owner := createTestUser(s.T(), s.db)
	createTestRecipe(s.T(), s.db, &owner.ID, true)
	createTestRecipe(s.T(), s.db, &owner.ID, false)

	_, total, err := s.repo.List(s.ctx, recipe.ListFilter{Page: 1, Limit: 10, IncludeUnapproved: true})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
}

func (s *RecipeRepositoryTestSuite) TestListCombinedFilters() {
	owner := createTestUser(s.T(), s.db)

	match := RecipeModel{
		Name:        "Pasta Carbonara",
		Description: "Classic Roman dish",
		Cuisine:     "italian",
		Difficulty:  "easy",
		UserID:      &owner.ID,
		Approved:    true,
	}
	s.Require().NoError(s.db.Create(&match).Error)

	// Matches cuisine but not search.
	s.Require().NoError(s.db.Create(&RecipeModel{
		Name: "Risotto", Description: "Creamy rice", Cuisine: "italian", Approved: true,
	}).Error)
	// Matches search but not cuisine.
	s.Require().NoError(s.db.Create(&RecipeModel{
		Name: "Pasta Salad", Description: "Cold dish", Cuisine: "american", Approved: true,
	}).Error)
	// Matches both but is unapproved.
	s.Require().NoError(s.db.Create(&RecipeModel{
		Name: "Secret Pasta", Description: "Not public", Cuisine: "italian", Approved: false,
	}).Error)

	items, total, err := s.repo.List(s.ctx, recipe.ListFilter{
		Page: 1, Limit: 10, Cuisine: "italian", Search: "PASTA",
	})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(items, 1)
	s.Equal(match.ID, items[0].ID)
}

func (s *RecipeRepositoryTestSuite) TestListSearchMatchesDescription() {
	s.Require().NoError(s.db.Create(&RecipeModel{
		Name: "Weeknight Dinner", Description: "A quick pasta bake", Cuisine: "italian", Approved: true,
	}).Error)

	items, total, err := s.repo.List(s.ctx, recipe.ListFilter{Page: 1, Limit: 10, Search: "pasta"})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Len(items, 1)
}

func (s *RecipeRepositoryTestSuite) TestUpdateMissingReturnsFalse() {
	rec := recipe.Recipe{ID: uuid.New(), Name: "Ghost"}
	found, err := s.repo.Update(s.ctx, &rec)
	s.Require().NoError(err)
	s.False(found)
}

func (s *RecipeRepositoryTestSuite) TestDelete() {
	owner := createTestUser(s.T(), s.db)
	rec := createTestRecipe(s.T(), s.db, &owner.ID, true)

	found, err := s.repo.Delete(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.True(found)

	detail, err := s.repo.FindByID(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Nil(detail)

	found, err = s.repo.Delete(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.False(found)
}

func (s *RecipeRepositoryTestSuite) TestFindFeatured() {
	owner := createTestUser(s.T(), s.db)
	rec := createTestRecipe(s.T(), s.db, &owner.ID, true)
	createTestRecipe(s.T(), s.db, &owner.ID, true)

	// Featured but unapproved must stay hidden.
	hidden := createTestRecipe(s.T(), s.db, &owner.ID, false)
	_, err := s.repo.SetFeatured(s.ctx, hidden.ID, true)
	s.Require().NoError(err)

	ok, err := s.repo.SetFeatured(s.ctx, rec.ID, true)
	s.Require().NoError(err)
	s.True(ok)

	items, err := s.repo.FindFeatured(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(rec.ID, items[0].ID)
}
