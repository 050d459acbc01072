package gorm

import (
	"github.com/google/uuid"

	"github.com/forkful/forkful/internal/domain/recipe"
	"github.com/forkful/forkful/internal/domain/site"
	"github.com/forkful/forkful/internal/domain/user"
)

// RecipeToModel converts a domain recipe to its GORM model.
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Ingredients:  StringSlice(r.Ingredients),
		Instructions: StringSlice(r.Instructions),
		CookingTime:  r.CookingTime,
		Difficulty:   string(r.Difficulty),
		Cuisine:      r.Cuisine,
		ImageURL:     r.ImageURL,
		UserID:       r.UserID,
		AIGenerated:  r.AIGenerated,
		Featured:     r.Featured,
		Approved:     r.Approved,
		Servings:     r.Servings,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ModelToRecipe converts a GORM model to the domain recipe.
func ModelToRecipe(m *RecipeModel) recipe.Recipe {
	return recipe.Recipe{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Ingredients:  []string(m.Ingredients),
		Instructions: []string(m.Instructions),
		CookingTime:  m.CookingTime,
		Difficulty:   recipe.Difficulty(m.Difficulty),
		Cuisine:      m.Cuisine,
		ImageURL:     m.ImageURL,
		UserID:       m.UserID,
		AIGenerated:  m.AIGenerated,
		Featured:     m.Featured,
		Approved:     m.Approved,
		Servings:     m.Servings,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ReviewToModel converts a domain review to its GORM model.
func ReviewToModel(r *recipe.Review) *ReviewModel {
	return &ReviewModel{
		ID:        r.ID,
		RecipeID:  r.RecipeID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Approved:  r.Approved,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ModelToReview converts a GORM model to the domain review. The reviewer
// summary is attached when the User relation was preloaded.
func ModelToReview(m *ReviewModel) recipe.Review {
	rev := recipe.Review{
		ID:        m.ID,
		RecipeID:  m.RecipeID,
		UserID:    m.UserID,
		Rating:    m.Rating,
		Comment:   m.Comment,
		Approved:  m.Approved,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.User.ID != uuid.Nil {
		rev.Reviewer = &user.Summary{
			ID:           m.User.ID,
			FirstName:    m.User.FirstName,
			LastName:     m.User.LastName,
			ProfileImage: m.User.ProfileImage,
		}
	}
	return rev
}

// ModelToUser converts a GORM model to the domain user.
func ModelToUser(m *UserModel) user.User {
	u := user.User{
		ID:           m.ID,
		ExternalID:   m.ExternalID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		ProfileImage: m.ProfileImage,
		Role:         user.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Email != nil {
		u.Email = *m.Email
	}
	return u
}

// ModelToContactMessage converts a GORM model to the domain contact message.
func ModelToContactMessage(m *ContactMessageModel) site.ContactMessage {
	return site.ContactMessage{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

// ModelToSettings converts a GORM model to the domain settings.
func ModelToSettings(m *SiteSettingsModel) site.Settings {
	return site.Settings{
		ID:               m.ID,
		HeroTitle:        m.HeroTitle,
		HeroSubtitle:     m.HeroSubtitle,
		FeaturedRecipeID: m.FeaturedRecipeID,
		AITemperature:    m.AITemperature,
		MaxResults:       m.MaxResults,
		UpdatedAt:        m.UpdatedAt,
	}
}

// SettingsToModel converts domain settings to the GORM model.
func SettingsToModel(s *site.Settings) *SiteSettingsModel {
	return &SiteSettingsModel{
		ID:               s.ID,
		HeroTitle:        s.HeroTitle,
		HeroSubtitle:     s.HeroSubtitle,
		FeaturedRecipeID: s.FeaturedRecipeID,
		AITemperature:    s.AITemperature,
		MaxResults:       s.MaxResults,
		UpdatedAt:        s.UpdatedAt,
	}
}
