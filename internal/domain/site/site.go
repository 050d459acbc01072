// Package site contains contact messages, the settings singleton and
// admin aggregate statistics.
package site

import (
	"time"

	"github.com/google/uuid"
)

// SettingsID is the fixed identifier of the settings singleton row.
const SettingsID = "settings"

// ContactMessage is an anonymous contact-form submission.
type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// Settings is the single persisted record holding site-wide configuration,
// lazily created with defaults on first read.
type Settings struct {
	ID               string     `json:"id"`
	HeroTitle        string     `json:"heroTitle"`
	HeroSubtitle     string     `json:"heroSubtitle"`
	FeaturedRecipeID *uuid.UUID `json:"featuredRecipeId,omitempty"`
	AITemperature    float64    `json:"aiTemperature"`
	MaxResults       int        `json:"maxResults"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// DefaultSettings returns the values written when the singleton is first read.
func DefaultSettings() Settings {
	return Settings{
		ID:            SettingsID,
		HeroTitle:     "Cook something new today",
		HeroSubtitle:  "Turn the ingredients you already have into dinner.",
		AITemperature: 0.7,
		MaxResults:    5,
	}
}

// Stats is the admin dashboard aggregate. AIRequests is a proxy equal to
// the recipe count, not a true call counter.
type Stats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalRecipes int64 `json:"totalRecipes"`
	TotalReviews int64 `json:"totalReviews"`
	AIRequests   int64 `json:"aiRequests"`
}
