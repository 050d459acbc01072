// Package gorm provides GORM model definitions and repository
// implementations for the application.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	ExternalID   string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Email        *string   `gorm:"type:varchar(255);uniqueIndex"`
	FirstName    string    `gorm:"type:varchar(100)"`
	LastName     string    `gorm:"type:varchar(100)"`
	ProfileImage string    `gorm:"type:text"`
	Role         string    `gorm:"type:varchar(20);default:'user';index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Relationships
	Recipes      []RecipeModel      `gorm:"foreignKey:UserID"`
	Reviews      []ReviewModel      `gorm:"foreignKey:UserID"`
	SavedRecipes []SavedRecipeModel `gorm:"foreignKey:UserID"`
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID           uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Name         string      `gorm:"type:varchar(255);not null;index"`
	Description  string      `gorm:"type:text"`
	Ingredients  StringSlice `gorm:"type:json"`
	Instructions StringSlice `gorm:"type:json"`
	CookingTime  int         `gorm:"column:cooking_time_minutes;default:0"`
	Difficulty   string      `gorm:"type:varchar(20);index"`
	Cuisine      string      `gorm:"type:varchar(50);index"`
	ImageURL     string      `gorm:"type:text"`
	UserID       *uuid.UUID  `gorm:"type:char(36);index"`
	AIGenerated  bool        `gorm:"default:false"`
	Featured     bool        `gorm:"default:false;index"`
	Approved     bool        `gorm:"default:false;index"`
	Servings     int         `gorm:"default:1"`
	CreatedAt    time.Time   `gorm:"index"`
	UpdatedAt    time.Time

	// Relationships
	User    *UserModel    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Reviews []ReviewModel `gorm:"foreignKey:RecipeID"`
}

// ReviewModel represents the GORM model for recipe reviews
type ReviewModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID  uuid.UUID `gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string    `gorm:"type:text"`
	Approved  bool      `gorm:"default:true;index"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	// Relationships
	Recipe RecipeModel `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	User   UserModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// SavedRecipeModel represents the GORM model for the user/recipe bookmark join
type SavedRecipeModel struct {
	UserID    uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID  uuid.UUID `gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	// Relationships
	User   UserModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe RecipeModel `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// ContactMessageModel represents the GORM model for contact messages
type ContactMessageModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Message   string    `gorm:"type:text;not null"`
	IsRead    bool      `gorm:"default:false;index"`
	CreatedAt time.Time `gorm:"index"`
}

// SiteSettingsModel represents the GORM model for the settings singleton
type SiteSettingsModel struct {
	ID               string     `gorm:"type:varchar(36);primaryKey"`
	HeroTitle        string     `gorm:"type:varchar(255)"`
	HeroSubtitle     string     `gorm:"type:text"`
	FeaturedRecipeID *uuid.UUID `gorm:"type:char(36)"`
	AITemperature    float64    `gorm:"default:0.7"`
	MaxResults       int        `gorm:"default:5"`
	UpdatedAt        time.Time
}

// StringSlice custom type for handling ordered string lists as JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// BeforeCreate hook for UserModel
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for ReviewModel
func (r *ReviewModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for ContactMessageModel
func (c *ContactMessageModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (UserModel) TableName() string {
	return "users"
}

func (RecipeModel) TableName() string {
	return "recipes"
}

func (ReviewModel) TableName() string {
	return "reviews"
}

func (SavedRecipeModel) TableName() string {
	return "saved_recipes"
}

func (ContactMessageModel) TableName() string {
	return "contact_messages"
}

func (SiteSettingsModel) TableName() string {
	return "site_settings"
}
