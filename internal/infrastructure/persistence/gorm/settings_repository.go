package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/forkful/forkful/internal/domain/site"
	"github.com/forkful/forkful/internal/ports/outbound"
)

// SettingsRepository implements the settings-singleton repository using GORM
type SettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) outbound.SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get reads the singleton row, lazily creating it with defaults on
// first read.
func (r *SettingsRepository) Get(ctx context.Context) (*site.Settings, error) {
	var model SiteSettingsModel

	err := r.db.WithContext(ctx).First(&model, "id = ?", site.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := site.DefaultSettings()
		model = *SettingsToModel(&defaults)
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	settings := ModelToSettings(&model)
	return &settings, nil
}

// Update writes the fixed singleton row.
func (r *SettingsRepository) Update(ctx context.Context, s *site.Settings) error {
	s.ID = site.SettingsID
	model := SettingsToModel(s)

	result := r.db.WithContext(ctx).
		Model(&SiteSettingsModel{}).
		Where("id = ?", site.SettingsID).
		Select("hero_title", "hero_subtitle", "featured_recipe_id", "ai_temperature", "max_results").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// First write before any read; create the row outright.
		return r.db.WithContext(ctx).Create(model).Error
	}
	return nil
}
