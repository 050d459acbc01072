// Package site implements contact messages, the settings singleton and
// the admin dashboard statistics.
package site

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forkful/forkful/internal/domain/site"
	"github.com/forkful/forkful/internal/ports/outbound"
	"github.com/forkful/forkful/pkg/errors"
	"github.com/forkful/forkful/pkg/validation"
)

// Service orchestrates site-level operations.
type Service struct {
	contacts outbound.ContactRepository
	settings outbound.SettingsRepository
	recipes  outbound.RecipeRepository
	reviews  outbound.ReviewRepository
	users    outbound.UserRepository
	validate *validation.Validator
	logger   *zap.Logger
}

// NewService creates the site service.
func NewService(
	contacts outbound.ContactRepository,
	settings outbound.SettingsRepository,
	recipes outbound.RecipeRepository,
	reviews outbound.ReviewRepository,
	users outbound.UserRepository,
	validate *validation.Validator,
	logger *zap.Logger,
) *Service {
	return &Service{
		contacts: contacts,
		settings: settings,
		recipes:  recipes,
		reviews:  reviews,
		users:    users,
		validate: validate,
		logger:   logger.Named("site-service"),
	}
}

// ContactRequest is the body of the public contact form.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}

// SubmitContact stores an anonymous contact-form submission, unread.
func (s *Service) SubmitContact(ctx context.Context, req ContactRequest) (*site.ContactMessage, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	msg := site.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := s.contacts.Create(ctx, &msg); err != nil {
		return nil, errors.NewDatabase("create contact message", err)
	}
	return &msg, nil
}

// ListContact returns contact messages, optionally filtered by read state.
func (s *Service) ListContact(ctx context.Context, isRead *bool) ([]site.ContactMessage, error) {
	msgs, err := s.contacts.List(ctx, isRead)
	if err != nil {
		return nil, errors.NewDatabase("list contact messages", err)
	}
	return msgs, nil
}

// MarkContactRead flags the message as read. Re-marking is a no-op.
func (s *Service) MarkContactRead(ctx context.Context, id uuid.UUID) error {
	found, err := s.contacts.MarkRead(ctx, id)
	if err != nil {
		return errors.NewDatabase("mark contact message read", err)
	}
	if !found {
		return errors.NewNotFound("Contact message")
	}
	return nil
}

// GetSettings returns the settings singleton, creating it with defaults
// on first read.
func (s *Service) GetSettings(ctx context.Context) (*site.Settings, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, errors.NewDatabase("load site settings", err)
	}
	return cfg, nil
}

// SettingsRequest carries the optional fields of a settings update.
type SettingsRequest struct {
	HeroTitle        *string  `json:"heroTitle" validate:"omitempty,min=1,max=200"`
	HeroSubtitle     *string  `json:"heroSubtitle" validate:"omitempty,max=500"`
	FeaturedRecipeID *string  `json:"featuredRecipeId" validate:"omitempty,uuid"`
	AITemperature    *float64 `json:"aiTemperature" validate:"omitempty,gte=0,lte=1"`
	MaxResults       *int     `json:"maxResults" validate:"omitempty,gte=1,lte=20"`
}

// UpdateSettings applies a partial update to the singleton row.
func (s *Service) UpdateSettings(ctx context.Context, req SettingsRequest) (*site.Settings, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, errors.NewDatabase("load site settings", err)
	}

	if req.HeroTitle != nil {
		cfg.HeroTitle = *req.HeroTitle
	}
	if req.HeroSubtitle != nil {
		cfg.HeroSubtitle = *req.HeroSubtitle
	}
	if req.FeaturedRecipeID != nil {
		id, err := uuid.Parse(*req.FeaturedRecipeID)
		if err != nil {
			return nil, errors.NewBadRequest("featuredRecipeId is not a valid id")
		}
		detail, err := s.recipes.FindByID(ctx, id)
		if err != nil {
			return nil, errors.NewDatabase("find recipe", err)
		}
		if detail == nil {
			return nil, errors.NewNotFound("Recipe")
		}
		cfg.FeaturedRecipeID = &id
	}
	if req.AITemperature != nil {
		cfg.AITemperature = *req.AITemperature
	}
	if req.MaxResults != nil {
		cfg.MaxResults = *req.MaxResults
	}

	if err := s.settings.Update(ctx, cfg); err != nil {
		return nil, errors.NewDatabase("update site settings", err)
	}

	s.logger.Info("site settings updated")
	return cfg, nil
}

// Stats assembles the admin dashboard counters. AIRequests mirrors the
// recipe count rather than a true call counter.
func (s *Service) Stats(ctx context.Context) (*site.Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, errors.NewDatabase("count users", err)
	}
	recipes, err := s.recipes.Count(ctx)
	if err != nil {
		return nil, errors.NewDatabase("count recipes", err)
	}
	reviews, err := s.reviews.Count(ctx)
	if err != nil {
		return nil, errors.NewDatabase("count reviews", err)
	}

	return &site.Stats{
		TotalUsers:   users,
		TotalRecipes: recipes,
		TotalReviews: reviews,
		AIRequests:   recipes,
	}, nil
}
