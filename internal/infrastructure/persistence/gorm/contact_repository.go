package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkful/forkful/internal/domain/site"
	"github.com/forkful/forkful/internal/ports/outbound"
)

// ContactRepository implements the contact-message repository using GORM
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact-message repository
func NewContactRepository(db *gorm.DB) outbound.ContactRepository {
	return &ContactRepository{db: db}
}

// Create stores an anonymous contact submission, unread by default.
func (r *ContactRepository) Create(ctx context.Context, msg *site.ContactMessage) error {
	model := &ContactMessageModel{
		Name:    msg.Name,
		Email:   msg.Email,
		Message: msg.Message,
	}

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return result.Error
	}

	msg.ID = model.ID
	msg.IsRead = model.IsRead
	msg.CreatedAt = model.CreatedAt
	return nil
}

// List returns contact messages newest first, optionally filtered by
// their read flag.
func (r *ContactRepository) List(ctx context.Context, isRead *bool) ([]site.ContactMessage, error) {
	query := r.db.WithContext(ctx).Model(&ContactMessageModel{})
	if isRead != nil {
		query = query.Where("is_read = ?", *isRead)
	}

	var models []ContactMessageModel
	result := query.Order("created_at DESC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	messages := make([]site.ContactMessage, len(models))
	for i := range models {
		messages[i] = ModelToContactMessage(&models[i])
	}

	return messages, nil
}

// MarkRead flags a message as read. Re-marking a read message is a
// no-op; false means the id did not resolve.
func (r *ContactRepository) MarkRead(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&ContactMessageModel{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
