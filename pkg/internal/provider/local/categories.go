package local

import (
	"context"

	"github.com/youbuidl/feedcore/pkg/internal/models"
)

func (b *Backend) Categories(ctx context.Context, contextID string) ([]models.Category, error) {
	var categories []models.Category
	err := b.db.WithContext(ctx).
		Where("context_id = ?", contextID).
		Order("created_at DESC").
		Find(&categories).Error

	return categories, err
}

func (b *Backend) NewCategory(contextID, id, displayName, description string) (models.Category, error) {
	category := models.Category{
		ID:          id,
		ContextID:   contextID,
		DisplayName: displayName,
		Description: description,
	}

	err := b.db.Save(&category).Error

	return category, err
}
