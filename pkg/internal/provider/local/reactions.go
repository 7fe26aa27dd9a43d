package local

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/youbuidl/feedcore/pkg/internal/models"
)

func (b *Backend) GetReaction(ctx context.Context, postID, actorID string, kind models.ReactionKind) (*models.Reaction, error) {
	var reaction models.Reaction
	err := b.db.WithContext(ctx).
		Where("post_id = ? AND actor_id = ? AND kind = ?", postID, actorID, kind).
		First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &reaction, nil
}

// SendReaction records a reaction and bumps the matching post counter by
// exactly one. A repeated (post, actor, kind) is a no-op.
func (b *Backend) SendReaction(ctx context.Context, postID, actorID string, kind models.ReactionKind) error {
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reaction := models.Reaction{
			PostID:  postID,
			ActorID: actorID,
			Kind:    kind,
		}

		err := tx.Where(reaction).First(&reaction).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Save(&reaction).Error; err != nil {
			return err
		}

		var column string
		switch kind {
		case models.ReactionLike:
			column = "like_count"
		case models.ReactionPoints:
			column = "points"
		default:
			return nil
		}

		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			Update(column, gorm.Expr(column+" + ?", 1)).Error
	})
}
