package local

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/youbuidl/feedcore/pkg/internal/models"
	"github.com/youbuidl/feedcore/pkg/internal/provider"
)

func (b *Backend) filterWithContext(tx *gorm.DB, contextID string) *gorm.DB {
	// The root context covers the whole community; child contexts are
	// browsable categories.
	if contextID == b.rootContext || len(contextID) == 0 {
		return tx
	}
	return tx.Where("category_id = ?", contextID)
}

// RankedPosts serves the caller's window in full; the window widens with
// the page number, so the limit must follow it rather than cap it.
func (b *Backend) RankedPosts(ctx context.Context, contextID string, window provider.Range) ([]models.Post, error) {
	var items []models.Post
	tx := b.filterWithContext(b.db.WithContext(ctx), contextID)
	if err := tx.
		Order("rank_score DESC, created_at DESC").
		Offset(window.Start).Limit(window.Len()).
		Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (b *Backend) filterWithFuzzySearch(tx *gorm.DB, probe string) *gorm.DB {
	if len(probe) == 0 {
		return tx
	}

	probe = "%" + strings.ToLower(probe) + "%"
	return tx.Where(
		b.db.Where("LOWER(title) LIKE ?", probe).
			Or("LOWER(body) LIKE ?", probe),
	)
}

func (b *Backend) SearchPosts(ctx context.Context, contextID, term string) ([]models.Post, error) {
	var items []models.Post
	tx := b.filterWithContext(b.db.WithContext(ctx), contextID)
	tx = b.filterWithFuzzySearch(tx, term)
	if err := tx.
		Order("rank_score DESC, created_at DESC").
		Limit(50).
		Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

// NewPost ingests a post, detecting its language when the author left it
// blank. Ingestion is outside the Provider contract; only the gateway's
// authoring surface and the seeder use it.
func (b *Backend) NewPost(item models.Post) (models.Post, error) {
	if len(item.Language) == 0 {
		if lang, ok := b.detector.DetectLanguageOf(item.Title + " " + item.Body); ok {
			item.Language = strings.ToLower(lang.IsoCode639_1().String())
		}
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	item.RankScore = rankScore(item)

	if err := b.db.Save(&item).Error; err != nil {
		return item, err
	}
	return item, nil
}

// rankScore is a gravity-style ordering: engagement over age. It only has
// to be stable and opaque to callers, not clever.
func rankScore(post models.Post) float64 {
	engagement := float64(post.LikeCount*4 + post.Points*2 + post.ReplyCount*3 + 1)
	ageHours := time.Since(post.CreatedAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	return engagement / math.Pow(ageHours+2, 1.5)
}

// RecomputeRanking refreshes every post's rank score. Wired to a cron
// schedule so scores decay even without new engagement.
func (b *Backend) RecomputeRanking() {
	var posts []models.Post
	if err := b.db.Find(&posts).Error; err != nil {
		log.Error().Err(err).Msg("An error occurred when loading posts for ranking...")
		return
	}

	for _, post := range posts {
		score := rankScore(post)
		if err := b.db.Model(&models.Post{}).
			Where("id = ?", post.ID).
			Update("rank_score", score).Error; err != nil {
			log.Error().Err(err).Str("post", post.ID).Msg("An error occurred when updating rank score...")
		}
	}

	log.Debug().Int("count", len(posts)).Msg("Recomputed post ranking.")
}
