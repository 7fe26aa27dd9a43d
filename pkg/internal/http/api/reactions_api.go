package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/youbuidl/feedcore/pkg/internal/http/exts"
	"github.com/youbuidl/feedcore/pkg/internal/models"
	"github.com/youbuidl/feedcore/pkg/internal/services"
)

func findDisplayedPost(postID string) (models.Post, bool) {
	for _, item := range deps.Feed.Posts() {
		if item.ID == postID {
			return item.Post, true
		}
	}
	for _, item := range deps.Search.Results() {
		if item.ID == postID {
			return item, true
		}
	}
	return models.Post{}, false
}

func reactionStateView(store *services.ReactionStore) fiber.Map {
	return fiber.Map{
		"like": fiber.Map{
			"state": store.State(models.ReactionLike).String(),
			"count": store.LikeCount(),
		},
		"points": fiber.Map{
			"state": store.State(models.ReactionPoints).String(),
			"count": store.Points(),
		},
		"reply_count": store.ReplyCount(),
	}
}

func getReactions(c *fiber.Ctx) error {
	postID := c.Params("postId")

	post, ok := findDisplayedPost(postID)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "post is not part of the displayed feed")
	}

	store := deps.Reactions.Mount(c.Context(), post, viewerID(c))
	return c.JSON(reactionStateView(store))
}

func reactPost(c *fiber.Ctx) error {
	postID := c.Params("postId")

	var data struct {
		Kind string `json:"kind" validate:"required,oneof=like points"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}
	kind, err := models.ParseReactionKind(data.Kind)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	post, ok := findDisplayedPost(postID)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "post is not part of the displayed feed")
	}

	store := deps.Reactions.Mount(c.Context(), post, viewerID(c))

	switch kind {
	case models.ReactionLike:
		err = store.Like(c.Context())
	case models.ReactionPoints:
		err = store.GivePoints(c.Context())
	}
	if err != nil {
		return err
	}

	return c.JSON(reactionStateView(store))
}

func unmountReactions(c *fiber.Ctx) error {
	deps.Reactions.Unmount(c.Params("postId"), viewerID(c))
	return c.SendStatus(fiber.StatusNoContent)
}
