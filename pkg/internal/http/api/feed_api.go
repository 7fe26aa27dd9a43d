package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/youbuidl/feedcore/pkg/internal/services"
)

func getFeed(c *fiber.Ctx) error {
	category := c.Query("category", services.ScopeAll)
	page := c.QueryInt("page", 0)
	if page < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "page must not be negative")
	}

	feed := deps.Feed

	// Category switches reset pagination; a page change within the same
	// scope keeps it.
	var err error
	if category != feed.Scope() {
		if err = feed.SelectCategory(c.Context(), category); err == nil && page > 0 {
			err = feed.SetPage(c.Context(), page)
		}
	} else if page != feed.Page() || len(feed.Posts()) == 0 {
		err = feed.SetPage(c.Context(), page)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	return c.JSON(fiber.Map{
		"category": feed.Scope(),
		"page":     feed.Page(),
		"loading":  feed.Loading(),
		"data":     feed.Posts(),
	})
}
