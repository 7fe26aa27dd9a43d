package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/youbuidl/feedcore/pkg/internal/http/exts"
)

func getSearch(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"query":   deps.Search.Query(),
		"loading": deps.Search.Loading(),
		"data":    deps.Search.Results(),
	})
}

func setSearchQuery(c *fiber.Ctx) error {
	var data struct {
		Term string `json:"term" validate:"max=256"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	deps.Search.SetQuery(data.Term)

	return c.JSON(fiber.Map{
		"query":   deps.Search.Query(),
		"loading": deps.Search.Loading(),
		"data":    deps.Search.Results(),
	})
}

func dismissSearch(c *fiber.Ctx) error {
	deps.Search.Dismiss()
	return c.SendStatus(fiber.StatusNoContent)
}
