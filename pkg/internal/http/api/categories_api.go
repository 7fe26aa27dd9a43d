package api

import (
	"github.com/gofiber/fiber/v2"
)

func listCategories(c *fiber.Ctx) error {
	if err := deps.Resolver.Load(c.Context()); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	return c.JSON(fiber.Map{
		"data": deps.Resolver.Categories(),
	})
}
