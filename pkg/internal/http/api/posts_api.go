package api

import (
	"github.com/gofiber/fiber/v2"

	"gorm.io/datatypes"

	"github.com/youbuidl/feedcore/pkg/internal/http/exts"
	"github.com/youbuidl/feedcore/pkg/internal/models"
)

// createPost is only mapped in self-hosted mode; hosted backends own
// authoring themselves.
func createPost(c *fiber.Ctx) error {
	if len(viewerID(c)) == 0 {
		return fiber.NewError(fiber.StatusUnauthorized, "you must be connected to publish posts")
	}

	var data struct {
		ID         string   `json:"id" validate:"required,max=128"`
		Title      string   `json:"title" validate:"max=256"`
		Body       string   `json:"body"`
		Media      []string `json:"media"`
		CategoryID string   `json:"category_id"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := deps.Local.NewPost(models.Post{
		ID:         data.ID,
		Title:      data.Title,
		Body:       data.Body,
		Media:      datatypes.NewJSONSlice(data.Media),
		CategoryID: data.CategoryID,
		CreatorRef: viewerID(c),
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(item)
}
