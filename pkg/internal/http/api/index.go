package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/youbuidl/feedcore/pkg/internal/provider/local"
	"github.com/youbuidl/feedcore/pkg/internal/services"
)

// Deps is everything the REST surface needs, injected at server
// construction. No handler reaches for ambient state.
type Deps struct {
	Feed      *services.FeedController
	Search    *services.SearchController
	Resolver  *services.CategoryResolver
	Reactions *services.ReactionRegistry

	// Local is set only in self-hosted mode and unlocks the authoring
	// endpoints.
	Local *local.Backend
}

var deps *Deps

func MapAPIs(app *fiber.App, baseURL string, d *Deps) {
	deps = d

	api := app.Group(baseURL)
	{
		api.Get("/feed", getFeed)
		api.Get("/categories", listCategories)

		api.Get("/search", getSearch)
		api.Put("/search", setSearchQuery)
		api.Delete("/search", dismissSearch)

		api.Get("/posts/:postId/reactions", getReactions)
		api.Post("/posts/:postId/reactions", reactPost)
		api.Delete("/posts/:postId/reactions", unmountReactions)

		if d.Local != nil {
			api.Post("/posts", createPost)
		}
	}
}

func viewerID(c *fiber.Ctx) string {
	return c.Get("X-Viewer-Id")
}
