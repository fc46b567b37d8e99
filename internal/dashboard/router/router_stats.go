package router

import (
	"github.com/gofiber/fiber/v2"

	httpx "github.com/impactlab/aiboard/pkg/http"
)

func (rt *Router) statsRouter(r fiber.Router, auth fiber.Handler) {
	stats := r.Group("/stats", auth)
	{
		stats.Get("/teams", rt.teamStats)
	}
}

func (rt *Router) teamStats(c *fiber.Ctx) error {
	stats, err := rt.Stats.TeamStats(c.UserContext())
	if err != nil {
		return rt.serviceError(c, err)
	}
	return httpx.WithRepJSON(c, stats)
}
