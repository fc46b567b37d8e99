package router

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func (rt *Router) exportRouter(r fiber.Router, auth fiber.Handler) {
	r.Get("/projects/export", auth, rt.exportProjects)
}

// exportProjects streams the CSV download.
func (rt *Router) exportProjects(c *fiber.Ctx) error {
	payload, filename, err := rt.Exports.ExportCSV()
	if err != nil {
		return rt.serviceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(payload)
}
