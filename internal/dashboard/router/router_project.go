package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/impactlab/aiboard/internal/dashboard/model"
	httpx "github.com/impactlab/aiboard/pkg/http"
)

func (rt *Router) projectRouter(r fiber.Router, auth fiber.Handler) {
	project := r.Group("/projects", auth)
	{
		project.Get("", rt.listProjects)
		project.Post("", rt.createProject)
		project.Put("/:projectId", rt.updateProject)
		project.Delete("/:projectId", rt.deleteProject)
	}
}

func (rt *Router) listProjects(c *fiber.Ctx) error {
	var query model.ProjectQueryReq
	if err := c.QueryParser(&query); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}

	projects, err := rt.Projects.ListProjects(query)
	if err != nil {
		return rt.serviceError(c, err)
	}
	return httpx.WithRepJSON(c, projects)
}

func (rt *Router) createProject(c *fiber.Ctx) error {
	var req model.CreateProjectReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}

	project, err := rt.Projects.CreateProject(&req)
	if err != nil {
		return rt.serviceError(c, err)
	}
	return httpx.WithRepJSON(c, project)
}

func (rt *Router) updateProject(c *fiber.Ctx) error {
	projectId := c.Params("projectId")
	var req model.UpdateProjectReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}

	project, err := rt.Projects.UpdateProject(projectId, &req)
	if err != nil {
		return rt.serviceError(c, err)
	}
	return httpx.WithRepJSON(c, project)
}

func (rt *Router) deleteProject(c *fiber.Ctx) error {
	projectId := c.Params("projectId")
	if err := rt.Projects.DeleteProject(projectId); err != nil {
		return rt.serviceError(c, err)
	}
	return httpx.WithRepNotDetail(c)
}
