// Copyright 2025 Aiboard Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/impactlab/aiboard/internal/dashboard/event"
	"github.com/impactlab/aiboard/internal/dashboard/metrics"
	"github.com/impactlab/aiboard/internal/dashboard/service"
	"github.com/impactlab/aiboard/internal/pkg/sse"
	httpx "github.com/impactlab/aiboard/pkg/http"
	"github.com/impactlab/aiboard/pkg/http/middleware"
	"github.com/impactlab/aiboard/pkg/storage"
	"github.com/impactlab/aiboard/pkg/version"
	"github.com/impactlab/aiboard/pkg/ws"
)

type Router struct {
	Http     *httpx.Http
	Redis    *redis.Client
	Projects *service.ProjectService
	Stats    *service.StatsService
	Imports  *service.ImportService
	Exports  *service.ExportService
	Archive  storage.Provider

	hub    ws.Hub
	events *sse.Hub
}

func NewRouter(
	httpConf *httpx.Http,
	redisClient *redis.Client,
	projects *service.ProjectService,
	stats *service.StatsService,
	imports *service.ImportService,
	exports *service.ExportService,
	bus *event.Bus,
	archive storage.Provider,
) *Router {
	rt := &Router{
		Http:     httpConf,
		Redis:    redisClient,
		Projects: projects,
		Stats:    stats,
		Imports:  imports,
		Exports:  exports,
		Archive:  archive,
		hub:      ws.NewHub(),
		events:   sse.NewHub(),
	}
	rt.events.OnSubscribe = func() { metrics.EventSubscribers.Inc() }
	rt.events.OnUnsubscribe = func() { metrics.EventSubscribers.Dec() }

	// every stored change reaches both kinds of live subscriber
	bus.Subscribe(func(ev event.ProjectEvent) {
		rt.hub.BroadcastJSON(ev)
		rt.events.Broadcast(ev)
	})
	return rt
}

func (rt *Router) Router() *fiber.App {
	bodyLimit := rt.Http.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = 20 // MB, bounds import uploads
	}

	app := fiber.New(fiber.Config{
		AppName:      "Aiboard",
		ReadTimeout:  time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(rt.Http.IdleTimeout) * time.Second,
		BodyLimit:    bodyLimit * 1024 * 1024,
	})

	app.Use(middleware.ExceptionMiddleware)
	app.Use(middleware.CorsMiddleware())
	app.Use(middleware.TraceMiddleware())
	app.Use(middleware.AccessLogMiddleware(rt.Http))

	if rt.Http.PProf {
		app.Use(pprof.New())
	}
	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	contextPath := rt.Http.ContextPath
	if contextPath == "" {
		contextPath = "/api/v1"
	}
	api := app.Group(contextPath)

	auth := middleware.AuthorizationMiddleware(rt.Http.Auth, rt.Redis)

	rt.projectRouter(api, auth)
	rt.statsRouter(api, auth)
	rt.importRouter(api, auth)
	rt.exportRouter(api, auth)
	rt.wsRouter(api, auth)
	api.Get("/events", auth, rt.events.HTTPHandler())

	// must stay after every route registration
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).
			JSON(httpx.ResponseErr{ErrCode: httpx.NotFound.Code, ErrMsg: "request path not found", Path: c.Path()})
	})

	return app
}

// serviceError translates service failures into the error envelope.
func (rt *Router) serviceError(c *fiber.Ctx, err error) error {
	var rep *httpx.Response
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		rep = httpx.ProjectNotExist
	case errors.Is(err, service.ErrNameEmpty):
		rep = httpx.ProjectNameIsEmpty
	case errors.Is(err, service.ErrTeamEmpty):
		rep = httpx.ProjectTeamIsEmpty
	case errors.Is(err, service.ErrInvalidStatus):
		rep = httpx.InvalidStatusValue
	case errors.Is(err, service.ErrInvalidPriority):
		rep = httpx.InvalidPriorityValue
	case errors.Is(err, service.ErrUnsupportedFormat):
		rep = httpx.UnsupportedImportFormat
	case errors.Is(err, service.ErrImportParse):
		rep = httpx.ImportFileParseFailed
	case errors.Is(err, service.ErrNoRowsAccepted):
		rep = httpx.ImportNoRowsAccepted
	default:
		rep = httpx.InternalError
	}
	return httpx.WithRepErrMsg(c, rep.Code, rep.Msg, c.Path())
}
