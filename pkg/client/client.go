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

// Package client is a small Go SDK for the aiboard HTTP API. It mirrors
// the server's JSON envelope and exposes typed CRUD calls plus a
// server-sent-events subscription for live project changes.
package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/impactlab/aiboard/pkg/safe"
)

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// Project is the wire representation of a tracked project.
type Project struct {
	ProjectId     string  `json:"projectId"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Team          string  `json:"team"`
	Status        string  `json:"status"`
	Priority      string  `json:"priority"`
	AhtImpact     float64 `json:"ahtImpact"`
	CostSaving    float64 `json:"costSaving"`
	QualityImpact float64 `json:"qualityImpact"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}

// TeamStats is the aggregated view returned by the stats endpoint.
type TeamStats struct {
	Team          string  `json:"team"`
	TotalProjects int     `json:"totalProjects"`
	NotStarted    int     `json:"notStarted"`
	InProgress    int     `json:"inProgress"`
	Completed     int     `json:"completed"`
	AhtImpact     float64 `json:"ahtImpact"`
	CostSaving    float64 `json:"costSaving"`
	QualityImpact float64 `json:"qualityImpact"`
	Progress      int     `json:"progress"`
}

// Event is a single change notification from the events stream.
type Event struct {
	Type    string  `json:"type"`
	Project Project `json:"project"`
}

// Filter narrows ListProjects results. Zero values mean "no constraint".
type Filter struct {
	Team     string
	Status   string
	Priority string
	Search   string
}

// envelope covers both the success and error response shapes; they
// share the code field.
type envelope struct {
	Code   int             `json:"code"`
	Detail json.RawMessage `json:"detail"`
	Msg    string          `json:"msg"`
	ErrMsg string          `json:"errMsg"`
	Path   string          `json:"path"`
}

const successCode = 200

// APIError is returned when the server answers with an error envelope.
type APIError struct {
	Code int
	Msg  string
	Path string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("aiboard: api error %d: %s", e.Code, e.Msg)
}

type Conf struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	rc *resty.Client

	// stream carries no timeout: an event subscription lives until its
	// context is cancelled, not for a fixed request window.
	stream *resty.Client
}

func New(conf Conf) *Client {
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	baseURL := strings.TrimSuffix(conf.BaseURL, "/")
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("X-API-Key", conf.APIKey).
		SetHeader("Accept", "application/json")
	stream := resty.New().
		SetBaseURL(baseURL).
		SetHeader("X-API-Key", conf.APIKey)
	return &Client{rc: rc, stream: stream}
}

func decode(resp *resty.Response, out any) error {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		if resp.IsError() {
			return &APIError{Code: resp.StatusCode(), Msg: resp.Status()}
		}
		return fmt.Errorf("aiboard: decode envelope: %w", err)
	}
	// the server reports most failures inside the envelope, not via
	// the HTTP status
	if env.Code != 0 && env.Code != successCode {
		msg := env.ErrMsg
		if msg == "" {
			msg = env.Msg
		}
		return &APIError{Code: env.Code, Msg: msg, Path: env.Path}
	}
	if resp.IsError() {
		return &APIError{Code: resp.StatusCode(), Msg: resp.Status()}
	}
	if out == nil || len(env.Detail) == 0 {
		return nil
	}
	return json.Unmarshal(env.Detail, out)
}

// ListProjects returns projects matching the filter, newest first.
func (c *Client) ListProjects(ctx context.Context, filter Filter) ([]Project, error) {
	req := c.rc.R().SetContext(ctx)
	if filter.Team != "" {
		req.SetQueryParam("team", filter.Team)
	}
	if filter.Status != "" {
		req.SetQueryParam("status", filter.Status)
	}
	if filter.Priority != "" {
		req.SetQueryParam("priority", filter.Priority)
	}
	if filter.Search != "" {
		req.SetQueryParam("search", filter.Search)
	}
	resp, err := req.Get("/api/v1/projects")
	if err != nil {
		return nil, err
	}
	var projects []Project
	if err := decode(resp, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a project and returns the stored record.
func (c *Client) CreateProject(ctx context.Context, p Project) (*Project, error) {
	resp, err := c.rc.R().SetContext(ctx).SetBody(p).Post("/api/v1/projects")
	if err != nil {
		return nil, err
	}
	var created Project
	if err := decode(resp, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProject replaces the mutable fields of an existing project.
func (c *Client) UpdateProject(ctx context.Context, projectId string, p Project) (*Project, error) {
	resp, err := c.rc.R().SetContext(ctx).SetBody(p).Put("/api/v1/projects/" + projectId)
	if err != nil {
		return nil, err
	}
	var updated Project
	if err := decode(resp, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProject removes a project by its public id.
func (c *Client) DeleteProject(ctx context.Context, projectId string) error {
	resp, err := c.rc.R().SetContext(ctx).Delete("/api/v1/projects/" + projectId)
	if err != nil {
		return err
	}
	return decode(resp, nil)
}

// TeamStats returns per-team aggregates.
func (c *Client) TeamStats(ctx context.Context) ([]TeamStats, error) {
	resp, err := c.rc.R().SetContext(ctx).Get("/api/v1/stats/teams")
	if err != nil {
		return nil, err
	}
	var stats []TeamStats
	if err := decode(resp, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// ExportCSV downloads the CSV export of all projects.
func (c *Client) ExportCSV(ctx context.Context) ([]byte, error) {
	resp, err := c.rc.R().SetContext(ctx).Get("/api/v1/projects/export")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, &APIError{Code: resp.StatusCode(), Msg: resp.Status()}
	}
	return resp.Body(), nil
}

// Subscribe opens the server-sent-events stream and invokes handler for
// every project change until the stream ends or cancel is called. The
// returned cancel is idempotent.
func (c *Client) Subscribe(ctx context.Context, handler func(Event)) (func(), error) {
	streamCtx, stop := context.WithCancel(ctx)
	resp, err := c.stream.R().
		SetContext(streamCtx).
		SetDoNotParseResponse(true).
		SetHeader("Accept", "text/event-stream").
		Get("/api/v1/events")
	if err != nil {
		stop()
		return nil, err
	}
	if resp.StatusCode() >= 400 {
		resp.RawBody().Close()
		stop()
		return nil, &APIError{Code: resp.StatusCode(), Msg: resp.Status()}
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			stop()
			resp.RawBody().Close()
		})
	}

	safe.Go(func() {
		defer cancel()
		scanner := bufio.NewScanner(resp.RawBody())
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data:") {
				continue
			}
			payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if payload == "" {
				continue
			}
			var ev Event
			if err := json.Unmarshal([]byte(payload), &ev); err != nil {
				continue
			}
			handler(ev)
		}
	})
	return cancel, nil
}

// ApplyEvent merges a change event into a local project slice, the way a
// dashboard keeps its in-memory view current without refetching.
func ApplyEvent(projects []Project, ev Event) []Project {
	switch ev.Type {
	case EventCreated:
		for i := range projects {
			if projects[i].ProjectId == ev.Project.ProjectId {
				projects[i] = ev.Project
				return projects
			}
		}
		return append([]Project{ev.Project}, projects...)
	case EventUpdated:
		for i := range projects {
			if projects[i].ProjectId == ev.Project.ProjectId {
				projects[i] = ev.Project
				return projects
			}
		}
		return projects
	case EventDeleted:
		out := make([]Project, 0, len(projects))
		for _, p := range projects {
			if p.ProjectId != ev.Project.ProjectId {
				out = append(out, p)
			}
		}
		return out
	default:
		return projects
	}
}
