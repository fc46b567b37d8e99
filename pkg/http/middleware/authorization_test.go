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

package middleware

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/impactlab/aiboard/pkg/http"
	"github.com/impactlab/aiboard/pkg/http/auth/apikey"
)

const authTestSecret = "middleware-test-secret"

func authTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	auth := http.Auth{SecretKey: authTestSecret}
	app.Get("/protected", AuthorizationMiddleware(auth, nil), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func envelopeCode(t *testing.T, resp *nethttp.Response) int {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var env struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("unmarshal body %q: %v", body, err)
	}
	return env.Code
}

func TestAuthorizationMissingKey(t *testing.T) {
	app := authTestApp(t)

	req := httptest.NewRequest(nethttp.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}

	if code := envelopeCode(t, resp); code != http.ApiKeyBeEmpty.Code {
		t.Errorf("expected envelope code %d, got %d", http.ApiKeyBeEmpty.Code, code)
	}
}

func TestAuthorizationXAPIKeyHeader(t *testing.T) {
	app := authTestApp(t)

	key, _, err := apikey.GenKey([]byte(authTestSecret), time.Hour)
	if err != nil {
		t.Fatalf("gen key: %v", err)
	}

	req := httptest.NewRequest(nethttp.MethodGet, "/protected", nil)
	req.Header.Set("X-API-Key", key)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Errorf("expected handler to run, got body %q", body)
	}
}

func TestAuthorizationBearerHeader(t *testing.T) {
	app := authTestApp(t)

	key, _, err := apikey.GenKey([]byte(authTestSecret), time.Hour)
	if err != nil {
		t.Fatalf("gen key: %v", err)
	}

	req := httptest.NewRequest(nethttp.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+key)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Errorf("expected handler to run, got body %q", body)
	}
}

func TestAuthorizationQueryParam(t *testing.T) {
	app := authTestApp(t)

	key, _, err := apikey.GenKey([]byte(authTestSecret), time.Hour)
	if err != nil {
		t.Fatalf("gen key: %v", err)
	}

	req := httptest.NewRequest(nethttp.MethodGet, "/protected?apiKey="+key, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Errorf("expected handler to run, got body %q", body)
	}
}

func TestAuthorizationInvalidKey(t *testing.T) {
	app := authTestApp(t)

	req := httptest.NewRequest(nethttp.MethodGet, "/protected", nil)
	req.Header.Set("X-API-Key", "definitely-not-a-key")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}

	if code := envelopeCode(t, resp); code != http.InvalidApiKey.Code {
		t.Errorf("expected envelope code %d, got %d", http.InvalidApiKey.Code, code)
	}
}

func TestAuthorizationExpiredKey(t *testing.T) {
	app := authTestApp(t)

	key, _, err := apikey.GenKey([]byte(authTestSecret), -time.Hour)
	if err != nil {
		t.Fatalf("gen key: %v", err)
	}

	req := httptest.NewRequest(nethttp.MethodGet, "/protected", nil)
	req.Header.Set("X-API-Key", key)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}

	if code := envelopeCode(t, resp); code != http.ApiKeyExpired.Code {
		t.Errorf("expected envelope code %d, got %d", http.ApiKeyExpired.Code, code)
	}
}

func TestAuthorizationMalformedBearer(t *testing.T) {
	app := authTestApp(t)

	req := httptest.NewRequest(nethttp.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}

	if code := envelopeCode(t, resp); code != http.ApiKeyFormatIncorrect.Code {
		t.Errorf("expected envelope code %d, got %d", http.ApiKeyFormatIncorrect.Code, code)
	}
}
