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
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	goJwt "github.com/golang-jwt/jwt/v5"
	"github.com/impactlab/aiboard/pkg/http"
	"github.com/impactlab/aiboard/pkg/http/auth/apikey"
	"github.com/impactlab/aiboard/pkg/log"
	"github.com/redis/go-redis/v9"
)

// AuthorizationMiddleware validates the shared api key.
// The key is accepted from "Authorization: Bearer <key>", the
// "X-API-Key" header, or an "apiKey" query parameter since browsers
// cannot attach headers to WebSocket and EventSource requests. When a
// redis client is supplied, revoked key ids are rejected; with no
// redis the signature and expiry alone decide. This function is used
// as the middleware of fiber.
func AuthorizationMiddleware(auth http.Auth, client *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("X-API-Key")
		if key == "" {
			key = c.Query("apiKey")
		}
		if key == "" {
			header := c.Get("Authorization")
			if header == "" {
				return http.WithRepErrMsg(c, http.ApiKeyBeEmpty.Code, http.ApiKeyBeEmpty.Msg, c.Path())
			}
			parts := strings.SplitN(header, " ", 2)
			if !(len(parts) == 2 && parts[0] == "Bearer") {
				return http.WithRepErrMsg(c, http.ApiKeyFormatIncorrect.Code, http.ApiKeyFormatIncorrect.Msg, c.Path())
			}
			key = parts[1]
		}

		claims, err := apikey.ParseKey(key, auth.SecretKey)
		if err != nil {
			if errors.Is(err, goJwt.ErrTokenExpired) {
				return http.WithRepErrMsg(c, http.ApiKeyExpired.Code, http.ApiKeyExpired.Msg, c.Path())
			}
			log.Errorf("parse api key failed: %v", err)
			return http.WithRepErrMsg(c, http.InvalidApiKey.Code, http.InvalidApiKey.Msg, c.Path())
		}

		// revocation list is best effort: a dead redis must not take
		// the dashboard down with it
		if client != nil {
			revokedKey := auth.RedisKeyPrefix + "revoked:" + claims.KeyId
			exists, err := client.Exists(context.Background(), revokedKey).Result()
			if err != nil {
				log.Errorf("redis check revoked api key failed: %v", err)
			} else if exists > 0 {
				return http.WithRepErrMsg(c, http.ApiKeyRevoked.Code, http.ApiKeyRevoked.Msg, c.Path())
			}
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
