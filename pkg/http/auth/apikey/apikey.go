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

package apikey

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/impactlab/aiboard/pkg/id"
)

// The shared api key is an HS256-signed JWT with a fixed expiry.
// There is one key per deployment, not per user; the jti claim only
// exists so a leaked key can be revoked without rotating the secret.

type KeyClaims struct {
	KeyId string `json:"keyId"`
	jwt.RegisteredClaims
}

var issuer = "aiboard"

// GenKey issues a new api key valid for expire from now.
func GenKey(secretKey []byte, expire time.Duration) (key string, keyId string, err error) {
	keyId = id.GetUUIDWithoutDashes()

	claims := &KeyClaims{
		KeyId: keyId,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
			NotBefore: jwt.NewNumericDate(time.Now()),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	key, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
	if err != nil {
		return "", "", err
	}

	return key, keyId, nil
}

// ParseKey validates an api key and returns its claims.
func ParseKey(key, secretKey string) (*KeyClaims, error) {
	claims := new(KeyClaims)
	token, err := jwt.ParseWithClaims(key, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, jwt.ErrTokenExpired
		}
		return nil, fmt.Errorf("invalid api key: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid api key")
	}

	return claims, nil
}
