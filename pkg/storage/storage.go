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

package storage

import (
	"context"
	"io"
	"strings"
)

// Conf holds the S3-compatible object store settings used to archive
// raw import uploads. Archival is optional: an empty endpoint disables it.
type Conf struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	BasePath  string
	UseTLS    bool
}

// Enabled reports whether archival is configured.
func (c Conf) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// Provider persists uploaded files.
type Provider interface {
	// PutObject stores an object and returns its full path in the bucket
	PutObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	// GetObject returns the object payload
	GetObject(ctx context.Context, objectName string) ([]byte, error)
	// Delete removes the object
	Delete(ctx context.Context, objectName string) error
}

func getFullPath(basePath, objectName string) string {
	if basePath == "" {
		return objectName
	}
	return strings.TrimSuffix(basePath, "/") + "/" + objectName
}
