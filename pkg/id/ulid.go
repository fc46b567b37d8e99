package id

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// GetUlid generates a new lexicographically sortable unique id.
func GetUlid() string {
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	ms := ulid.Timestamp(time.Now())
	id, err := ulid.New(ms, entropy)
	if err != nil {
		return ""
	}
	return id.String()
}
