// Package id generates the identifiers used across users, colleges, listings
// and files.
package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New returns a fresh ULID string. The timestamp prefix keeps IDs sortable by
// creation time while staying usable as DynamoDB partition keys.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
