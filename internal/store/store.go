// Package store persists save records. Store is the collaborator the capture
// service writes to; Badger is the reference implementation.
package store

import (
	"context"
	"errors"

	"github.com/mrjoshuak/savekit/types"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("record not found")

// Store defines the storage operations the capture service depends on.
type Store interface {
	// Insert stores rec and returns its identifier. A record without an ID
	// gets a fresh one.
	Insert(ctx context.Context, rec types.SaveRecord) (string, error)

	// Get returns the record with the given ID.
	Get(ctx context.Context, id string) (types.SaveRecord, error)

	// ListByUser returns all records saved by userID.
	ListByUser(ctx context.Context, userID string) ([]types.SaveRecord, error)

	// AddTags associates tags with the record. Existing associations are kept.
	AddTags(ctx context.Context, id string, tags []string) error

	// TagsFor returns the tags associated with the record, sorted.
	TagsFor(ctx context.Context, id string) ([]string, error)

	// Close gracefully shuts down the store.
	Close() error
}
