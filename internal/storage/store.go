// Package storage defines the durable record store contract the registries
// persist through: keyed CRUD on JSON records inside named collections.
package storage

import (
	"context"
	"errors"
)

// Collection names, one per entity.
const (
	CollectionUsers  = "users"
	CollectionTokens = "tokens"
	CollectionChecks = "checks"
)

var (
	// ErrNoRecord is returned when the addressed record does not exist.
	ErrNoRecord = errors.New("record not found")
	// ErrAlreadyExists is returned by Create when the key is taken.
	ErrAlreadyExists = errors.New("record already exists")
)

//go:generate mockgen -destination=../mocks/mock_store.go -package=mocks github.com/QueasyListening/uptime-api/internal/storage Store

// Store is the durable record store. Implementations must replace a record
// atomically on Update so concurrent readers never observe a torn write.
// Any failure other than ErrNoRecord/ErrAlreadyExists means the operation
// could not be committed.
type Store interface {
	Create(ctx context.Context, collection, id string, record any) error
	Read(ctx context.Context, collection, id string, out any) error
	Update(ctx context.Context, collection, id string, record any) error
	Delete(ctx context.Context, collection, id string) error
}
