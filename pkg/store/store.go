// Package store persists design documents for the server surface.
//
// Documents are stored under server-generated IDs. Two backends exist:
//
//   - MemoryStore: in-process map, for development and tests
//   - MongoStore: MongoDB-backed, for deployments that keep documents
//     across restarts
//
// The stored record keeps the document in its wire (JSON) form, so a
// record read back goes through the same decode path as an uploaded
// document.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/ghostify/pkg/doc"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no record exists for the ID.
	ErrNotFound = errors.New("document not found")

	// ErrEmptyID is returned for operations with an empty document ID.
	ErrEmptyID = errors.New("document ID must not be empty")
)

// Record is a stored document with its metadata.
type Record struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Data      []byte    `json:"-" bson:"data"` // document JSON, as produced by doc.Marshal
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Document decodes the record's stored bytes.
func (r *Record) Document() (*doc.Document, error) {
	return doc.Unmarshal(r.Data)
}

// Store is the interface for document storage backends.
type Store interface {
	// Get retrieves a record by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Record, error)

	// Put inserts or replaces a record. CreatedAt is preserved on
	// replace; UpdatedAt is set by the store.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a record. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// List returns all records without their data payloads, newest
	// first.
	List(ctx context.Context) ([]*Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
