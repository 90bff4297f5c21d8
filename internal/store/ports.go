// Package store defines the ports every document/client backend
// implements. The reporting core only ever consumes full snapshots; it
// never relies on store-side ordering for correctness.
package store

import (
	"context"
	"errors"

	"facturation/internal/core"
)

// ErrNotFound is returned by every backend when a document or client id
// does not exist. Handlers map it to a 404.
var ErrNotFound = errors.New("not found")

type (
	DocumentStore interface {
		// ListDocuments returns the full snapshot, client names resolved,
		// ordered date descending.
		ListDocuments(ctx context.Context) ([]core.Document, error)
		GetDocument(ctx context.Context, id int64) (core.Document, error)
		CreateDocument(ctx context.Context, d core.Document) (core.Document, error)
		UpdateDocument(ctx context.Context, id int64, d core.Document) error
		DeleteDocument(ctx context.Context, id int64) error
	}

	ClientStore interface {
		// ListClients returns all clients ordered by name ascending.
		ListClients(ctx context.Context) ([]core.Client, error)
		CreateClient(ctx context.Context, c core.Client) (core.Client, error)
		// DeleteClient removes the client only; documents keep their
		// reference and resolve to the fallback display name.
		DeleteClient(ctx context.Context, id int64) error
	}
)
