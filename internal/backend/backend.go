// Package backend selects and constructs the document/client store.
package backend

import (
	"context"
	"fmt"

	"facturation/internal/store"
	"facturation/internal/store/memory"
	"facturation/internal/storage"
)

// Store is the unified backend surface the service and HTTP layers use.
type Store interface {
	store.DocumentStore
	store.ClientStore
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Type selects a backend implementation.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	return t == SQLiteBackend || t == MemoryBackend
}

// Config holds what backend construction needs.
type Config struct {
	Type         Type
	SQLiteDBPath string
}

// New builds the configured backend and its cleanup function.
func New(ctx context.Context, cfg Config) (Store, CleanupFunc, error) {
	switch cfg.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite backend: %w", err)
		}
		return repo, repo.Close, nil
	case MemoryBackend:
		return memory.New(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend type %q", cfg.Type)
	}
}
