// Package memory is an in-process store used by the memory backend and
// by handler tests. Snapshots are copies; callers never see shared
// mutable state.
package memory

import (
	"context"
	"sort"
	"sync"

	"facturation/internal/core"
	"facturation/internal/store"
)

var ErrNotFound = store.ErrNotFound

type Store struct {
	mu         sync.Mutex
	docs       map[int64]core.Document
	clients    map[int64]core.Client
	nextDoc    int64
	nextClient int64
}

func New() *Store {
	return &Store{
		docs:       make(map[int64]core.Document),
		clients:    make(map[int64]core.Client),
		nextDoc:    1,
		nextClient: 1,
	}
}

func (s *Store) ListDocuments(ctx context.Context) ([]core.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Document, 0, len(s.docs))
	for _, d := range s.docs {
		d.ClientName = s.resolveClientLocked(d.ClientID)
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) GetDocument(ctx context.Context, id int64) (core.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.docs[id]
	if !ok {
		return core.Document{}, ErrNotFound
	}
	d.ClientName = s.resolveClientLocked(d.ClientID)
	return d, nil
}

func (s *Store) CreateDocument(ctx context.Context, d core.Document) (core.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = s.nextDoc
	s.nextDoc++
	s.docs[d.ID] = d
	d.ClientName = s.resolveClientLocked(d.ClientID)
	return d, nil
}

func (s *Store) UpdateDocument(ctx context.Context, id int64, d core.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	d.ID = id
	s.docs[id] = d
	return nil
}

func (s *Store) DeleteDocument(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

func (s *Store) ListClients(ctx context.Context) ([]core.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateClient(ctx context.Context, c core.Client) (core.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextClient
	s.nextClient++
	s.clients[c.ID] = c
	return c, nil
}

func (s *Store) DeleteClient(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[id]; !ok {
		return ErrNotFound
	}
	// No cascade: documents keep the dangling reference.
	delete(s.clients, id)
	return nil
}

func (s *Store) resolveClientLocked(clientID int64) string {
	if c, ok := s.clients[clientID]; ok {
		return c.Name
	}
	return ""
}
