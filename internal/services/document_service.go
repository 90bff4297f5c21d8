package services

import (
	"context"
	"fmt"
	"log/slog"

	"facturation/internal/amqp"
	"facturation/internal/core"
	"facturation/internal/store"

	"golang.org/x/sync/errgroup"
)

// DocumentService orchestrates document and client operations: writes
// go through the store, then a change event is published for the sheet
// mirror. Publishing is fire-and-forget; the write already succeeded.
type DocumentService struct {
	docs       store.DocumentStore
	clients    store.ClientStore
	amqpClient *amqp.Client
}

func NewDocumentService(docs store.DocumentStore, clients store.ClientStore, amqpClient *amqp.Client) *DocumentService {
	return &DocumentService{
		docs:       docs,
		clients:    clients,
		amqpClient: amqpClient,
	}
}

// Snapshot loads documents and clients concurrently. Both lists are
// full reads; the reporting core recomputes everything from them.
func (s *DocumentService) Snapshot(ctx context.Context) ([]core.Document, []core.Client, error) {
	var (
		docs    []core.Document
		clients []core.Client
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		docs, err = s.docs.ListDocuments(gctx)
		if err != nil {
			return fmt.Errorf("list documents: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		clients, err = s.clients.ListClients(gctx)
		if err != nil {
			return fmt.Errorf("list clients: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return docs, clients, nil
}

func (s *DocumentService) ListDocuments(ctx context.Context) ([]core.Document, error) {
	return s.docs.ListDocuments(ctx)
}

func (s *DocumentService) ListClients(ctx context.Context) ([]core.Client, error) {
	return s.clients.ListClients(ctx)
}

func (s *DocumentService) CreateDocument(ctx context.Context, d core.Document) (core.Document, error) {
	if err := d.Validate(); err != nil {
		return core.Document{}, err
	}
	created, err := s.docs.CreateDocument(ctx, d)
	if err != nil {
		return core.Document{}, fmt.Errorf("create document: %w", err)
	}
	s.publishEvent(ctx, amqp.ActionCreated, created.ID)
	return created, nil
}

func (s *DocumentService) UpdateDocument(ctx context.Context, id int64, d core.Document) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := s.docs.UpdateDocument(ctx, id, d); err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	s.publishEvent(ctx, amqp.ActionUpdated, id)
	return nil
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id int64) error {
	if err := s.docs.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	s.publishEvent(ctx, amqp.ActionDeleted, id)
	return nil
}

func (s *DocumentService) CreateClient(ctx context.Context, c core.Client) (core.Client, error) {
	if err := c.Validate(); err != nil {
		return core.Client{}, err
	}
	created, err := s.clients.CreateClient(ctx, c)
	if err != nil {
		return core.Client{}, fmt.Errorf("create client: %w", err)
	}
	return created, nil
}

// DeleteClient removes the client without touching its documents; they
// fall back to the unknown-client display name on the next snapshot.
func (s *DocumentService) DeleteClient(ctx context.Context, id int64) error {
	if err := s.clients.DeleteClient(ctx, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

func (s *DocumentService) publishEvent(ctx context.Context, action string, id int64) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishDocumentEvent(ctx, action, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish document event",
			"action", action, "id", id, "error", err)
	}
}
