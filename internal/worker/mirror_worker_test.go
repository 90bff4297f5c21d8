package worker

import (
	"context"
	"errors"
	"testing"

	"facturation/internal/amqp"
	"facturation/internal/core"
	"facturation/internal/store/memory"
)

type fakeAppender struct {
	rows []core.Document
	err  error
}

func (f *fakeAppender) Append(ctx context.Context, d core.Document) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.rows = append(f.rows, d)
	return "Documents!A2:I2", nil
}

func seededStore(t *testing.T) (*memory.Store, core.Document) {
	t.Helper()
	s := memory.New()
	created, err := s.CreateDocument(context.Background(), core.Document{
		Type:           core.TypeInvoice,
		Number:         "FA-1",
		ClientID:       1,
		Date:           core.NewDate(2024, 3, 15),
		Amount:         core.Money{Cents: 10000},
		TaxRatePercent: 20,
		Status:         core.StatusPaid,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s, created
}

func TestHandleEventCreatedAppendsRow(t *testing.T) {
	s, created := seededStore(t)
	app := &fakeAppender{}
	w := NewMirrorWorker(s, app)

	msg := amqp.NewDocumentEventMessage(amqp.ActionCreated, created.ID)
	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(app.rows) != 1 || app.rows[0].Number != "FA-1" {
		t.Fatalf("rows = %+v", app.rows)
	}
}

func TestHandleEventUnknownDocument(t *testing.T) {
	s, _ := seededStore(t)
	w := NewMirrorWorker(s, &fakeAppender{})

	msg := amqp.NewDocumentEventMessage(amqp.ActionUpdated, 999)
	if err := w.HandleEvent(context.Background(), msg); err == nil {
		t.Fatal("expected error for missing document")
	}
}

func TestHandleEventAppendFailure(t *testing.T) {
	s, created := seededStore(t)
	w := NewMirrorWorker(s, &fakeAppender{err: errors.New("quota")})

	msg := amqp.NewDocumentEventMessage(amqp.ActionCreated, created.ID)
	if err := w.HandleEvent(context.Background(), msg); err == nil {
		t.Fatal("expected append error to propagate")
	}
}

// Deletions do not touch the mirror; the worker acknowledges and moves on.
func TestHandleEventDeletedIsNoop(t *testing.T) {
	s, created := seededStore(t)
	app := &fakeAppender{}
	w := NewMirrorWorker(s, app)

	msg := amqp.NewDocumentEventMessage(amqp.ActionDeleted, created.ID)
	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(app.rows) != 0 {
		t.Fatalf("deletion appended rows: %+v", app.rows)
	}
}

func TestHandleEventUnknownAction(t *testing.T) {
	s, created := seededStore(t)
	w := NewMirrorWorker(s, &fakeAppender{})

	msg := amqp.NewDocumentEventMessage("archived", created.ID)
	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("unknown action should not requeue: %v", err)
	}
}
