// Package worker consumes document events and mirrors the affected
// documents into the configured spreadsheet.
package worker

import (
	"context"
	"fmt"

	"facturation/internal/amqp"
	"facturation/internal/log"
	"facturation/internal/sheets"
	"facturation/internal/store"
)

type MirrorWorker struct {
	docs     store.DocumentStore
	appender sheets.DocumentAppender
	logger   *log.Logger
}

func NewMirrorWorker(docs store.DocumentStore, appender sheets.DocumentAppender) *MirrorWorker {
	return &MirrorWorker{
		docs:     docs,
		appender: appender,
		logger:   log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker),
	}
}

// HandleEvent processes one document event. Created and updated
// documents are appended as a fresh row; deletions are only logged,
// since the mirror is an append-only journal, not a replica.
func (w *MirrorWorker) HandleEvent(ctx context.Context, msg *amqp.DocumentEventMessage) error {
	switch msg.Action {
	case amqp.ActionCreated, amqp.ActionUpdated:
		doc, err := w.docs.GetDocument(ctx, msg.ID)
		if err != nil {
			return fmt.Errorf("load document %d: %w", msg.ID, err)
		}

		ref, err := w.appender.Append(ctx, doc)
		if err != nil {
			return fmt.Errorf("mirror document %d: %w", msg.ID, err)
		}

		w.logger.InfoContext(ctx, "Document mirrored",
			log.FieldOperation, log.OpMirror,
			log.FieldDocumentID, msg.ID,
			"action", msg.Action,
			"row_ref", ref)
		return nil
	case amqp.ActionDeleted:
		w.logger.InfoContext(ctx, "Document deleted upstream, mirror row kept",
			log.FieldDocumentID, msg.ID)
		return nil
	default:
		w.logger.WarnContext(ctx, "Unknown document event action",
			"action", msg.Action, log.FieldDocumentID, msg.ID)
		return nil
	}
}
