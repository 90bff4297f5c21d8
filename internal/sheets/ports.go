package sheets

import (
	"context"

	"facturation/internal/core"
)

// DocumentAppender mirrors a document as one spreadsheet row.
type DocumentAppender interface {
	Append(ctx context.Context, d core.Document) (rowRef string, err error)
}
