package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"facturation/internal/core"
)

func newTestRepo(t *testing.T) (*SQLiteRepository, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo, dbPath
}

func testDocument(clientID int64, number string, day int) core.Document {
	return core.Document{
		Type:           core.TypeInvoice,
		Number:         number,
		ClientID:       clientID,
		Date:           core.NewDate(2024, 3, day),
		Amount:         core.Money{Cents: 10000},
		TaxRatePercent: 20,
		Status:         core.StatusPaid,
	}
}

func TestDocumentLifecycle(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	client, err := repo.CreateClient(ctx, core.Client{Name: "Acme", City: "Paris"})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	created, err := repo.CreateDocument(ctx, testDocument(client.ID, "FA-1", 15))
	if err != nil {
		t.Fatalf("create document: %v", err)
	}
	if created.ID == 0 || created.ClientName != "Acme" {
		t.Fatalf("created = %+v", created)
	}

	upd := testDocument(client.ID, "FA-1", 15)
	upd.Status = core.StatusPending
	if err := repo.UpdateDocument(ctx, created.ID, upd); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.GetDocument(ctx, created.ID)
	if err != nil || got.Status != core.StatusPending {
		t.Fatalf("after update = %+v (err=%v)", got, err)
	}

	if err := repo.DeleteDocument(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetDocument(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListDocumentsOrderAndJoin(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	client, _ := repo.CreateClient(ctx, core.Client{Name: "Acme"})
	if _, err := repo.CreateDocument(ctx, testDocument(client.ID, "FA-old", 1)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.CreateDocument(ctx, testDocument(client.ID, "FA-new", 20)); err != nil {
		t.Fatalf("create: %v", err)
	}

	docs, err := repo.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 || docs[0].Number != "FA-new" || docs[1].Number != "FA-old" {
		t.Fatalf("order: %+v", docs)
	}
	if docs[0].ClientName != "Acme" {
		t.Fatalf("join did not resolve name: %+v", docs[0])
	}
}

func TestDeleteClientLeavesDocuments(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	client, _ := repo.CreateClient(ctx, core.Client{Name: "Acme"})
	created, _ := repo.CreateDocument(ctx, testDocument(client.ID, "FA-1", 15))

	if err := repo.DeleteClient(ctx, client.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}
	got, err := repo.GetDocument(ctx, created.ID)
	if err != nil {
		t.Fatalf("document should survive: %v", err)
	}
	if got.DisplayClient() != core.FallbackClientName {
		t.Fatalf("display = %q", got.DisplayClient())
	}
}

// Rows written by older tooling may carry unknown labels or a NULL tax
// rate. Unknown enums drop the row from the snapshot; a NULL rate
// defaults to the standard one.
func TestListSkipsDegenerateRows(t *testing.T) {
	ctx := context.Background()
	repo, dbPath := newTestRepo(t)

	client, _ := repo.CreateClient(ctx, core.Client{Name: "Acme"})
	if _, err := repo.CreateDocument(ctx, testDocument(client.ID, "FA-good", 15)); err != nil {
		t.Fatalf("create: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `
		INSERT INTO documents (type, numero, client_id, date, montant_ht_cents, taux_tva, statut)
		VALUES ('Invoice', 'FA-bad', ?, '2024-03-16', 5000, NULL, 'Payé')`, client.ID)
	if err != nil {
		t.Fatalf("insert bad row: %v", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO documents (type, numero, client_id, date, montant_ht_cents, taux_tva, statut)
		VALUES ('Facture', 'FA-null-rate', ?, '2024-03-17', 5000, NULL, 'Payé')`, client.ID)
	if err != nil {
		t.Fatalf("insert null-rate row: %v", err)
	}

	docs, err := repo.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected bad row skipped, got %+v", docs)
	}
	for _, d := range docs {
		if d.Number == "FA-null-rate" && d.TaxRatePercent != DefaultTaxRate {
			t.Fatalf("null rate not defaulted: %+v", d)
		}
	}
}

func TestNormalizeMalformedDate(t *testing.T) {
	row := DocumentRow{
		ID:          1,
		Type:        "Facture",
		Number:      "FA-1",
		Date:        "16/03/2024",
		AmountCents: 5000,
		Status:      "Payé",
	}
	doc, err := row.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !doc.Date.IsZero() {
		t.Fatalf("malformed date should leave zero Date: %+v", doc)
	}
	if doc.Date.Year() != 0 {
		t.Fatalf("zero date year = %d", doc.Date.Year())
	}
}

func TestUpdateMissingDocument(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	err := repo.UpdateDocument(ctx, 999, testDocument(1, "FA-x", 15))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
