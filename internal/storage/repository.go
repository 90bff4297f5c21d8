package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"facturation/internal/core"
	"facturation/internal/store"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a document or client id does not exist.
var ErrNotFound = store.ErrNotFound

// DefaultTaxRate is applied when a stored row has no tax rate.
const DefaultTaxRate = 20

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// DocumentRow mirrors a raw documents row joined to its client name,
// before normalization into the domain shape.
type DocumentRow struct {
	ID          int64
	Type        string
	Number      string
	ClientID    sql.NullInt64
	ClientName  sql.NullString
	Date        string
	AmountCents int64
	TaxRate     sql.NullFloat64
	Status      string
	PaymentDate sql.NullString
}

const documentColumns = `d.id, d.type, d.numero, d.client_id, c.nom, d.date, d.montant_ht_cents, d.taux_tva, d.statut, d.date_paiement`

// ListDocuments returns the full snapshot ordered date descending, with
// client names resolved by a LEFT JOIN so documents referencing a
// deleted client still load. Rows that fail normalization are logged
// and skipped rather than failing the snapshot.
func (r *SQLiteRepository) ListDocuments(ctx context.Context) ([]core.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents d
		LEFT JOIN clients c ON c.id = d.client_id
		ORDER BY d.date DESC, d.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []core.Document
	for rows.Next() {
		var row DocumentRow
		if err := rows.Scan(&row.ID, &row.Type, &row.Number, &row.ClientID, &row.ClientName,
			&row.Date, &row.AmountCents, &row.TaxRate, &row.Status, &row.PaymentDate); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc, err := row.Normalize()
		if err != nil {
			slog.WarnContext(ctx, "Skipping degenerate document row",
				"id", row.ID, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

func (r *SQLiteRepository) GetDocument(ctx context.Context, id int64) (core.Document, error) {
	var row DocumentRow
	err := r.db.QueryRowContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents d
		LEFT JOIN clients c ON c.id = d.client_id
		WHERE d.id = ?`, id).
		Scan(&row.ID, &row.Type, &row.Number, &row.ClientID, &row.ClientName,
			&row.Date, &row.AmountCents, &row.TaxRate, &row.Status, &row.PaymentDate)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Document{}, ErrNotFound
	}
	if err != nil {
		return core.Document{}, fmt.Errorf("get document: %w", err)
	}
	return row.Normalize()
}

func (r *SQLiteRepository) CreateDocument(ctx context.Context, d core.Document) (core.Document, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (type, numero, client_id, date, montant_ht_cents, taux_tva, statut, date_paiement)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(d.Type), d.Number, nullID(d.ClientID), d.Date.String(),
		d.Amount.Cents, d.TaxRatePercent, string(d.Status), nullDate(d.PaymentDate))
	if err != nil {
		return core.Document{}, fmt.Errorf("create document: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Document{}, fmt.Errorf("create document id: %w", err)
	}

	slog.InfoContext(ctx, "Document saved",
		"id", id, "type", d.Type, "numero", d.Number, "amount_cents", d.Amount.Cents)

	return r.GetDocument(ctx, id)
}

func (r *SQLiteRepository) UpdateDocument(ctx context.Context, id int64, d core.Document) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE documents
		SET type = ?, numero = ?, client_id = ?, date = ?, montant_ht_cents = ?, taux_tva = ?, statut = ?, date_paiement = ?
		WHERE id = ?`,
		string(d.Type), d.Number, nullID(d.ClientID), d.Date.String(),
		d.Amount.Cents, d.TaxRatePercent, string(d.Status), nullDate(d.PaymentDate), id)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteDocument(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) ListClients(ctx context.Context) ([]core.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, nom, email, telephone, adresse, code_postal, ville, siret, notes
		FROM clients
		ORDER BY nom ASC`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []core.Client
	for rows.Next() {
		var c core.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address,
			&c.PostalCode, &c.City, &c.TaxID, &c.Notes); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}

func (r *SQLiteRepository) CreateClient(ctx context.Context, c core.Client) (core.Client, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (nom, email, telephone, adresse, code_postal, ville, siret, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Email, c.Phone, c.Address, c.PostalCode, c.City, c.TaxID, c.Notes)
	if err != nil {
		return core.Client{}, fmt.Errorf("create client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Client{}, fmt.Errorf("create client id: %w", err)
	}
	c.ID = id

	slog.InfoContext(ctx, "Client saved", "id", id, "name", c.Name)
	return c, nil
}

// DeleteClient removes only the client row. Documents keep their
// client_id; the snapshot join resolves them to the fallback name.
func (r *SQLiteRepository) DeleteClient(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return requireRow(res)
}

// Normalize coerces a raw row into the domain document: enum decoding,
// tax rate defaulting, date parsing and client name fallback. An
// unrecognized type or status makes the row degenerate.
func (row DocumentRow) Normalize() (core.Document, error) {
	docType, err := core.ParseDocumentType(row.Type)
	if err != nil {
		return core.Document{}, fmt.Errorf("document %d: %w", row.ID, err)
	}
	status, err := core.ParseDocumentStatus(row.Status)
	if err != nil {
		return core.Document{}, fmt.Errorf("document %d: %w", row.ID, err)
	}

	doc := core.Document{
		ID:             row.ID,
		Type:           docType,
		Number:         row.Number,
		Status:         status,
		Amount:         core.Money{Cents: row.AmountCents},
		TaxRatePercent: DefaultTaxRate,
	}
	if row.ClientID.Valid {
		doc.ClientID = row.ClientID.Int64
	}
	if row.ClientName.Valid {
		doc.ClientName = row.ClientName.String
	}
	if row.TaxRate.Valid {
		doc.TaxRatePercent = row.TaxRate.Float64
	}
	// A malformed date leaves the zero Date: the document is excluded
	// from every year filter and month bucket but is not an error.
	if d, err := core.ParseDate(row.Date); err == nil {
		doc.Date = d
	}
	if row.PaymentDate.Valid {
		if d, err := core.ParseDate(row.PaymentDate.String); err == nil {
			doc.PaymentDate = d
		}
	}
	return doc, nil
}

func nullID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func nullDate(d core.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
