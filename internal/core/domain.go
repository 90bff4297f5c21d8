package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TypeInvoice DocumentType = "Facture"
	TypeQuote   DocumentType = "Devis"
)

const (
	StatusPending   DocumentStatus = "En attente"
	StatusValidated DocumentStatus = "Validé"
	StatusPaid      DocumentStatus = "Payé"
	StatusRejected  DocumentStatus = "Refusé"
)

// FallbackClientName is shown for documents whose client reference is
// missing or points to a deleted client.
const FallbackClientName = "Client inconnu"

type (
	DocumentType   string
	DocumentStatus string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Document is an invoice or a quote as loaded from the store, with
	// the client display name already resolved.
	Document struct {
		ID             int64
		Type           DocumentType
		Number         string
		ClientID       int64 // 0 when the reference is missing
		ClientName     string
		Date           Date
		Amount         Money // pre-tax
		TaxRatePercent float64
		Status         DocumentStatus
		PaymentDate    Date // optional, informational only
	}

	Client struct {
		ID         int64
		Name       string
		Email      string
		Phone      string
		Address    string
		PostalCode string
		City       string
		TaxID      string
		Notes      string
	}
)

var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidTaxRate = errors.New("invalid tax rate")
	ErrInvalidType    = errors.New("invalid document type")
	ErrInvalidStatus  = errors.New("invalid document status")
	ErrEmptyNumber    = errors.New("empty document number")
	ErrEmptyName      = errors.New("empty client name")
	ErrMissingClient  = errors.New("missing client reference")
)

// ParseDocumentType decodes a stored type label into the closed enum.
// Unrecognized labels are rejected rather than silently failing every
// type predicate downstream.
func ParseDocumentType(s string) (DocumentType, error) {
	switch DocumentType(strings.TrimSpace(s)) {
	case TypeInvoice:
		return TypeInvoice, nil
	case TypeQuote:
		return TypeQuote, nil
	default:
		return "", ErrInvalidType
	}
}

// ParseDocumentStatus decodes a stored status label into the closed enum.
func ParseDocumentStatus(s string) (DocumentStatus, error) {
	switch DocumentStatus(strings.TrimSpace(s)) {
	case StatusPending:
		return StatusPending, nil
	case StatusValidated:
		return StatusValidated, nil
	case StatusPaid:
		return StatusPaid, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (t DocumentType) IsValid() bool {
	return t == TypeInvoice || t == TypeQuote
}

func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusValidated, StatusPaid, StatusRejected:
		return true
	}
	return false
}

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO calendar date (2006-01-02). The zero Date is
// returned on failure; callers treat it as "no usable date".
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Year returns the calendar year, or 0 for the zero Date so that a
// degenerate date never matches a selected year.
func (d Date) Year() int {
	if d.IsZero() {
		return 0
	}
	return d.Time.Year()
}

// MonthIndex returns the month as 0-11, the bucket index used by the
// monthly revenue series.
func (d Date) MonthIndex() int {
	return int(d.Time.Month()) - 1
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// DisplayClient resolves the client display name, falling back when the
// join produced nothing.
func (d Document) DisplayClient() string {
	if strings.TrimSpace(d.ClientName) == "" {
		return FallbackClientName
	}
	return d.ClientName
}

// Validate checks a document before it is handed to the store. Reads
// are more lenient: a degenerate stored row degrades its own
// contribution instead of failing the whole snapshot.
func (d Document) Validate() error {
	if !d.Type.IsValid() {
		return ErrInvalidType
	}
	if len(strings.TrimSpace(d.Number)) == 0 {
		return ErrEmptyNumber
	}
	if d.ClientID == 0 {
		return ErrMissingClient
	}
	if d.Date.IsZero() {
		return ErrInvalidDate
	}
	if d.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if d.TaxRatePercent < 0 {
		return ErrInvalidTaxRate
	}
	if !d.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

func (c Client) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	return nil
}
