package core

import (
	"errors"
	"testing"
)

func TestParseDocumentType(t *testing.T) {
	if got, err := ParseDocumentType(" Facture "); err != nil || got != TypeInvoice {
		t.Fatalf("expected Facture, got %q (err=%v)", got, err)
	}
	if got, err := ParseDocumentType("Devis"); err != nil || got != TypeQuote {
		t.Fatalf("expected Devis, got %q (err=%v)", got, err)
	}
	if _, err := ParseDocumentType("Invoice"); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestParseDocumentStatus(t *testing.T) {
	for _, s := range []string{"En attente", "Validé", "Payé", "Refusé"} {
		if _, err := ParseDocumentStatus(s); err != nil {
			t.Fatalf("%q: unexpected error %v", s, err)
		}
	}
	if _, err := ParseDocumentStatus("paid"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2024 || d.MonthIndex() != 2 || d.String() != "2024-03-15" {
		t.Fatalf("unexpected date: %v", d)
	}

	for _, in := range []string{"", "15/03/2024", "2024-13-01"} {
		if _, err := ParseDate(in); err == nil {
			t.Fatalf("%q expected error", in)
		}
	}
}

func TestZeroDateYear(t *testing.T) {
	var d Date
	if d.Year() != 0 {
		t.Fatalf("zero date year should be 0, got %d", d.Year())
	}
	if d.String() != "" {
		t.Fatalf("zero date string should be empty, got %q", d.String())
	}
}

func TestDisplayClient(t *testing.T) {
	d := Document{ClientName: "Acme"}
	if got := d.DisplayClient(); got != "Acme" {
		t.Fatalf("expected Acme, got %q", got)
	}
	d.ClientName = "  "
	if got := d.DisplayClient(); got != FallbackClientName {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func validDocument() Document {
	return Document{
		Type:           TypeInvoice,
		Number:         "FA-2024-001",
		ClientID:       1,
		Date:           NewDate(2024, 3, 15),
		Amount:         Money{Cents: 10000},
		TaxRatePercent: 20,
		Status:         StatusPaid,
	}
}

func TestDocumentValidate(t *testing.T) {
	if err := validDocument().Validate(); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Document)
		want   error
	}{
		{"bad type", func(d *Document) { d.Type = "Invoice" }, ErrInvalidType},
		{"empty number", func(d *Document) { d.Number = " " }, ErrEmptyNumber},
		{"no client", func(d *Document) { d.ClientID = 0 }, ErrMissingClient},
		{"zero date", func(d *Document) { d.Date = Date{} }, ErrInvalidDate},
		{"negative amount", func(d *Document) { d.Amount.Cents = -1 }, ErrInvalidAmount},
		{"negative rate", func(d *Document) { d.TaxRatePercent = -1 }, ErrInvalidTaxRate},
		{"bad status", func(d *Document) { d.Status = "paid" }, ErrInvalidStatus},
	}
	for _, tc := range cases {
		d := validDocument()
		tc.mutate(&d)
		if err := d.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestClientValidate(t *testing.T) {
	if err := (Client{Name: "Acme"}).Validate(); err != nil {
		t.Fatalf("valid client rejected: %v", err)
	}
	if err := (Client{Name: "  "}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}
