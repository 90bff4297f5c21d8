package http

import (
	"encoding/json"

	"facturation/internal/core"
	"facturation/internal/report"
	"facturation/internal/storage"
)

// Wire shapes. Field names follow the stored column names so the API
// reads naturally next to the database.
type (
	documentDTO struct {
		ID           int64   `json:"id"`
		Type         string  `json:"type"`
		Numero       string  `json:"numero"`
		Client       string  `json:"client"`
		ClientID     int64   `json:"client_id,omitempty"`
		Date         string  `json:"date"`
		MontantHT    float64 `json:"montant_ht"`
		TauxTVA      float64 `json:"taux_tva"`
		MontantTTC   float64 `json:"montant_ttc"`
		Statut       string  `json:"statut"`
		DatePaiement string  `json:"date_paiement,omitempty"`
	}

	clientDTO struct {
		ID         int64  `json:"id"`
		Nom        string `json:"nom"`
		Email      string `json:"email,omitempty"`
		Telephone  string `json:"telephone,omitempty"`
		Adresse    string `json:"adresse,omitempty"`
		CodePostal string `json:"code_postal,omitempty"`
		Ville      string `json:"ville,omitempty"`
		Siret      string `json:"siret,omitempty"`
		Notes      string `json:"notes,omitempty"`
	}

	// documentRequest is the create/update payload. The amount is a
	// json.Number so callers can send 100.5 without float drift on our
	// side; it is parsed straight into cents.
	documentRequest struct {
		Type         string      `json:"type"`
		Numero       string      `json:"numero"`
		ClientID     int64       `json:"client_id"`
		Date         string      `json:"date"`
		MontantHT    json.Number `json:"montant_ht"`
		TauxTVA      *float64    `json:"taux_tva"`
		Statut       string      `json:"statut"`
		DatePaiement string      `json:"date_paiement"`
	}

	clientRequest struct {
		Nom        string `json:"nom"`
		Email      string `json:"email"`
		Telephone  string `json:"telephone"`
		Adresse    string `json:"adresse"`
		CodePostal string `json:"code_postal"`
		Ville      string `json:"ville"`
		Siret      string `json:"siret"`
		Notes      string `json:"notes"`
	}
)

func toDocumentDTO(d core.Document) documentDTO {
	return documentDTO{
		ID:           d.ID,
		Type:         string(d.Type),
		Numero:       d.Number,
		Client:       d.DisplayClient(),
		ClientID:     d.ClientID,
		Date:         d.Date.String(),
		MontantHT:    d.Amount.Euros(),
		TauxTVA:      d.TaxRatePercent,
		MontantTTC:   core.Round2(d.TTC()),
		Statut:       string(d.Status),
		DatePaiement: d.PaymentDate.String(),
	}
}

func toClientDTO(c core.Client) clientDTO {
	return clientDTO{
		ID:         c.ID,
		Nom:        c.Name,
		Email:      c.Email,
		Telephone:  c.Phone,
		Adresse:    c.Address,
		CodePostal: c.PostalCode,
		Ville:      c.City,
		Siret:      c.TaxID,
		Notes:      c.Notes,
	}
}

// toDomain converts the payload, leaving full validation to
// Document.Validate. Enum labels and the amount fail fast here because
// they cannot be represented in the domain shape at all.
func (req documentRequest) toDomain() (core.Document, error) {
	docType, err := core.ParseDocumentType(req.Type)
	if err != nil {
		return core.Document{}, err
	}
	status, err := core.ParseDocumentStatus(req.Statut)
	if err != nil {
		return core.Document{}, err
	}
	cents, err := core.ParseDecimalToCents(req.MontantHT.String())
	if err != nil {
		return core.Document{}, err
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Document{}, err
	}

	d := core.Document{
		Type:           docType,
		Number:         req.Numero,
		ClientID:       req.ClientID,
		Date:           date,
		Amount:         core.Money{Cents: cents},
		TaxRatePercent: storage.DefaultTaxRate,
		Status:         status,
	}
	if req.TauxTVA != nil {
		d.TaxRatePercent = *req.TauxTVA
	}
	if req.DatePaiement != "" {
		pd, err := core.ParseDate(req.DatePaiement)
		if err != nil {
			return core.Document{}, err
		}
		d.PaymentDate = pd
	}
	return d, nil
}

func (req clientRequest) toDomain() core.Client {
	return core.Client{
		Name:       req.Nom,
		Email:      req.Email,
		Phone:      req.Telephone,
		Address:    req.Adresse,
		PostalCode: req.CodePostal,
		City:       req.Ville,
		TaxID:      req.Siret,
		Notes:      req.Notes,
	}
}

// Dashboard response shapes, mirroring the statistics the charts feed on.
type (
	monthPointDTO struct {
		Mois     string  `json:"mois"`
		Encaisse float64 `json:"encaisse"`
		Attente  float64 `json:"attente"`
	}

	namedCountDTO struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}

	topClientDTO struct {
		Client  string  `json:"client"`
		Montant float64 `json:"montant"`
		Count   int     `json:"count"`
	}

	dashboardResponse struct {
		Annee             int             `json:"annee"`
		AvailableYears    []int           `json:"available_years"`
		DocumentCount     int             `json:"document_count"`
		CAAnnuel          float64         `json:"ca_annuel"`
		CAEnAttente       float64         `json:"ca_en_attente"`
		FacturesPayees    int             `json:"factures_payees"`
		FacturesEnAttente int             `json:"factures_en_attente"`
		TotalDevis        int             `json:"total_devis"`
		DevisValides      int             `json:"devis_valides"`
		DevisEnAttente    int             `json:"devis_en_attente"`
		TauxConversion    float64         `json:"taux_conversion"`
		MontantMoyen      float64         `json:"montant_moyen"`
		CAParMois         []monthPointDTO `json:"ca_par_mois"`
		StatutData        []namedCountDTO `json:"statut_data"`
		TypeData          []namedCountDTO `json:"type_data"`
		TopClients        []topClientDTO  `json:"top_clients"`
	}
)

// toDashboardResponse rounds every monetary figure to cents at this
// boundary; aggregation upstream stays full-precision.
func toDashboardResponse(spec report.FilterSpec, years []int, stats report.Statistics) dashboardResponse {
	resp := dashboardResponse{
		Annee:             spec.Year,
		AvailableYears:    years,
		DocumentCount:     stats.DocumentCount,
		CAAnnuel:          core.Round2(stats.CollectedTotal),
		CAEnAttente:       core.Round2(stats.PendingTotal),
		FacturesPayees:    stats.PaidInvoiceCount,
		FacturesEnAttente: stats.PendingInvoiceCount,
		TotalDevis:        stats.QuoteCount,
		DevisValides:      stats.ValidatedQuoteCount,
		DevisEnAttente:    stats.PendingQuoteCount,
		TauxConversion:    stats.QuoteConversionRate,
		MontantMoyen:      core.Round2(stats.AverageInvoiceValue),
	}

	resp.CAParMois = make([]monthPointDTO, len(stats.Monthly))
	for i, m := range stats.Monthly {
		resp.CAParMois[i] = monthPointDTO{
			Mois:     m.Label,
			Encaisse: core.Round2(m.Collected),
			Attente:  core.Round2(m.Pending),
		}
	}
	for _, sc := range stats.StatusDistribution {
		resp.StatutData = append(resp.StatutData, namedCountDTO{Name: string(sc.Status), Value: sc.Count})
	}
	for _, tc := range stats.TypeDistribution {
		resp.TypeData = append(resp.TypeData, namedCountDTO{Name: string(tc.Type), Value: tc.Count})
	}
	for _, cr := range stats.TopClients {
		resp.TopClients = append(resp.TopClients, topClientDTO{
			Client:  cr.Client,
			Montant: core.Round2(cr.Amount),
			Count:   cr.Count,
		})
	}
	return resp
}
