package loggerise

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	// InvoiceDraft is an invoice not yet sent to the customer.
	InvoiceDraft InvoiceStatus = "draft"

	// InvoiceSent is an invoice delivered and awaiting payment.
	InvoiceSent InvoiceStatus = "sent"

	// InvoicePaid is a settled invoice.
	InvoicePaid InvoiceStatus = "paid"

	// InvoiceOverdue is an unpaid invoice past its due date.
	InvoiceOverdue InvoiceStatus = "overdue"

	// InvoiceCancelled is a voided invoice.
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// Invoice is a customer invoice, usually raised from a delivered transport
// order.
//
// Monetary amounts are decimal strings exactly as the API returns them
// (e.g. "1250.00"); the client performs no float conversion that could
// lose precision.
type Invoice struct {
	ID     int64         `json:"id"`
	Number string        `json:"number"`
	Status InvoiceStatus `json:"status"`

	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`

	// TransportOrderID links the invoice to the order it bills, nil for
	// free-standing invoices.
	TransportOrderID *int64 `json:"transport_order_id"`

	Currency string `json:"currency"`
	Subtotal string `json:"subtotal"`
	TaxTotal string `json:"tax_total"`
	Total    string `json:"total"`

	// IssuedOn and DueOn are calendar dates in YYYY-MM-DD form.
	IssuedOn string `json:"issued_on"`
	DueOn    string `json:"due_on"`

	Lines []InvoiceLine `json:"lines"`
	Notes string        `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvoiceLine is one billed position of an invoice.
type InvoiceLine struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   string  `json:"unit_price"`
	Total       string  `json:"total"`
}

// InvoiceParams creates or replaces an invoice. Zero-valued fields are
// omitted from the request, so partial updates keep the server's values.
type InvoiceParams struct {
	CustomerID       int64               `json:"customer_id,omitempty"`
	TransportOrderID *int64              `json:"transport_order_id,omitempty"`
	Currency         string              `json:"currency,omitempty"`
	IssuedOn         string              `json:"issued_on,omitempty"`
	DueOn            string              `json:"due_on,omitempty"`
	Lines            []InvoiceLineParams `json:"lines,omitempty"`
	Notes            string              `json:"notes,omitempty"`
}

// InvoiceLineParams is one line of an [InvoiceParams] payload.
type InvoiceLineParams struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   string  `json:"unit_price"`
}

// InvoiceListParams filter [InvoicesService.List].
type InvoiceListParams struct {
	ListParams

	// Status restricts the listing to one lifecycle state.
	Status InvoiceStatus

	// CustomerID restricts the listing to one customer.
	CustomerID int64
}

func (p InvoiceListParams) values() url.Values {
	q := p.ListParams.values()
	if p.Status != "" {
		q.Set("status", string(p.Status))
	}
	if p.CustomerID > 0 {
		q.Set("customer_id", strconv.FormatInt(p.CustomerID, 10))
	}
	return q
}

// InvoicesService manages the tenant's invoices.
type InvoicesService struct {
	c *Client
}

// List returns one page of invoices matching params.
func (s *InvoicesService) List(ctx context.Context, params InvoiceListParams) (*Page[Invoice], error) {
	var page Page[Invoice]
	if err := s.c.get(ctx, "/api/v1/invoices", params.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get returns a single invoice by id.
func (s *InvoicesService) Get(ctx context.Context, id int64) (*Invoice, error) {
	var invoice Invoice
	if err := s.c.get(ctx, fmt.Sprintf("/api/v1/invoices/%d", id), nil, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Create raises a new draft invoice.
func (s *InvoicesService) Create(ctx context.Context, params InvoiceParams) (*Invoice, error) {
	var invoice Invoice
	if err := s.c.post(ctx, "/api/v1/invoices", params, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Update modifies an invoice. Only draft invoices accept changes; anything
// later returns a validation error.
func (s *InvoicesService) Update(ctx context.Context, id int64, params InvoiceParams) (*Invoice, error) {
	var invoice Invoice
	if err := s.c.put(ctx, fmt.Sprintf("/api/v1/invoices/%d", id), params, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Delete removes a draft invoice.
func (s *InvoicesService) Delete(ctx context.Context, id int64) error {
	return s.c.del(ctx, fmt.Sprintf("/api/v1/invoices/%d", id))
}

// DownloadPDF fetches the rendered PDF document of an invoice. The
// returned bytes are the complete file, capped at 32MB.
func (s *InvoicesService) DownloadPDF(ctx context.Context, id int64) ([]byte, error) {
	return s.c.download(ctx, fmt.Sprintf("/api/v1/invoices/%d/pdf", id), "application/pdf")
}
