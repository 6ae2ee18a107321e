package loggerise

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// QuoteStatus is the lifecycle state of a quote.
type QuoteStatus string

const (
	QuotePending  QuoteStatus = "pending"
	QuoteSent     QuoteStatus = "sent"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteDeclined QuoteStatus = "declined"
	QuoteExpired  QuoteStatus = "expired"
)

// Quote is a priced offer for moving goods. Accepted quotes convert into
// transport orders.
type Quote struct {
	ID     int64       `json:"id"`
	Number string      `json:"number"`
	Status QuoteStatus `json:"status"`

	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`

	Currency string `json:"currency"`
	Total    string `json:"total"`

	// ValidUntil is a calendar date in YYYY-MM-DD form; the quote
	// expires at the end of that day.
	ValidUntil string `json:"valid_until"`

	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuoteParams creates or updates a quote.
type QuoteParams struct {
	CustomerID int64  `json:"customer_id,omitempty"`
	Currency   string `json:"currency,omitempty"`
	Total      string `json:"total,omitempty"`
	ValidUntil string `json:"valid_until,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// QuoteListParams filter [QuotesService.List].
type QuoteListParams struct {
	ListParams

	Status QuoteStatus
}

func (p QuoteListParams) values() url.Values {
	q := p.ListParams.values()
	if p.Status != "" {
		q.Set("status", string(p.Status))
	}
	return q
}

// QuoteAcceptance is the result of accepting a quote: the updated quote
// and the transport order created from it.
type QuoteAcceptance struct {
	Quote          Quote          `json:"quote"`
	TransportOrder TransportOrder `json:"transport_order"`
}

// QuotesService manages the tenant's quotes.
type QuotesService struct {
	c *Client
}

// List returns one page of quotes matching params.
func (s *QuotesService) List(ctx context.Context, params QuoteListParams) (*Page[Quote], error) {
	var page Page[Quote]
	if err := s.c.get(ctx, "/api/v1/quotes", params.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get returns a single quote by id.
func (s *QuotesService) Get(ctx context.Context, id int64) (*Quote, error) {
	var quote Quote
	if err := s.c.get(ctx, fmt.Sprintf("/api/v1/quotes/%d", id), nil, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// Create drafts a new quote.
func (s *QuotesService) Create(ctx context.Context, params QuoteParams) (*Quote, error) {
	var quote Quote
	if err := s.c.post(ctx, "/api/v1/quotes", params, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// Update modifies a quote that has not been accepted or declined.
func (s *QuotesService) Update(ctx context.Context, id int64, params QuoteParams) (*Quote, error) {
	var quote Quote
	if err := s.c.put(ctx, fmt.Sprintf("/api/v1/quotes/%d", id), params, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// Delete removes a pending quote.
func (s *QuotesService) Delete(ctx context.Context, id int64) error {
	return s.c.del(ctx, fmt.Sprintf("/api/v1/quotes/%d", id))
}

// Accept accepts a sent quote on the customer's behalf, converting it into
// a draft transport order. Accepting an expired or already-resolved quote
// returns a validation error.
func (s *QuotesService) Accept(ctx context.Context, id int64) (*QuoteAcceptance, error) {
	var acceptance QuoteAcceptance
	if err := s.c.post(ctx, fmt.Sprintf("/api/v1/quotes/%d/accept", id), nil, &acceptance); err != nil {
		return nil, err
	}
	return &acceptance, nil
}

// Decline declines a sent quote, recording the reason when given.
func (s *QuotesService) Decline(ctx context.Context, id int64, reason string) (*Quote, error) {
	in := struct {
		Reason string `json:"reason,omitempty"`
	}{Reason: reason}

	var quote Quote
	if err := s.c.post(ctx, fmt.Sprintf("/api/v1/quotes/%d/decline", id), in, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}
