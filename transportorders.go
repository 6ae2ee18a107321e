package loggerise

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// TransportOrderStatus is the lifecycle state of a transport order.
type TransportOrderStatus string

const (
	TransportOrderDraft     TransportOrderStatus = "draft"
	TransportOrderPlanned   TransportOrderStatus = "planned"
	TransportOrderInTransit TransportOrderStatus = "in_transit"
	TransportOrderDelivered TransportOrderStatus = "delivered"
	TransportOrderCancelled TransportOrderStatus = "cancelled"
)

// TransportOrder is a customer's request to move goods from a pickup
// location to a delivery location.
type TransportOrder struct {
	ID        int64                `json:"id"`
	Reference string               `json:"reference"`
	Status    TransportOrderStatus `json:"status"`

	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`

	PickupLocation   string    `json:"pickup_location"`
	PickupAt         time.Time `json:"pickup_at"`
	DeliveryLocation string    `json:"delivery_location"`
	DeliveryAt       time.Time `json:"delivery_at"`

	// VehicleID and TripID are nil until planning assigns them.
	VehicleID *int64 `json:"vehicle_id"`
	TripID    *int64 `json:"trip_id"`

	TotalWeightKg float64 `json:"total_weight_kg"`
	Notes         string  `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TransportOrderParams creates or updates a transport order. Nil and
// zero-valued fields are omitted, so partial updates keep the server's
// values.
type TransportOrderParams struct {
	CustomerID       int64      `json:"customer_id,omitempty"`
	PickupLocation   string     `json:"pickup_location,omitempty"`
	PickupAt         *time.Time `json:"pickup_at,omitempty"`
	DeliveryLocation string     `json:"delivery_location,omitempty"`
	DeliveryAt       *time.Time `json:"delivery_at,omitempty"`
	TotalWeightKg    float64    `json:"total_weight_kg,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}

// TransportOrderListParams filter [TransportOrdersService.List].
type TransportOrderListParams struct {
	ListParams

	Status     TransportOrderStatus
	CustomerID int64
}

func (p TransportOrderListParams) values() url.Values {
	q := p.ListParams.values()
	if p.Status != "" {
		q.Set("status", string(p.Status))
	}
	if p.CustomerID > 0 {
		q.Set("customer_id", strconv.FormatInt(p.CustomerID, 10))
	}
	return q
}

// TransportOrdersService manages the tenant's transport orders.
type TransportOrdersService struct {
	c *Client
}

// List returns one page of transport orders matching params.
func (s *TransportOrdersService) List(ctx context.Context, params TransportOrderListParams) (*Page[TransportOrder], error) {
	var page Page[TransportOrder]
	if err := s.c.get(ctx, "/api/v1/transport-orders", params.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get returns a single transport order by id.
func (s *TransportOrdersService) Get(ctx context.Context, id int64) (*TransportOrder, error) {
	var order TransportOrder
	if err := s.c.get(ctx, fmt.Sprintf("/api/v1/transport-orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Create registers a new draft transport order.
func (s *TransportOrdersService) Create(ctx context.Context, params TransportOrderParams) (*TransportOrder, error) {
	var order TransportOrder
	if err := s.c.post(ctx, "/api/v1/transport-orders", params, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Update modifies a transport order that has not yet been delivered.
func (s *TransportOrdersService) Update(ctx context.Context, id int64, params TransportOrderParams) (*TransportOrder, error) {
	var order TransportOrder
	if err := s.c.put(ctx, fmt.Sprintf("/api/v1/transport-orders/%d", id), params, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Delete removes a draft transport order.
func (s *TransportOrdersService) Delete(ctx context.Context, id int64) error {
	return s.c.del(ctx, fmt.Sprintf("/api/v1/transport-orders/%d", id))
}

// Cancel cancels a transport order that has not yet been delivered. The
// reason, when given, is recorded on the order for the customer to see.
func (s *TransportOrdersService) Cancel(ctx context.Context, id int64, reason string) (*TransportOrder, error) {
	in := struct {
		Reason string `json:"reason,omitempty"`
	}{Reason: reason}

	var order TransportOrder
	if err := s.c.post(ctx, fmt.Sprintf("/api/v1/transport-orders/%d/cancel", id), in, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
