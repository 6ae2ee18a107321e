package loggerise

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// LoadStatus is the lifecycle state of a load.
type LoadStatus string

const (
	LoadPending   LoadStatus = "pending"
	LoadAssigned  LoadStatus = "assigned"
	LoadInTransit LoadStatus = "in_transit"
	LoadDelivered LoadStatus = "delivered"
)

// Load is a physical consignment within a transport order: the goods that
// actually go on a vehicle.
type Load struct {
	ID               int64      `json:"id"`
	Reference        string     `json:"reference"`
	Status           LoadStatus `json:"status"`
	TransportOrderID int64      `json:"transport_order_id"`

	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	WeightKg    float64 `json:"weight_kg"`
	VolumeM3    float64 `json:"volume_m3"`

	// TripID is nil until the load is assigned to a trip.
	TripID *int64 `json:"trip_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoadParams creates or updates a load.
type LoadParams struct {
	TransportOrderID int64   `json:"transport_order_id,omitempty"`
	Description      string  `json:"description,omitempty"`
	Quantity         int     `json:"quantity,omitempty"`
	WeightKg         float64 `json:"weight_kg,omitempty"`
	VolumeM3         float64 `json:"volume_m3,omitempty"`
}

// LoadListParams filter [LoadsService.List].
type LoadListParams struct {
	ListParams

	Status           LoadStatus
	TransportOrderID int64
	TripID           int64
}

func (p LoadListParams) values() url.Values {
	q := p.ListParams.values()
	if p.Status != "" {
		q.Set("status", string(p.Status))
	}
	if p.TransportOrderID > 0 {
		q.Set("transport_order_id", strconv.FormatInt(p.TransportOrderID, 10))
	}
	if p.TripID > 0 {
		q.Set("trip_id", strconv.FormatInt(p.TripID, 10))
	}
	return q
}

// LoadsService manages the loads within transport orders.
type LoadsService struct {
	c *Client
}

// List returns one page of loads matching params.
func (s *LoadsService) List(ctx context.Context, params LoadListParams) (*Page[Load], error) {
	var page Page[Load]
	if err := s.c.get(ctx, "/api/v1/loads", params.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get returns a single load by id.
func (s *LoadsService) Get(ctx context.Context, id int64) (*Load, error) {
	var load Load
	if err := s.c.get(ctx, fmt.Sprintf("/api/v1/loads/%d", id), nil, &load); err != nil {
		return nil, err
	}
	return &load, nil
}

// Create adds a load to a transport order.
func (s *LoadsService) Create(ctx context.Context, params LoadParams) (*Load, error) {
	var load Load
	if err := s.c.post(ctx, "/api/v1/loads", params, &load); err != nil {
		return nil, err
	}
	return &load, nil
}

// Update modifies a load that has not yet been delivered.
func (s *LoadsService) Update(ctx context.Context, id int64, params LoadParams) (*Load, error) {
	var load Load
	if err := s.c.put(ctx, fmt.Sprintf("/api/v1/loads/%d", id), params, &load); err != nil {
		return nil, err
	}
	return &load, nil
}

// Delete removes a pending load.
func (s *LoadsService) Delete(ctx context.Context, id int64) error {
	return s.c.del(ctx, fmt.Sprintf("/api/v1/loads/%d", id))
}

// AssignTrip puts the load on a trip, moving it to [LoadAssigned].
// Assigning a load already on another trip returns a validation error;
// unassign it first by planning on the other side.
func (s *LoadsService) AssignTrip(ctx context.Context, id, tripID int64) (*Load, error) {
	in := struct {
		TripID int64 `json:"trip_id"`
	}{TripID: tripID}

	var load Load
	if err := s.c.post(ctx, fmt.Sprintf("/api/v1/loads/%d/assign-trip", id), in, &load); err != nil {
		return nil, err
	}
	return &load, nil
}
